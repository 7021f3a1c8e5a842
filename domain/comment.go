package domain

import (
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the comment character limit, counted in runes.
const MaxCommentLength = 500

var avatars = []string{"👤", "👨", "👩", "🧑", "👦", "👧", "🙍", "🙎", "🙋", "🤷"}

// ReplyTarget identifies the comment a reply was written against.
type ReplyTarget struct {
	ID     string
	Author string
}

// Comment is a single entry in a post's comment thread.
type Comment struct {
	ID        string
	Content   string
	Author    string
	AuthorID  int // Only used to derive the avatar
	CreatedAt time.Time
	LikeCount int
	Liked     bool
	ReplyTo   *ReplyTarget
}

// Avatar returns the display glyph for the comment's author.
func (c Comment) Avatar() string {
	n := len(avatars)
	return avatars[(c.AuthorID%n+n)%n]
}

// Target returns the reply target that points at this comment.
func (c Comment) Target() ReplyTarget {
	return ReplyTarget{ID: c.ID, Author: c.Author}
}

// ValidateComment reports whether trimmed content is acceptable for posting.
func ValidateComment(trimmed string) error {
	if trimmed == "" {
		return ErrEmptyComment
	}
	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
