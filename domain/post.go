package domain

import "time"

// Post is a single feed entry.
type Post struct {
	ID           int
	Title        string
	Author       string
	LikeCount    int
	CommentCount int
	ImageRef     string
	CreatedAt    time.Time
}

// PostDetail is a post together with its full body, as shown on the detail view.
type PostDetail struct {
	Post
	Content string
	Tags    []string
}

// PostPage is one page of the feed. Last is set by the source when no
// further pages exist.
type PostPage struct {
	Number int
	Posts  []Post
	Last   bool
}
