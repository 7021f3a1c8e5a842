package domain

import "errors"

var (
	// ErrFetchFailure indicates a page, detail or comment load failed.
	// Recoverable by retrying.
	ErrFetchFailure = errors.New("fetch failed")

	// ErrNotFound indicates the requested post does not exist. Terminal for
	// the view that asked for it.
	ErrNotFound = errors.New("post not found")

	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the comment exceeds the character limit.
	ErrCommentTooLong = errors.New("comment exceeds character limit")
)
