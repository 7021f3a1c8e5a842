package app

import "context"

// CommentService confirms comment submissions against a backend.
type CommentService interface {
	// SubmitComment publishes content on the given post.
	SubmitComment(ctx context.Context, postID int, content string) error
}
