package app

import (
	"context"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

// PostSource fetches feed content. Implementations must be safe to call
// repeatedly for the same page; no cursor state is carried between calls.
type PostSource interface {
	// FetchPage returns page n (1-based) of the feed.
	FetchPage(ctx context.Context, page int) (domain.PostPage, error)

	// FetchPostDetail returns the full post. Unknown ids yield domain.ErrNotFound.
	FetchPostDetail(ctx context.Context, id int) (domain.PostDetail, error)

	// FetchComments returns the comments used to seed a post's thread.
	FetchComments(ctx context.Context, postID int) ([]domain.Comment, error)
}
