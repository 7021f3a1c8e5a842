package feed

import (
	"context"
	"errors"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

// ListState classifies what the list area should show. The empty states
// are distinct and must never be rendered the same way.
type ListState int

const (
	ListSkeleton  ListState = iota // First page in flight
	ListFailed                     // Nothing loaded and the load failed
	ListNoResults                  // A search matched nothing
	ListEmpty                      // The source has no posts at all
	ListItems
)

// Footer classifies the area below the list.
type Footer int

const (
	FooterNone Footer = iota
	FooterLoading
	FooterRetry // A later page failed; offer load-more retry
	FooterEnd
)

const (
	msgFetchFailed = "Network connection failed. Check your connection and retry."
	msgTimedOut    = "The request timed out. Retry in a moment."
	msgNotFound    = "This content does not exist or has been removed."
)

// Presentation derives the list state from the controller.
func (c *Controller) Presentation() ListState {
	if len(c.items) == 0 {
		switch {
		case !c.initialized || c.status == StatusLoading:
			return ListSkeleton
		case c.status == StatusError:
			return ListFailed
		case c.searchActive():
			return ListNoResults
		default:
			return ListEmpty
		}
	}
	if c.searchActive() && len(c.FilteredItems()) == 0 {
		return ListNoResults
	}
	return ListItems
}

// Footer derives the footer state. It is suppressed while searching since
// search never paginates.
func (c *Controller) Footer() Footer {
	if len(c.items) == 0 || c.searchActive() {
		return FooterNone
	}
	switch c.status {
	case StatusLoading:
		return FooterLoading
	case StatusError:
		return FooterRetry
	case StatusExhausted:
		return FooterEnd
	default:
		return FooterNone
	}
}

// UserMessage maps an error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNotFound):
		return msgNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimedOut
	default:
		return msgFetchFailed
	}
}
