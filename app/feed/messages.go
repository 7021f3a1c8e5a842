package feed

import "github.com/CrestNiraj12/terminalfeed/domain"

// PageLoadedMsg is delivered when a page fetch succeeds.
type PageLoadedMsg struct {
	Requested int
	Page      domain.PostPage
	Gen       int
}

// PageErrorMsg is delivered when a page fetch fails.
type PageErrorMsg struct {
	Requested int
	Err       error
	Gen       int
}
