package app

// Recorder observes controller outcomes. Implemented by infra/metrics.
type Recorder interface {
	PageFetched(page int, err error)
	CommentSubmitted(err error)
	DetailFetched(err error)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) PageFetched(int, error) {}
func (NopRecorder) CommentSubmitted(error) {}
func (NopRecorder) DetailFetched(error)    {}
