package feed

// Status is the load state of the feed. It doubles as the load-guard: a
// fetch may only start from a state that can move to StatusLoading.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusExhausted
)

var transitions = map[Status][]Status{
	StatusIdle:      {StatusLoading},
	StatusLoading:   {StatusIdle, StatusError, StatusExhausted},
	StatusError:     {StatusLoading},
	StatusExhausted: {StatusLoading},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
