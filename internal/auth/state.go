package auth

// Status is the phase of the most recent action.
type Status int

const (
	StatusIdle Status = iota
	StatusInFlight
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInFlight:
		return "in-flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ActionState describes the most recent action. Kind and Message are set
// only when Status is StatusFailed; Message may also carry a server
// confirmation on success.
type ActionState struct {
	Status  Status
	Kind    ErrorKind
	Message string
}

// Loading reports whether an action is in flight.
func (a ActionState) Loading() bool {
	return a.Status == StatusInFlight
}

// Err returns the failure message, or "" when the action did not fail.
func (a ActionState) Err() string {
	if a.Status != StatusFailed {
		return ""
	}
	return a.Message
}
