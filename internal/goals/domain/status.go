package domain

// Status represents the lifecycle status of a goal.
type Status string

const (
	// StatusActive indicates the goal is being worked on.
	StatusActive Status = "active"
	// StatusCompleted indicates every milestone of the goal is done.
	StatusCompleted Status = "completed"
	// StatusPaused indicates the goal is temporarily on hold.
	StatusPaused Status = "paused"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusPaused:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status represents a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// CanTransitionTo returns true if transitioning to the given status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusActive:
		return target == StatusPaused || target == StatusCompleted
	case StatusPaused:
		return target == StatusActive
	case StatusCompleted:
		return false
	default:
		return false
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatusTransition
	}
	return status, nil
}
