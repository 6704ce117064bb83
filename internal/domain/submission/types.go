package submission

import "fmt"

// Status values are strictly ordered; Order reflects the pipeline position.
type Status string

const (
	StatusReceived         Status = "received"
	StatusInProgress       Status = "in_progress"
	StatusReadyForReview   Status = "ready_for_review"
	StatusChangesRequested Status = "changes_requested"
	StatusCompleted        Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusReadyForReview, StatusChangesRequested, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) Order() int {
	switch s {
	case StatusReceived:
		return 0
	case StatusInProgress:
		return 1
	case StatusReadyForReview:
		return 2
	case StatusChangesRequested:
		return 3
	case StatusCompleted:
		return 4
	default:
		return -1
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid submission status %q", s)
	}
	return st, nil
}

var transitions = map[Status][]Status{
	StatusReceived:         {StatusInProgress},
	StatusInProgress:       {StatusReadyForReview},
	StatusReadyForReview:   {StatusChangesRequested, StatusCompleted},
	StatusChangesRequested: {StatusInProgress, StatusReadyForReview},
	StatusCompleted:        {}, // terminal
}

// CanTransition reports whether from -> to is an edge of the pipeline graph.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IllegalTransitionError names the disallowed edge; the submission's status
// and timestamps are left unchanged when it is returned.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}
