package entity

// Status is the lifecycle state of an auction. Transitions are monotone:
// draft → upcoming → active → {ended | sold}, and any non-terminal state
// may move to cancelled. No transition revisits an earlier state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusEnded     Status = "ended"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the engine no longer owns the auction.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusEnded, StatusSold, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// lifecycle DAG.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}

	if next == StatusCancelled {
		return true
	}

	switch s {
	case StatusDraft:
		return next == StatusUpcoming
	case StatusUpcoming:
		return next == StatusActive
	case StatusActive:
		return next == StatusEnded || next == StatusSold
	}

	return false
}
