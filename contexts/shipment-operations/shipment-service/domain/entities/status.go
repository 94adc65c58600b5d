package entities

type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// statusTransitions is the single source of truth for the lifecycle.
// Adding a state is a data change, not new branching.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func IsSupportedStatus(value Status) bool {
	_, ok := statusTransitions[value]
	return ok
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo checks the transition table. A self-transition is not in
// the table; callers treat it as an idempotent no-op before consulting this.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func AllowedTransitions(s Status) []Status {
	return append([]Status(nil), statusTransitions[s]...)
}
