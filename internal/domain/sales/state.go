package sales

import "fmt"

// SaleState represents the lifecycle state of a sale
type SaleState string

const (
	StateDraft          SaleState = "DRAFT"
	StateApproved       SaleState = "APPROVED"
	StatePartiallyPayed SaleState = "PARTIALLY_PAYED"
	StatePayed          SaleState = "PAYED"
	StateCancelled      SaleState = "CANCELLED"
)

// IsValid checks if the state is a known SaleState
func (s SaleState) IsValid() bool {
	switch s {
	case StateDraft, StateApproved, StatePartiallyPayed, StatePayed, StateCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleState
func (s SaleState) String() string {
	return string(s)
}

// SaleEvent represents a lifecycle event applied to a sale
type SaleEvent string

const (
	EventApprove      SaleEvent = "APPROVE"
	EventCancel       SaleEvent = "CANCEL"
	EventPartiallyPay SaleEvent = "PARTIALLY_PAY"
	EventPay          SaleEvent = "PAY"
)

// IsValid checks if the event is a known SaleEvent
func (e SaleEvent) IsValid() bool {
	switch e {
	case EventApprove, EventCancel, EventPartiallyPay, EventPay:
		return true
	}
	return false
}

// String returns the string representation of SaleEvent
func (e SaleEvent) String() string {
	return string(e)
}

// IllegalTransitionError reports an event that is not legal in the current
// state. It is always surfaced to the caller, never swallowed.
type IllegalTransitionError struct {
	From  SaleState
	Event SaleEvent
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: event %s is not allowed in state %s", e.Event, e.From)
}

// transitions is the complete lifecycle table. Every (state, event) pair
// absent from it is illegal; states reachable only through it.
var transitions = map[SaleState]map[SaleEvent]SaleState{
	StateDraft: {
		EventApprove: StateApproved,
	},
	StateApproved: {
		EventPay:          StatePayed,
		EventPartiallyPay: StatePartiallyPayed,
		EventCancel:       StateCancelled,
	},
	StatePartiallyPayed: {
		EventPay:    StatePayed,
		EventCancel: StateCancelled,
	},
	StatePayed: {
		EventCancel: StateCancelled,
	},
}

// Next computes the state reached by applying event to from. It is pure:
// persistence of the result is the caller's concern, which keeps the table
// independently testable.
func Next(from SaleState, event SaleEvent) (SaleState, error) {
	if to, ok := transitions[from][event]; ok {
		return to, nil
	}
	return from, &IllegalTransitionError{From: from, Event: event}
}
