package order

import (
	"fmt"
	"slices"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> Dispatched ──> InTransit ──> Delivered
//	   │             │
//	   └──────┬──────┘
//	          v
//	      Cancelled
//
// Delivered and Cancelled are terminal. Transitions are strictly forward and
// none may be skipped.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of an order built from a checkout.
	Created

	// Dispatched means the order left the warehouse.
	Dispatched

	// InTransit means the carrier is on the way. From here the order can no
	// longer be cancelled.
	InTransit

	// Delivered is the successful final state.
	Delivered

	// Cancelled is the unsuccessful final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Dispatched: "Dispatched",
		InTransit:  "InTransit",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getTransitions lists, for every non-terminal status, the statuses reachable in one step.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		Created:    {Dispatched, Cancelled},
		Dispatched: {InTransit, Cancelled},
		InTransit:  {Delivered},
	}
}

// ParseStatus converts a persisted or wire name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getTransitions()[s], target)
}

// Dispatch transitions Created -> Dispatched.
func (s Status) Dispatch() (Status, error) {
	return s.transitionTo(Dispatched)
}

// StartTransit transitions Dispatched -> InTransit.
func (s Status) StartTransit() (Status, error) {
	return s.transitionTo(InTransit)
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transitionTo(Delivered)
}

// Cancel transitions Created or Dispatched -> Cancelled.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) once the order is in transit, delivered or already cancelled
func (s Status) Cancel() (Status, error) {
	return s.transitionTo(Cancelled)
}

func (s Status) transitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), target.String())
	}
	return target, nil
}
