package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// OrderStep is one forward step of the delivery lifecycle.
type OrderStep string

const (
	StepDispatch  OrderStep = "dispatch"
	StepInTransit OrderStep = "in-transit"
	StepDeliver   OrderStep = "deliver"
)

func (s OrderStep) Validate() error {
	switch s {
	case StepDispatch, StepInTransit, StepDeliver:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order step", fmt.Errorf("%q is not a known step", string(s)))
	}
}

// AdvanceOrderCommand moves an order one step forward: dispatch, in-transit or deliver.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	step    OrderStep

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(orderID kernel.UUID, step OrderStep) (AdvanceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), step.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}
	return AdvanceOrderCommand{orderID: orderID, step: step, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) Step() OrderStep {
	return c.step
}
