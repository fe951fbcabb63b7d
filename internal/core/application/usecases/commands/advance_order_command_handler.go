package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler applies a forward status transition. Illegal
// transitions surface as errs.ErrInvalidStateTransition and nothing is saved.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		switch cmd.Step() {
		case StepDispatch:
			return o.MarkAsDispatched()
		case StepInTransit:
			return o.MarkAsInTransit()
		case StepDeliver:
			return o.MarkAsDelivered()
		default:
			return cmd.Step().Validate()
		}
	})
}
