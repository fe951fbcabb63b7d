package commands

import (
	"context"
	"time"
)

// AbandonStaleCartsCommandHandler deletes one batch of stale carts per call and
// reports how many were removed.
type AbandonStaleCartsCommandHandler struct {
	uowFactory CartUoWFactory
	now        func() time.Time
}

// NewAbandonStaleCartsCommandHandler uses time.Now when now is nil.
func NewAbandonStaleCartsCommandHandler(uowFactory CartUoWFactory, now func() time.Time) AbandonStaleCartsCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AbandonStaleCartsCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

func (h AbandonStaleCartsCommandHandler) Handle(ctx context.Context, cmd AbandonStaleCartsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	stale, err := cartRepo.GetStale(ctx, h.now().Add(-cmd.MaxAge()).UTC(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	for _, c := range stale {
		if err = cartRepo.Remove(ctx, c.ID()); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
