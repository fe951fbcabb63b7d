package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// StockChecker asks the inventory context whether every line can be fulfilled.
type StockChecker interface {
	// CheckAvailability reports false when any line cannot be fulfilled in full.
	// An error means the answer is unknown, not that stock is missing.
	CheckAvailability(ctx context.Context, items []kernel.LineItem) (bool, error)
}
