package services

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// StockCheckoutPolicy allows checkout only when the inventory service confirms
// every line can be fulfilled in full.
type StockCheckoutPolicy struct {
	stock ports.StockChecker
}

var _ cart.CheckoutPolicy = StockCheckoutPolicy{}

// NewStockCheckoutPolicy requires a non-nil checker.
func NewStockCheckoutPolicy(stock ports.StockChecker) (StockCheckoutPolicy, error) {
	if stock == nil {
		return StockCheckoutPolicy{}, errs.NewValueIsRequiredError("stock checker")
	}
	return StockCheckoutPolicy{stock: stock}, nil
}

// CanCheckout returns false for an empty cart without calling inventory.
// Inventory failures are returned wrapped with the cart id.
func (p StockCheckoutPolicy) CanCheckout(ctx context.Context, c *cart.Cart) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	if c.IsEmpty() {
		return false, nil
	}

	available, err := p.stock.CheckAvailability(ctx, c.Items())
	if err != nil {
		return false, fmt.Errorf("check stock for cart %s: %w", c.ID(), err)
	}
	return available, nil
}
