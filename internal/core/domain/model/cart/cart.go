package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart bypassed NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

	// Line item errors, re-exported so callers need not import kernel.
	ErrInvalidQuantity  = kernel.ErrInvalidQuantity
	ErrInvalidPrice     = kernel.ErrInvalidPrice
	ErrInvalidWeight    = kernel.ErrInvalidWeight
	ErrCurrencyMismatch = kernel.ErrCurrencyMismatch

	// Errors returned by item updates and Checkout.
	ErrItemNotFound       = fmt.Errorf("cart item: %w", errs.ErrObjectNotFound)
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutNotAllowed = errors.New("checkout is not allowed")

	// ErrTotalsOutOfSync is returned by CheckInvariants when stored totals drift from the items.
	ErrTotalsOutOfSync = errs.NewValueIsInvalidError("cart totals")
)

// CheckoutPolicy decides whether a non-empty cart may be checked out,
// typically by asking an inventory service about stock.
type CheckoutPolicy interface {
	CanCheckout(ctx context.Context, cart *Cart) (bool, error)
}

// CheckoutPolicyFunc adapts a plain function to CheckoutPolicy.
type CheckoutPolicyFunc func(ctx context.Context, cart *Cart) (bool, error)

// CanCheckout calls f.
func (f CheckoutPolicyFunc) CanCheckout(ctx context.Context, cart *Cart) (bool, error) {
	return f(ctx, cart)
}

// Option customizes a Cart at construction time.
type Option func(*Cart)

// WithClock replaces time.Now as the source of createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

// Cart is the aggregate root for a customer's pending purchase.
//
// Mutating methods validate their input before touching any field, so a
// rejected call leaves the cart exactly as it was.
type Cart struct {
	id          kernel.UUID
	customerID  kernel.UUID
	currency    kernel.Currency
	items       []kernel.LineItem
	totalCost   kernel.Money
	totalWeight kernel.Weight
	createdAt   time.Time
	updatedAt   time.Time
	version     int64
	now         func() time.Time
	guard       guard.ConstructorGuard
}

// NewCart creates an empty cart priced in the given currency.
func NewCart(id kernel.UUID, customerID kernel.UUID, currency kernel.Currency, opts ...Option) (*Cart, error) {
	c := &Cart{now: time.Now, guard: guard.NewConstructorGuard()}
	for _, opt := range opts {
		opt(c)
	}

	if err := errors.Join(
		c.setID(id),
		c.setCustomerID(customerID),
		c.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	if err := c.applyItems(nil); err != nil {
		return nil, err
	}
	c.createdAt = c.updatedAt

	return c, nil
}

// RestoreCart rebuilds a persisted cart. Totals are recomputed from items, and
// items must be unique by product and priced in the cart currency.
func RestoreCart(
	id kernel.UUID,
	customerID kernel.UUID,
	currency kernel.Currency,
	items []kernel.LineItem,
	createdAt time.Time,
	updatedAt time.Time,
	version int64,
) (*Cart, error) {
	c := &Cart{now: time.Now, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setCustomerID(customerID),
		c.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := c.checkLine(item); err != nil {
			return nil, err
		}
		if _, dup := seen[item.ProductID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"cart items", fmt.Errorf("product %s appears more than once", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}

	totals, err := calculateTotals(currency, items)
	if err != nil {
		return nil, err
	}

	c.items = slices.Clone(items)
	c.totalCost = totals.Cost
	c.totalWeight = totals.Weight
	c.createdAt = createdAt
	c.updatedAt = updatedAt
	c.version = version
	return c, nil
}

// Validate fails with ErrCartIsNotConstructed for a nil cart or one that did
// not come from NewCart or RestoreCart. Every mutating method calls it first.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// IsEqual compares two carts by their unique identifiers.
// It is false when either cart is nil.
func (c *Cart) IsEqual(other *Cart) bool {
	return c != nil && other != nil && c.id.IsEqual(other.id)
}

// ID is assigned by the repository's NextIdentity and never changes.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// CustomerID references the owner in the customer context.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// Currency is fixed at creation. Items priced in any other currency are rejected.
func (c *Cart) Currency() kernel.Currency {
	return c.currency
}

// Items returns the lines in insertion order. The slice is a copy.
func (c *Cart) Items() []kernel.LineItem {
	return slices.Clone(c.items)
}

// Item looks up the line for a product.
func (c *Cart) Item(productID kernel.UUID) (kernel.LineItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.items[i], true
	}
	return kernel.LineItem{}, false
}

// TotalCost is the sum of item subtotals, kept in step with the items by
// every mutation. An empty cart reports zero in the cart currency.
//
// Example:
//
//	_ = c.AddItem(chairID, "Chair", 2, price40, weight3) // TotalCost 80.00 USD
func (c *Cart) TotalCost() kernel.Money {
	return c.totalCost
}

// TotalWeight is the sum of item weights times quantities, in kilograms.
func (c *Cart) TotalWeight() kernel.Weight {
	return c.totalWeight
}

// ItemCount is the sum of quantities over all lines; zero for an empty cart.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity().Int()
	}
	return n
}

// CreatedAt is the UTC creation instant.
func (c *Cart) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt moves with every successful mutation. The abandoned cart job reads it.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version is the persisted revision used for optimistic locking.
func (c *Cart) Version() int64 {
	return c.version
}

// SyncVersion is called by repositories after a successful write.
func (c *Cart) SyncVersion(version int64) {
	c.version = version
}

// IsEmpty reports whether the cart has no lines. Checkout refuses empty carts.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem appends a line or merges into the existing line for the product.
// On merge the quantities are summed and the new name, price and weight win.
func (c *Cart) AddItem(
	productID kernel.UUID,
	productName string,
	quantity int,
	unitPrice kernel.Money,
	weight kernel.Weight,
) error {
	if err := c.Validate(); err != nil {
		return err
	}

	line, err := kernel.NewLineItem(productID, productName, quantity, unitPrice, weight)
	if err != nil {
		return err
	}
	if err := c.checkLine(line); err != nil {
		return err
	}

	items := slices.Clone(c.items)
	if i := c.indexOf(productID); i >= 0 {
		merged, err := line.WithQuantity(items[i].Quantity().Int() + quantity)
		if err != nil {
			return err
		}
		items[i] = merged
	} else {
		items = append(items, line)
	}

	return c.applyItems(items)
}

// RemoveItem drops the line for the product. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}

	return c.applyItems(slices.Delete(slices.Clone(c.items), i, i+1))
}

// UpdateItemQuantity sets an absolute quantity. Use RemoveItem to delete a line.
func (c *Cart) UpdateItemQuantity(productID kernel.UUID, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: product %s", ErrItemNotFound, productID)
	}

	updated, err := c.items[i].WithQuantity(quantity)
	if err != nil {
		return err
	}

	items := slices.Clone(c.items)
	items[i] = updated
	return c.applyItems(items)
}

// Clear removes every line and resets totals to zero.
func (c *Cart) Clear() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.applyItems(nil)
}

// Totals are values derived from the cart items.
type Totals struct {
	Cost     kernel.Money
	Weight   kernel.Weight
	Quantity int
}

// CalculateTotals recomputes totals from the current items without changing the cart.
func (c *Cart) CalculateTotals() (Totals, error) {
	if err := c.Validate(); err != nil {
		return Totals{}, err
	}
	return calculateTotals(c.currency, c.items)
}

// CheckInvariants verifies that the stored totals match the items.
func (c *Cart) CheckInvariants() error {
	totals, err := c.CalculateTotals()
	if err != nil {
		return err
	}
	if !totals.Cost.IsEqual(c.totalCost) || !totals.Weight.IsEqual(c.totalWeight) {
		return fmt.Errorf("%w: stored %s / %s, computed %s / %s",
			ErrTotalsOutOfSync, c.totalCost, c.totalWeight, totals.Cost, totals.Weight)
	}
	return nil
}

// Checkout validates the cart for conversion into an order and returns a
// snapshot of its contents. The cart itself is left unchanged.
func (c *Cart) Checkout(ctx context.Context, policy CheckoutPolicy) (CheckoutDescriptor, error) {
	if err := c.Validate(); err != nil {
		return CheckoutDescriptor{}, err
	}
	if c.IsEmpty() {
		return CheckoutDescriptor{}, ErrEmptyCart
	}
	if policy == nil {
		return CheckoutDescriptor{}, errs.NewValueIsRequiredError("checkout policy")
	}

	allowed, err := policy.CanCheckout(ctx, c)
	if err != nil {
		return CheckoutDescriptor{}, fmt.Errorf("evaluate checkout policy: %w", err)
	}
	if !allowed {
		return CheckoutDescriptor{}, ErrCheckoutNotAllowed
	}

	return CheckoutDescriptor{
		cartID:      c.id,
		customerID:  c.customerID,
		currency:    c.currency,
		items:       slices.Clone(c.items),
		totalCost:   c.totalCost,
		totalWeight: c.totalWeight,
	}, nil
}

// applyItems recomputes totals for the candidate items and only then commits them.
func (c *Cart) applyItems(items []kernel.LineItem) error {
	totals, err := calculateTotals(c.currency, items)
	if err != nil {
		return err
	}

	c.items = items
	c.totalCost = totals.Cost
	c.totalWeight = totals.Weight
	c.updatedAt = c.now().UTC()
	return nil
}

func (c *Cart) checkLine(line kernel.LineItem) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if line.UnitPrice().Currency() != c.currency {
		return fmt.Errorf("%w: cart is priced in %s, item in %s",
			ErrCurrencyMismatch, c.currency, line.UnitPrice().Currency())
	}
	return nil
}

func (c *Cart) indexOf(productID kernel.UUID) int {
	return slices.IndexFunc(c.items, func(item kernel.LineItem) bool {
		return item.ProductID().IsEqual(productID)
	})
}

func (c *Cart) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("cart id", err)
	}
	c.id = id
	return nil
}

func (c *Cart) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = id
	return nil
}

func (c *Cart) setCurrency(currency kernel.Currency) error {
	code, err := kernel.NewCurrency(string(currency))
	if err != nil {
		return err
	}
	c.currency = code
	return nil
}

func calculateTotals(currency kernel.Currency, items []kernel.LineItem) (Totals, error) {
	cost, err := kernel.ZeroMoney(currency)
	if err != nil {
		return Totals{}, err
	}
	weight := kernel.ZeroWeight()
	quantity := 0

	for _, item := range items {
		if cost, err = cost.Add(item.Subtotal()); err != nil {
			return Totals{}, err
		}
		weight = weight.Add(item.TotalWeight())
		quantity += item.Quantity().Int()
	}
	if !weight.IsStorable() {
		return Totals{}, fmt.Errorf("%w: %w", ErrInvalidWeight,
			errs.NewValueIsOutOfRangeError("cart total weight", weight.Kilograms(), 0, kernel.MaxWeightKg))
	}

	return Totals{Cost: cost, Weight: weight, Quantity: quantity}, nil
}
