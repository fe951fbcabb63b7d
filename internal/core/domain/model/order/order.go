package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// MaxDeliveryNotesLength bounds the free-text courier instructions.
const MaxDeliveryNotesLength = 1000

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	ErrEmptyCart              = cart.ErrEmptyCart
	ErrInvalidDeliveryCost    = errs.NewValueIsInvalidError("delivery cost")
	ErrInvalidStateTransition = errs.ErrInvalidStateTransition
	ErrPaymentAlreadyLinked   = errors.New("order already has a payment linked")

	// ErrTotalCostMismatch is returned when a total does not equal item subtotals plus delivery.
	ErrTotalCostMismatch = errs.NewValueIsInvalidError("order total cost")
)

// Option customizes order creation.
type Option func(*options)

type options struct {
	transport     TransportMethod
	deliveryNotes string
	now           func() time.Time
}

// WithTransportMethod skips the weight based transport selection.
func WithTransportMethod(method TransportMethod) Option {
	return func(o *options) {
		o.transport = method
	}
}

// WithDeliveryNotes attaches courier instructions. Notes are trimmed and
// limited to MaxDeliveryNotesLength bytes.
func WithDeliveryNotes(notes string) Option {
	return func(o *options) {
		o.deliveryNotes = notes
	}
}

// WithClock replaces time.Now as the source of timestamps and event times.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Order is the aggregate root for a placed purchase, from creation at checkout
// to delivery or cancellation.
//
// Order follows these invariants:
//   - Items are value snapshots taken at checkout; nothing changes them afterwards
//   - totalCost == Σ item subtotal + deliveryCost, re-checked after every mutation
//   - deliveryCost >= 0 and shares the item currency
//   - Status moves only along the transitions defined by Status
//   - paymentID is set at most once
//
// Only status, paymentID and updatedAt change after creation.
type Order struct {
	id                    kernel.UUID
	customerID            kernel.UUID
	cartID                kernel.UUID
	items                 []kernel.LineItem
	currency              kernel.Currency
	deliveryCost          kernel.Money
	totalCost             kernel.Money
	deliveryNotes         string
	transportMethod       TransportMethod
	estimatedDeliveryTime time.Time
	paymentID             *kernel.UUID
	status                Status
	cancellationReason    string
	createdAt             time.Time
	updatedAt             time.Time
	version               int64

	events event.Recorder
	now    func() time.Time
	guard  guard.ConstructorGuard
}

// NewOrder builds an order from a successful cart checkout.
//
// Parameters:
//   - id: identifier for the new order (usually OrderRepository.NextIdentity)
//   - descriptor: the cart checkout snapshot; its items are copied
//   - deliveryCost: non-negative, in the cart currency
//   - pricing: resolves transport method, delivery estimate and total cost
//
// Returns ErrEmptyCart for a descriptor without items and ErrInvalidDeliveryCost
// for a negative or missing delivery cost. On success the order is Created and
// holds one pending OrderCreated event.
//
// Example:
//
//	descriptor, err := c.Checkout(ctx, stockPolicy)
//	o, err := order.NewOrder(orderRepo.NextIdentity(), descriptor, shipping, pricing,
//	    order.WithDeliveryNotes("leave at the door"))
func NewOrder(
	id kernel.UUID,
	descriptor cart.CheckoutDescriptor,
	deliveryCost kernel.Money,
	pricing Pricing,
	opts ...Option,
) (*Order, error) {
	cfg := options{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	if descriptor.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if pricing == nil {
		return nil, errs.NewValueIsRequiredError("pricing")
	}

	o := &Order{
		status:   Created,
		currency: descriptor.Currency(),
		now:      cfg.now,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(descriptor.CustomerID()),
		o.setCartID(descriptor.CartID()),
		o.setItems(descriptor.Items()),
		o.setDeliveryCost(deliveryCost),
		o.setDeliveryNotes(cfg.deliveryNotes),
	); err != nil {
		return nil, err
	}

	method := cfg.transport
	if method == TransportUnknown {
		method = pricing.DetermineTransportMethod(descriptor.TotalWeight())
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}

	eta, err := pricing.EstimateDeliveryTime(method)
	if err != nil {
		return nil, fmt.Errorf("estimate delivery time: %w", err)
	}

	total, err := pricing.CalculateTotal(o.Items(), o.deliveryCost)
	if err != nil {
		return nil, fmt.Errorf("calculate total cost: %w", err)
	}

	o.transportMethod = method
	o.estimatedDeliveryTime = eta.UTC()
	o.totalCost = total
	if err := o.CheckInvariants(); err != nil {
		return nil, err
	}

	o.createdAt = o.now().UTC()
	o.updatedAt = o.createdAt
	o.events.Record(event.OrderCreated{
		Metadata:              event.NewMetadata(event.OrderCreatedName, o.id, o.now()),
		CustomerID:            o.customerID,
		CartID:                o.cartID,
		Status:                o.status.String(),
		Currency:              o.currency.String(),
		TotalCost:             o.totalCost.Amount(),
		DeliveryCost:          o.deliveryCost.Amount(),
		TransportMethod:       o.transportMethod.String(),
		EstimatedDeliveryTime: o.estimatedDeliveryTime,
		ItemCount:             len(o.items),
	})

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID                    kernel.UUID
	CustomerID            kernel.UUID
	CartID                kernel.UUID
	Items                 []kernel.LineItem
	DeliveryCost          kernel.Money
	TotalCost             kernel.Money
	DeliveryNotes         string
	TransportMethod       TransportMethod
	EstimatedDeliveryTime time.Time
	PaymentID             *kernel.UUID
	Status                Status
	CancellationReason    string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Version               int64
}

// RestoreOrder rebuilds an order loaded from storage. No events are recorded,
// and the stored total must still match items and delivery cost.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		currency: p.DeliveryCost.Currency(),
		now:      time.Now,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setCartID(p.CartID),
		o.setDeliveryCost(p.DeliveryCost),
		o.setItems(p.Items),
		o.setDeliveryNotes(p.DeliveryNotes),
		p.TransportMethod.Validate(),
		p.Status.Validate(),
		o.setPaymentID(p.PaymentID),
	); err != nil {
		return nil, err
	}

	o.totalCost = p.TotalCost
	o.transportMethod = p.TransportMethod
	o.estimatedDeliveryTime = p.EstimatedDeliveryTime
	o.status = p.Status
	o.cancellationReason = p.CancellationReason
	o.createdAt = p.CreatedAt
	o.updatedAt = p.UpdatedAt
	o.version = p.Version

	if err := o.CheckInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return o != nil && other != nil && o.id.IsEqual(other.id)
}

// ID is assigned by the repository's NextIdentity and never changes.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID is copied from the cart at checkout.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CartID references the cart the order was checked out from.
func (o *Order) CartID() kernel.UUID {
	return o.cartID
}

// Items returns a copy of the line item snapshots.
func (o *Order) Items() []kernel.LineItem {
	return slices.Clone(o.items)
}

// Currency is shared by every amount on the order.
func (o *Order) Currency() kernel.Currency {
	return o.currency
}

// DeliveryCost is never negative and may be zero.
func (o *Order) DeliveryCost() kernel.Money {
	return o.deliveryCost
}

// TotalCost is the stored grand total: item subtotals plus delivery.
//
// It is fixed at creation. CheckInvariants compares it against
// CalculateTotalCost, and every state change refuses to run while the two
// disagree.
func (o *Order) TotalCost() kernel.Money {
	return o.totalCost
}

// DeliveryNotes returns the trimmed courier instructions, possibly empty.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// TransportMethod is chosen from the total weight unless overridden at creation.
func (o *Order) TransportMethod() TransportMethod {
	return o.transportMethod
}

// EstimatedDeliveryTime is the UTC instant computed at creation from the transport method.
func (o *Order) EstimatedDeliveryTime() time.Time {
	return o.estimatedDeliveryTime
}

// PaymentID returns nil until a payment is linked.
func (o *Order) PaymentID() *kernel.UUID {
	if o.paymentID == nil {
		return nil
	}
	id := *o.paymentID
	return &id
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// CancellationReason is empty unless the order was cancelled with a reason.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CreatedAt is the UTC creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt moves with every status change and payment link.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the persisted revision used for optimistic locking.
func (o *Order) Version() int64 {
	return o.version
}

// SyncVersion is called by repositories after a successful write.
func (o *Order) SyncVersion(version int64) {
	o.version = version
}

// PendingEvents returns events recorded since the last ClearEvents.
func (o *Order) PendingEvents() []event.Event {
	return o.events.PendingEvents()
}

// ClearEvents drops pending events. The unit of work calls it once the
// transaction has committed.
func (o *Order) ClearEvents() {
	o.events.ClearEvents()
}

// CalculateTotalCost recomputes Σ item subtotal + deliveryCost from the snapshots.
func (o *Order) CalculateTotalCost() (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	subtotals := make([]kernel.Money, 0, len(o.items))
	for _, item := range o.items {
		subtotals = append(subtotals, item.Subtotal())
	}
	return kernel.SumMoney(o.currency, append(subtotals, o.deliveryCost)...)
}

// CheckInvariants verifies that the stored total matches the derived one.
func (o *Order) CheckInvariants() error {
	expected, err := o.CalculateTotalCost()
	if err != nil {
		return err
	}
	if err := o.totalCost.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrTotalCostMismatch, err)
	}
	if !expected.IsEqual(o.totalCost) {
		return fmt.Errorf("%w: stored %s, computed %s", ErrTotalCostMismatch, o.totalCost, expected)
	}
	return nil
}

// MarkAsDispatched moves a Created order to Dispatched and records OrderDispatched.
func (o *Order) MarkAsDispatched() error {
	return o.transition(Status.Dispatch, func(s event.StatusChanged) event.Event {
		return event.OrderDispatched{StatusChanged: s}
	}, event.OrderDispatchedName)
}

// MarkAsInTransit moves a Dispatched order to InTransit and records OrderInTransit.
func (o *Order) MarkAsInTransit() error {
	return o.transition(Status.StartTransit, func(s event.StatusChanged) event.Event {
		return event.OrderInTransit{StatusChanged: s}
	}, event.OrderInTransitName)
}

// MarkAsDelivered moves an InTransit order to Delivered and records OrderDelivered.
func (o *Order) MarkAsDelivered() error {
	return o.transition(Status.Deliver, func(s event.StatusChanged) event.Event {
		return event.OrderDelivered{StatusChanged: s}
	}, event.OrderDeliveredName)
}

// Cancel moves a Created or Dispatched order to Cancelled and records
// OrderCancelled. Orders in transit or delivered cannot be cancelled.
func (o *Order) Cancel(reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxDeliveryNotesLength {
		return errs.NewValueIsOutOfRangeError("cancellation reason length", len(reason), 0, MaxDeliveryNotesLength)
	}

	if err := o.transition(Status.Cancel, func(s event.StatusChanged) event.Event {
		return event.OrderCancelled{StatusChanged: s, Reason: reason}
	}, event.OrderCancelledName); err != nil {
		return err
	}

	o.cancellationReason = reason
	return nil
}

// LinkPayment records the payment that settled the order.
//
// Linking the same payment again is a no-op. A different payment fails with
// ErrPaymentAlreadyLinked, and a cancelled order cannot take a payment.
func (o *Order) LinkPayment(paymentID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := paymentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("payment id", err)
	}
	if o.paymentID != nil {
		if o.paymentID.IsEqual(paymentID) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrPaymentAlreadyLinked, o.paymentID)
	}
	if o.status == Cancelled {
		return errs.NewInvalidStateTransitionError("order", o.status.String(), "PaymentLinked")
	}
	if err := o.CheckInvariants(); err != nil {
		return err
	}

	o.paymentID = &paymentID
	o.updatedAt = o.now().UTC()
	o.events.Record(event.OrderPaymentLinked{
		Metadata:  event.NewMetadata(event.OrderPaymentLinkedName, o.id, o.now()),
		Status:    o.status.String(),
		PaymentID: paymentID,
	})
	return nil
}

// transition validates the status change and the cost invariants first, then
// mutates, then records the event.
func (o *Order) transition(
	next func(Status) (Status, error),
	build func(event.StatusChanged) event.Event,
	name event.Name,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	target, err := next(o.status)
	if err != nil {
		return err
	}
	if err := o.CheckInvariants(); err != nil {
		return err
	}

	previous := o.status
	o.status = target
	o.updatedAt = o.now().UTC()
	o.events.Record(build(event.NewStatusChanged(name, o.id, previous.String(), target.String(), o.now())))
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setCartID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("cart id", err)
	}
	o.cartID = id
	return nil
}

func (o *Order) setItems(items []kernel.LineItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.UnitPrice().Currency() != o.currency {
			return fmt.Errorf("%w: order is priced in %s, item in %s",
				kernel.ErrCurrencyMismatch, o.currency, item.UnitPrice().Currency())
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setDeliveryCost(cost kernel.Money) error {
	if err := cost.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDeliveryCost, err)
	}
	if cost.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidDeliveryCost, cost)
	}
	if cost.Currency() != o.currency {
		return fmt.Errorf("%w: order is priced in %s, delivery in %s",
			kernel.ErrCurrencyMismatch, o.currency, cost.Currency())
	}
	o.deliveryCost = cost
	return nil
}

func (o *Order) setDeliveryNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxDeliveryNotesLength {
		return errs.NewValueIsOutOfRangeError("delivery notes length", len(notes), 0, MaxDeliveryNotesLength)
	}
	o.deliveryNotes = notes
	return nil
}

func (o *Order) setPaymentID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("payment id", err)
	}
	paymentID := *id
	o.paymentID = &paymentID
	return nil
}
