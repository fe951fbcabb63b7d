package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand puts a product into the customer's cart, creating the cart
// on first use.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(customerID, productID, "Espresso beans", 2, price, weight)
//	if err != nil {
//	    return fmt.Errorf("invalid cart item: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money
	weight      kernel.Weight

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand checks identifiers and required fields. Quantity, price
// and weight rules are enforced by the cart itself.
func NewAddCartItemCommand(
	customerID kernel.UUID,
	productID kernel.UUID,
	productName string,
	quantity int,
	unitPrice kernel.Money,
	weight kernel.Weight,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		quantity:  quantity,
		unitPrice: unitPrice,
		weight:    weight,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setProductID(productID),
		cmd.setProductName(productName),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c AddCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AddCartItemCommand) ProductName() string {
	return c.productName
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c AddCartItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c AddCartItemCommand) Weight() kernel.Weight {
	return c.weight
}

func (c *AddCartItemCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *AddCartItemCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *AddCartItemCommand) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	c.productName = name
	return nil
}
