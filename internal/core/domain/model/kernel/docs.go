// Package kernel holds the value objects shared by the cart and order aggregates.
//
// The package includes:
//   - UUID: identifier for carts, orders, customers, products and payments
//   - Currency and Money: exact decimal amounts bound to an ISO 4217 code
//   - Quantity: a line item count, always at least one
//   - Weight: a non-negative mass in kilograms
//   - LineItem: one product entry shared by carts and orders, with a derived subtotal
//
// Every value object is immutable. Zero values are invalid and fail Validate,
// so aggregates can detect data that bypassed the constructors.
package kernel
