// Package cart implements the Cart aggregate: the mutable set of line items a
// customer assembles before checkout.
//
// Key business rules:
//   - Items are unique by product; adding a product that is already in the cart
//     increases its quantity and replaces the recorded name, unit price and weight
//   - Every line has quantity >= 1 and a positive unit price in the cart currency
//   - Total cost and total weight are recomputed from the items after every mutation
//   - An empty cart cannot be checked out, and checkout also requires the
//     CheckoutPolicy (stock availability) to agree
//
// Checkout produces a CheckoutDescriptor holding independent copies of the items.
// The cart never builds an order itself.
package cart
