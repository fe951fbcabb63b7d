// Package services provides stateless domain services for the ordering context.
//
// The package includes:
//   - OrderPricingService: transport selection by weight, delivery estimates and
//     order totals, driven by a configurable TransportPolicy
//   - StockCheckoutPolicy: the cart checkout rule backed by an inventory lookup
//
// Services hold configuration only. The same input always yields the same result,
// apart from delivery estimates which are relative to the injected clock.
package services
