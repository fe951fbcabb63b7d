// Package order provides the Order aggregate root and its delivery lifecycle.
//
// The package includes:
//   - Order: built once from a cart checkout descriptor, holding immutable
//     line item snapshots, costs, transport and payment linkage
//   - Status: the state machine Created -> Dispatched -> InTransit -> Delivered,
//     with Cancelled reachable from Created or Dispatched only
//   - TransportMethod: bike, car or truck, chosen by weight unless overridden
//   - Pricing: the domain service contract used to resolve transport, delivery
//     estimate and total cost
//
// Key business rules:
//   - An order needs at least one item and a non-negative delivery cost
//   - totalCost always equals the sum of item subtotals plus delivery cost
//   - Transitions cannot be skipped or reversed; Delivered and Cancelled are terminal
//   - A rejected transition leaves the order untouched
//   - Every successful transition records exactly one domain event
//
// The package follows Domain-Driven Design principles: fields are private, state
// changes go through methods that validate first and mutate second.
package order
