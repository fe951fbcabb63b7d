package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Pricing is the order domain service consulted while building an order.
// Implementations must be deterministic for the same inputs, apart from the
// delivery estimate which is relative to the moment of the call.
type Pricing interface {
	DetermineTransportMethod(totalWeight kernel.Weight) TransportMethod
	EstimateDeliveryTime(method TransportMethod) (time.Time, error)
	CalculateTotal(items []kernel.LineItem, deliveryCost kernel.Money) (kernel.Money, error)
}
