package services

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransportMethod is returned for a method outside the known set.
	ErrInvalidTransportMethod = errs.NewValueIsInvalidError("transport method")

	// ErrNegativeDeliveryCost is returned by CalculateTotal for delivery cost below zero.
	ErrNegativeDeliveryCost = errs.NewValueIsInvalidError("delivery cost")
)

// Documented defaults used when configuration does not override them.
var (
	DefaultBikeMaxWeight = decimal.NewFromInt(5)
	DefaultCarMaxWeight  = decimal.NewFromInt(50)
)

// Default delivery durations per transport method.
const (
	DefaultBikeDeliveryDuration  = 2 * time.Hour
	DefaultCarDeliveryDuration   = 6 * time.Hour
	DefaultTruckDeliveryDuration = 48 * time.Hour
)

// TransportPolicy maps order weight to a transport method and each method to a
// delivery duration. Weights are in kilograms and the bounds are inclusive.
type TransportPolicy struct {
	BikeMaxWeight decimal.Decimal
	CarMaxWeight  decimal.Decimal

	BikeDuration  time.Duration
	CarDuration   time.Duration
	TruckDuration time.Duration
}

// DefaultTransportPolicy returns the thresholds and durations used when
// configuration leaves them unset.
func DefaultTransportPolicy() TransportPolicy {
	return TransportPolicy{
		BikeMaxWeight: DefaultBikeMaxWeight,
		CarMaxWeight:  DefaultCarMaxWeight,
		BikeDuration:  DefaultBikeDeliveryDuration,
		CarDuration:   DefaultCarDeliveryDuration,
		TruckDuration: DefaultTruckDeliveryDuration,
	}
}

// Validate rejects negative thresholds, a car threshold below the bike one
// and non-positive durations. All violations are joined into one error.
func (p TransportPolicy) Validate() error {
	var errList []error

	if p.BikeMaxWeight.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"bike max weight", fmt.Errorf("%s kg is negative", p.BikeMaxWeight)))
	}
	if p.CarMaxWeight.LessThan(p.BikeMaxWeight) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"car max weight", fmt.Errorf("%s kg is below the bike limit %s kg", p.CarMaxWeight, p.BikeMaxWeight)))
	}
	for name, d := range map[string]time.Duration{
		"bike delivery duration":  p.BikeDuration,
		"car delivery duration":   p.CarDuration,
		"truck delivery duration": p.TruckDuration,
	} {
		if d <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not positive", d)))
		}
	}

	return errors.Join(errList...)
}

// OrderPricingService implements order.Pricing.
//
// Example usage:
//
//	pricing, err := services.NewOrderPricingService(services.DefaultTransportPolicy(), time.Now)
//	method := pricing.DetermineTransportMethod(descriptor.TotalWeight())
//	eta, err := pricing.EstimateDeliveryTime(method)
type OrderPricingService struct {
	policy TransportPolicy
	now    func() time.Time
}

var _ order.Pricing = OrderPricingService{}

// NewOrderPricingService validates the policy. A nil clock means time.Now.
func NewOrderPricingService(policy TransportPolicy, now func() time.Time) (OrderPricingService, error) {
	if err := policy.Validate(); err != nil {
		return OrderPricingService{}, err
	}
	if now == nil {
		now = time.Now
	}
	return OrderPricingService{policy: policy, now: now}, nil
}

// Policy returns the policy the service was built with.
func (s OrderPricingService) Policy() TransportPolicy {
	return s.policy
}

// DetermineTransportMethod is a pure threshold lookup:
// weight <= BikeMaxWeight is Bike, <= CarMaxWeight is Car, anything heavier is Truck.
func (s OrderPricingService) DetermineTransportMethod(totalWeight kernel.Weight) order.TransportMethod {
	kg := totalWeight.Kilograms()
	switch {
	case kg.LessThanOrEqual(s.policy.BikeMaxWeight):
		return order.TransportBike
	case kg.LessThanOrEqual(s.policy.CarMaxWeight):
		return order.TransportCar
	default:
		return order.TransportTruck
	}
}

// EstimateDeliveryTime returns now plus the configured duration for the method.
func (s OrderPricingService) EstimateDeliveryTime(method order.TransportMethod) (time.Time, error) {
	var d time.Duration
	//nolint:exhaustive // unknown methods fall through to the error below
	switch method {
	case order.TransportBike:
		d = s.policy.BikeDuration
	case order.TransportCar:
		d = s.policy.CarDuration
	case order.TransportTruck:
		d = s.policy.TruckDuration
	default:
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidTransportMethod, method)
	}
	return s.now().Add(d).UTC(), nil
}

// CalculateTotal returns Σ item subtotal + deliveryCost.
func (s OrderPricingService) CalculateTotal(items []kernel.LineItem, deliveryCost kernel.Money) (kernel.Money, error) {
	if err := deliveryCost.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if deliveryCost.IsNegative() {
		return kernel.Money{}, fmt.Errorf("%w: %s", ErrNegativeDeliveryCost, deliveryCost)
	}

	parts := make([]kernel.Money, 0, len(items)+1)
	for _, item := range items {
		parts = append(parts, item.Subtotal())
	}
	return kernel.SumMoney(deliveryCost.Currency(), append(parts, deliveryCost)...)
}
