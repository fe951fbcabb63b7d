package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// TransportMethod is the vehicle class used to deliver an order.
type TransportMethod int

// TransportUnknown is the zero value and never valid on an order.
const (
	TransportUnknown TransportMethod = iota
	TransportBike
	TransportCar
	TransportTruck
)

func getTransportStrings() map[TransportMethod]string {
	return map[TransportMethod]string{
		TransportUnknown: "Unknown",
		TransportBike:    "Bike",
		TransportCar:     "Car",
		TransportTruck:   "Truck",
	}
}

// ParseTransportMethod maps the exact names returned by String back to a
// method. Matching is case sensitive and "Unknown" is rejected.
//
// Example:
//
//	m, err := order.ParseTransportMethod("Car") // order.TransportCar, nil
//	_, err = order.ParseTransportMethod("car")  // errs.ErrValueIsInvalid
func ParseTransportMethod(s string) (TransportMethod, error) {
	for method, name := range getTransportStrings() {
		if method != TransportUnknown && name == s {
			return method, nil
		}
	}
	return TransportUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transport method", fmt.Errorf("%q is not a valid transport method", s))
}

// Validate accepts Bike, Car and Truck.
func (m TransportMethod) Validate() error {
	if m <= TransportUnknown || m > TransportTruck {
		return errs.NewValueIsInvalidErrorWithCause(
			"transport method", fmt.Errorf("%d is not a valid transport method", m))
	}
	return nil
}

// String returns "Bike", "Car" or "Truck", and "Unknown" for anything else.
func (m TransportMethod) String() string {
	if str, ok := getTransportStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
