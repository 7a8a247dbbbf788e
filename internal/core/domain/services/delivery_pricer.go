package services

import (
	"math"

	"restaurant/internal/core/domain/model/kernel"
)

const (
	// BaseDeliveryFee is the flat fee in currency units charged for any delivery.
	BaseDeliveryFee int64 = 500

	// FreeDistanceKm is the distance covered by the base fee alone.
	FreeDistanceKm = 2.0

	// FeePerExtraKm is charged per started kilometer beyond FreeDistanceKm.
	FeePerExtraKm int64 = 100
)

// DeliveryPricer computes the delivery fee for an order from the restaurant
// location to the customer's destination.
//
// The fee is the base fee for any distance up to FreeDistanceKm, plus
// FeePerExtraKm for every started kilometer beyond that:
//
//	fee = BaseDeliveryFee                                      if d <= 2 km
//	fee = BaseDeliveryFee + ceil(d - 2) * FeePerExtraKm        otherwise
//
// Distance is the great-circle distance between the two points. The pricer is
// pure and deterministic; pickup orders bypass it entirely (their fee is 0).
//
// Example:
//
//	pricer := services.NewDeliveryPricer()
//	fee, err := pricer.Fee(store.Location, destination)
//	// d = 2.5 km -> 600, d = 4.1 km -> 800
type DeliveryPricer struct{}

// NewDeliveryPricer creates a new DeliveryPricer instance.
func NewDeliveryPricer() DeliveryPricer {
	return DeliveryPricer{}
}

// Fee returns the delivery fee in currency units for bringing an order from
// origin to destination. Both points must be properly constructed GeoPoints;
// coordinate range validation happens at construction time.
func (p DeliveryPricer) Fee(origin kernel.GeoPoint, destination kernel.GeoPoint) (int64, error) {
	km, err := origin.DistanceKm(destination)
	if err != nil {
		return 0, err
	}

	if km <= FreeDistanceKm {
		return BaseDeliveryFee, nil
	}

	extraKm := int64(math.Ceil(km - FreeDistanceKm))
	return BaseDeliveryFee + extraKm*FeePerExtraKm, nil
}
