package services

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Store is a physical restaurant location orders are fulfilled from.
type Store struct {
	Name     string
	Location kernel.GeoPoint
}

// StoreLocator selects the restaurant location closest to a delivery
// destination, so the delivery fee is priced from the store that will
// actually fulfill the order.
type StoreLocator struct {
	stores []Store
}

// NewStoreLocator creates a locator over the restaurant's locations.
// Requires at least one store.
func NewStoreLocator(stores []Store) (StoreLocator, error) {
	if len(stores) == 0 {
		return StoreLocator{}, errs.NewValueIsRequiredError("stores")
	}

	for _, store := range stores {
		if err := store.Location.Validate(); err != nil {
			return StoreLocator{}, err
		}
	}

	owned := make([]Store, len(stores))
	copy(owned, stores)
	return StoreLocator{stores: owned}, nil
}

// DefaultStores returns the restaurant's fixed locations.
func DefaultStores() []Store {
	centre, _ := kernel.NewGeoPoint(14.7167, -17.4677)
	nord, _ := kernel.NewGeoPoint(14.7200, -17.4650)
	sud, _ := kernel.NewGeoPoint(14.7100, -17.4700)

	return []Store{
		{Name: "Mouit Centre", Location: centre},
		{Name: "Mouit Nord", Location: nord},
		{Name: "Mouit Sud", Location: sud},
	}
}

// Closest returns the store nearest to the destination by great-circle distance.
func (l StoreLocator) Closest(destination kernel.GeoPoint) (Store, error) {
	if err := destination.Validate(); err != nil {
		return Store{}, err
	}

	closest := l.stores[0]
	minKm, err := closest.Location.DistanceKm(destination)
	if err != nil {
		return Store{}, err
	}

	for _, store := range l.stores[1:] {
		km, distErr := store.Location.DistanceKm(destination)
		if distErr != nil {
			return Store{}, distErr
		}
		if km < minKm {
			minKm = km
			closest = store
		}
	}

	return closest, nil
}
