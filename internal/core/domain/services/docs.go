// Package services provides domain services for order creation in the restaurant
// ordering system. It implements pure calculations that don't naturally belong
// to a single aggregate root.
//
// The package includes:
//   - DeliveryPricer: distance-based delivery fee calculation
//   - PickupCodeGenerator: deterministic pickup code derivation from an order id
//   - StoreLocator: selection of the restaurant location closest to a destination
//
// All services in this package are stateless and deterministic.
package services
