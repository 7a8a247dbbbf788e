// Package order provides domain entities and business logic for order management
// in the restaurant ordering system. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, derived fields, and lifecycle
//   - LineItem: An order line with a menu item reference and a price snapshot
//   - Contact: Who placed the order (registered customer or guest snapshot)
//   - Status: A state machine that enforces valid fulfillment transitions
//   - PaymentStatus, PaymentMethod, DeliveryType: supporting value objects
//
// Key business rules:
//   - Orders must have a valid identifier, at least one line item, and a contact
//   - Fulfillment follows Pending -> Confirmed -> Preparing -> Ready, then forks on
//     delivery type; Delivered and Cancelled are terminal
//   - Every transition is authorized against the acting staff role
//   - The payment axis is independent of the fulfillment axis
//   - TotalAmount, the delivery fee, and the pickup code are fixed at creation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
