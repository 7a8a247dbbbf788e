package order

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// minScheduleLead is the minimum advance notice for a scheduled order.
const minScheduleLead = time.Hour

// pickupCodeLength is the fixed width of the pickup code.
const pickupCodeLength = 6

// Order represents a customer purchase in the system. It is the aggregate root that
// manages the order lifecycle from placement through preparation to handover.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, delivery type, payment method, and contact
//   - Must have at least one line item; items and prices are frozen at creation
//   - TotalAmount always equals the sum of line item subtotals plus the delivery fee
//   - DeliveryFee is always 0 for pickup orders
//   - PickupCode is assigned once at creation and never changes
//   - Status only moves along the transition graph defined by Status; Delivered and
//     Cancelled are terminal
//   - PaymentStatus is an axis independent of Status
//   - Can only be created through NewOrder or rebuilt through RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. The version field carries the
// optimistic concurrency token: repositories compare it on write, so two
// actors racing to mutate the same order cannot silently clobber each other.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// deliveryType classifies the order as delivery or pickup (immutable)
	deliveryType DeliveryType

	// paymentMethod records how the customer chose to pay (immutable)
	paymentMethod PaymentMethod

	// contact is who placed the order and how to reach them (immutable)
	contact Contact

	// destination is the delivery coordinates (nil for pickup orders)
	destination *kernel.GeoPoint

	// items are the ordered menu items with price snapshots (frozen at creation)
	items []LineItem

	// deliveryFee is the distance-based surcharge (0 for pickup)
	deliveryFee int64

	// totalAmount is the sum of item subtotals plus the delivery fee
	totalAmount int64

	// pickupCode is the 6-digit collection code, assigned once
	pickupCode string

	// status is the current fulfillment state
	status Status

	// paymentStatus tracks money collection, independent of status
	paymentStatus PaymentStatus

	// scheduledFor is the optional requested fulfillment time (advisory)
	scheduledFor *time.Time

	// createdAt is set at creation and never changes
	createdAt time.Time

	// updatedAt is bumped on every mutation
	updatedAt time.Time

	// version is the optimistic concurrency token as loaded from storage
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// a fresh order; use RestoreOrder when rebuilding from persistence.
//
// The derived fields follow the creation contract: status starts Pending,
// payment status starts Pending, and totalAmount is computed from the item
// subtotals plus the delivery fee and fixed from then on.
//
// Validation rules:
//   - id, deliveryType, paymentMethod, and contact must be valid
//   - items must be non-empty and individually valid
//   - delivery orders require a destination and a contact address; pickup
//     orders must carry a zero delivery fee
//   - pickupCode must be exactly 6 digits
//   - scheduledFor, when present, must be at least one hour in the future
func NewOrder(
	id kernel.UUID,
	deliveryType DeliveryType,
	paymentMethod PaymentMethod,
	contact Contact,
	destination *kernel.GeoPoint,
	items []LineItem,
	deliveryFee int64,
	pickupCode string,
	scheduledFor *time.Time,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryType(deliveryType),
		o.setPaymentMethod(paymentMethod),
		o.setContact(contact),
		o.setItems(items),
		o.setPickupCode(pickupCode),
		o.setScheduledFor(scheduledFor, now),
	); err != nil {
		return nil, err
	}

	// Destination and fee rules depend on the delivery type, so they are
	// validated after the simple field setters.
	if err := errors.Join(
		o.setDestination(destination),
		o.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	o.totalAmount = o.itemsSubtotal() + o.deliveryFee
	return o, nil
}

// RestoreOrder rebuilds an Order aggregate from persisted state.
// Unlike NewOrder it does not re-derive anything: the stored status, totals,
// and timestamps are taken as-is, after validating that the enumerations and
// identifier are well-formed. Repositories are the only intended caller.
func RestoreOrder(
	id kernel.UUID,
	deliveryType DeliveryType,
	paymentMethod PaymentMethod,
	contact Contact,
	destination *kernel.GeoPoint,
	items []LineItem,
	deliveryFee int64,
	totalAmount int64,
	pickupCode string,
	status Status,
	paymentStatus PaymentStatus,
	scheduledFor *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	version int64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryType.Validate(),
		paymentMethod.Validate(),
		contact.Validate(),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a positive version", version))
	}

	return &Order{
		id:            id,
		deliveryType:  deliveryType,
		paymentMethod: paymentMethod,
		contact:       contact,
		destination:   destination,
		items:         items,
		deliveryFee:   deliveryFee,
		totalAmount:   totalAmount,
		pickupCode:    pickupCode,
		status:        status,
		paymentStatus: paymentStatus,
		scheduledFor:  scheduledFor,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DeliveryType returns the order's delivery classification.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// PaymentMethod returns how the customer chose to pay.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Contact returns who placed the order and how to reach them.
func (o *Order) Contact() Contact {
	return o.contact
}

// Destination returns the delivery coordinates.
// Returns nil for pickup orders.
func (o *Order) Destination() *kernel.GeoPoint {
	return o.destination
}

// Items returns a copy of the order's line items.
// The copy keeps the aggregate's internal slice immutable from the outside.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveryFee returns the distance-based surcharge. Always 0 for pickup orders.
func (o *Order) DeliveryFee() int64 {
	return o.deliveryFee
}

// TotalAmount returns the sum of line item subtotals plus the delivery fee,
// fixed at creation.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// PickupCode returns the 6-digit collection code assigned at creation.
func (o *Order) PickupCode() string {
	return o.pickupCode
}

// Status returns the current fulfillment state of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current money-collection state of the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ScheduledFor returns the optional requested fulfillment time.
// Scheduling is advisory: the engine never gates transitions on it.
func (o *Order) ScheduledFor() *time.Time {
	return o.scheduledFor
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency token as loaded from storage.
// Repositories compare it on write and reject stale aggregates with
// errs.ConcurrentModificationError.
func (o *Order) Version() int64 {
	return o.version
}

// TransitionTo moves the order to the target fulfillment status on behalf of actor.
//
// The transition is rejected with an InvalidTransitionError if the target is not
// reachable from the current status for this order's delivery type, or if the
// acting role is not authorized for that edge:
//
//	Pending    -> Confirmed   kitchen staff
//	Confirmed  -> Preparing   kitchen staff
//	Preparing  -> Ready       kitchen staff
//	Ready      -> Delivering  courier or general employee (delivery orders only)
//	Ready      -> Delivered   general employee (pickup orders only)
//	Delivering -> Delivered   courier
//	Pending, Confirmed, Preparing -> Cancelled   staff with cancel rights
//
// Owner and Admin act as kitchen staff and may also take orders out.
// On success the status is applied and updatedAt is bumped; persisting the
// change (including the optimistic concurrency check) is the caller's concern.
func (o *Order) TransitionTo(target Status, actor staff.Role) error {
	if err := target.Validate(); err != nil {
		return NewInvalidTransitionErrorWithCause(o.status, target, actor, err)
	}
	if err := actor.Validate(); err != nil {
		return NewInvalidTransitionErrorWithCause(o.status, target, actor, err)
	}

	if !o.status.CanTransitionTo(target, o.deliveryType) {
		return NewInvalidTransitionError(o.status, target, actor)
	}

	if !o.roleMayTransition(target, actor) {
		return NewInvalidTransitionError(o.status, target, actor)
	}

	o.status = target
	o.touch()
	return nil
}

// SetPaymentStatus records a payment-state change reported by the payment
// collaborator (or by staff, for cash orders). The payment axis carries no
// ordering constraint against fulfillment status: a Preparing order may stay
// payment-pending indefinitely for cash flows.
func (o *Order) SetPaymentStatus(newStatus PaymentStatus) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	o.paymentStatus = newStatus
	o.touch()
	return nil
}

// roleMayTransition implements the role column of the transition table.
// Reachability has already been checked, so only authorization is decided here.
func (o *Order) roleMayTransition(target Status, actor staff.Role) bool {
	switch target {
	case Confirmed, Preparing, Ready:
		return actor.IsKitchenStaff()
	case Delivering:
		return actor == staff.Courier || actor == staff.GeneralEmployee ||
			actor == staff.Owner || actor == staff.Admin
	case Delivered:
		if o.status == Delivering {
			return actor == staff.Courier
		}
		// Pickup handover at the counter.
		return actor == staff.GeneralEmployee || actor == staff.Owner || actor == staff.Admin
	case Cancelled:
		return actor.CanCancel()
	case UnknownStatus, Pending:
		return false
	default:
		return false
	}
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) itemsSubtotal() int64 {
	var sum int64
	for _, item := range o.items {
		sum += item.Subtotal()
	}
	return sum
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setContact(contact Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

// setDestination enforces the delivery-type rules: delivery orders need both
// coordinates and an address, pickup orders need neither.
func (o *Order) setDestination(destination *kernel.GeoPoint) error {
	if o.deliveryType == Delivery {
		if destination == nil {
			return errs.NewValueIsRequiredError("delivery destination")
		}
		if err := destination.Validate(); err != nil {
			return err
		}
		if o.contact.Address() == "" {
			return errs.NewValueIsRequiredError("delivery address")
		}
	}

	o.destination = destination
	return nil
}

func (o *Order) setDeliveryFee(deliveryFee int64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee is invalid",
			fmt.Errorf("%d is negative", deliveryFee))
	}
	if o.deliveryType == Pickup && deliveryFee != 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee is invalid",
			fmt.Errorf("pickup orders carry no delivery fee, got %d", deliveryFee))
	}

	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setPickupCode(pickupCode string) error {
	if len(pickupCode) != pickupCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("pickup code is invalid",
			fmt.Errorf("%q is not %d digits", pickupCode, pickupCodeLength))
	}
	for _, r := range pickupCode {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pickup code is invalid",
				fmt.Errorf("%q contains a non-digit character", pickupCode))
		}
	}

	o.pickupCode = pickupCode
	return nil
}

func (o *Order) setScheduledFor(scheduledFor *time.Time, now time.Time) error {
	if scheduledFor == nil {
		return nil
	}

	if scheduledFor.Before(now.Add(minScheduleLead)) {
		return errs.NewValueIsInvalidErrorWithCause("scheduled time is invalid",
			fmt.Errorf("%s is less than %s in the future", scheduledFor.Format(time.RFC3339), minScheduleLead))
	}

	t := scheduledFor.UTC()
	o.scheduledFor = &t
	return nil
}
