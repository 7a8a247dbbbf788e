package orderrepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// activeStatuses are the fulfillment states still in play.
// Delivered and Cancelled rows never appear on any board.
func activeStatuses() []string {
	return []string{
		order.Pending.String(),
		order.Confirmed.String(),
		order.Preparing.String(),
		order.Ready.String(),
		order.Delivering.String(),
	}
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items to the database.
// The association write makes the order row and its item rows a single
// GORM create, so a half-written order can never become visible.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable state of an existing order to the database.
//
// The write is guarded by a compare-and-swap on the version column: it only
// lands if the row still carries the version this aggregate was loaded with,
// and it bumps the version in the same statement. A zero-row result means
// another writer got there first and the caller's state is stale; the caller
// gets errs.ErrConcurrentModification and must reload before retrying.
//
// Line items are frozen at creation and deliberately not part of the update.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":         dto.Status,
			"payment_status": dto.PaymentStatus,
			"updated_at":     dto.UpdatedAt,
			"version":        dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its line items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveForKitchen retrieves orders the kitchen is responsible for:
// everything from Pending up to and including Ready, oldest first.
func (r *GormOrderRepository) GetActiveForKitchen(ctx context.Context) ([]*order.Order, error) {
	kitchenStatuses := []string{
		order.Pending.String(),
		order.Confirmed.String(),
		order.Preparing.String(),
		order.Ready.String(),
	}

	return r.findOrdered(ctx, "status IN ?", kitchenStatuses)
}

// GetActiveForDelivery retrieves delivery orders awaiting or under courier
// transport: Ready and Delivering, oldest first.
func (r *GormOrderRepository) GetActiveForDelivery(ctx context.Context) ([]*order.Order, error) {
	courierStatuses := []string{
		order.Ready.String(),
		order.Delivering.String(),
	}

	return r.findOrdered(ctx,
		"delivery_type = ? AND status IN ?", order.Delivery.String(), courierStatuses)
}

// GetByCustomer retrieves all orders placed by a registered customer,
// newest first, terminal ones included.
func (r *GormOrderRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("customer_id = ?", customerID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllActive retrieves every order that has not reached a terminal status,
// oldest first.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	return r.findOrdered(ctx, "status IN ?", activeStatuses())
}

func (r *GormOrderRepository) findOrdered(
	ctx context.Context,
	condition string,
	args ...any,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where(condition, args...).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
