// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status, customer, and pickup code.
//
// Enumerations are stored as their string names so rows stay readable and
// adding a new enum value never renumbers existing data. The version column
// carries the optimistic concurrency token.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryType  string     `gorm:"type:varchar(16)"`
	PaymentMethod string     `gorm:"type:varchar(16)"`
	PaymentStatus string     `gorm:"type:varchar(16)"`
	Status        string     `gorm:"type:varchar(16);index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	GuestName     string
	Phone         string
	Address       string
	DestLatitude  *float64
	DestLongitude *float64
	DeliveryFee   int64
	TotalAmount   int64
	PickupCode    string `gorm:"type:varchar(6);index"`
	ScheduledFor  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line in the child table.
// Lines are frozen at order creation, so they are written once with the
// order and never updated afterwards.
type OrderItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	UnitPrice  int64
	Quantity   int
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional customer reference,
// destination coordinates, and line items.
func fromDomain(aggregate *order.Order) OrderDTO {
	contact := aggregate.Contact()

	var customerID *uuid.UUID
	if id := contact.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	var destLatitude, destLongitude *float64
	if destination := aggregate.Destination(); destination != nil {
		lat, lng := destination.Latitude(), destination.Longitude()
		destLatitude, destLongitude = &lat, &lng
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice(),
			Quantity:   item.Quantity(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		DeliveryType:  aggregate.DeliveryType().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Status:        aggregate.Status().String(),
		CustomerID:    customerID,
		GuestName:     contact.Name(),
		Phone:         contact.Phone(),
		Address:       contact.Address(),
		DestLatitude:  destLatitude,
		DestLongitude: destLongitude,
		DeliveryFee:   aggregate.DeliveryFee(),
		TotalAmount:   aggregate.TotalAmount(),
		PickupCode:    aggregate.PickupCode(),
		ScheduledFor:  aggregate.ScheduledFor(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Version:       aggregate.Version(),
		Items:         itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including contact, destination,
// and line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	contact, err := contactFromDTO(dto)
	if err != nil {
		return nil, err
	}

	var destination *kernel.GeoPoint
	if dto.DestLatitude != nil && dto.DestLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.DestLatitude, *dto.DestLongitude)
		if pointErr != nil {
			return nil, pointErr
		}
		destination = &point
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(menuItemID, itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		deliveryType,
		paymentMethod,
		contact,
		destination,
		items,
		dto.DeliveryFee,
		dto.TotalAmount,
		dto.PickupCode,
		status,
		paymentStatus,
		dto.ScheduledFor,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

func contactFromDTO(dto OrderDTO) (order.Contact, error) {
	if dto.CustomerID != nil {
		customerID, err := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if err != nil {
			return order.Contact{}, err
		}
		return order.NewCustomerContact(customerID, dto.Phone, dto.Address)
	}

	return order.NewGuestContact(dto.GuestName, dto.Phone, dto.Address)
}
