package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointDTO is a latitude/longitude pair in decimal degrees.
type GeoPointDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewOrderItem is one menu line in a checkout request.
type NewOrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

// NewOrder is the checkout request body. CustomerID identifies a signed-in
// customer; a guest order leaves it empty and supplies GuestName instead.
type NewOrder struct {
	DeliveryType  string         `json:"delivery_type"`
	PaymentMethod string         `json:"payment_method"`
	CustomerID    string         `json:"customer_id,omitempty"`
	GuestName     string         `json:"guest_name,omitempty"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	Destination   *GeoPointDTO   `json:"destination,omitempty"`
	Items         []NewOrderItem `json:"items"`
	ScheduledFor  *time.Time     `json:"scheduled_for,omitempty"`
}

// OrderCreated is the checkout response body.
type OrderCreated struct {
	ID string `json:"id"`
}

// ChangeStatus is the body of a fulfillment transition request.
type ChangeStatus struct {
	Status string `json:"status"`
}

// ChangePayment is the body of a payment status update request.
type ChangePayment struct {
	PaymentStatus string `json:"payment_status"`
}

// OrderItem is one order line in a response.
type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

// Order is the full order representation returned by reads and streamed
// by the live event feed.
type Order struct {
	ID            string       `json:"id"`
	DeliveryType  string       `json:"delivery_type"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	PaymentStatus string       `json:"payment_status"`
	CustomerID    string       `json:"customer_id,omitempty"`
	GuestName     string       `json:"guest_name,omitempty"`
	Phone         string       `json:"phone"`
	Address       string       `json:"address"`
	Destination   *GeoPointDTO `json:"destination,omitempty"`
	DeliveryFee   int64        `json:"delivery_fee"`
	TotalAmount   int64        `json:"total_amount"`
	PickupCode    string       `json:"pickup_code,omitempty"`
	ScheduledFor  *time.Time   `json:"scheduled_for,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Items         []OrderItem  `json:"items"`
}

// OrderEvent is one message on the live order stream.
type OrderEvent struct {
	Kind       string    `json:"kind"`
	Order      Order     `json:"order"`
	OccurredAt time.Time `json:"occurred_at"`
}

func orderFromView(view queries.OrderView) Order {
	items := make([]OrderItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = OrderItem{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		}
	}

	result := Order{
		ID:            view.ID.String(),
		DeliveryType:  view.DeliveryType.String(),
		Status:        view.Status.String(),
		PaymentMethod: view.PaymentMethod.String(),
		PaymentStatus: view.PaymentStatus.String(),
		GuestName:     view.GuestName,
		Phone:         view.Phone,
		Address:       view.Address,
		DeliveryFee:   view.DeliveryFee,
		TotalAmount:   view.TotalAmount,
		PickupCode:    view.PickupCode,
		ScheduledFor:  view.ScheduledFor,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
		Items:         items,
	}

	if view.CustomerID != nil {
		result.CustomerID = view.CustomerID.String()
	}
	if view.Destination != nil {
		result.Destination = &GeoPointDTO{
			Latitude:  view.Destination.Latitude(),
			Longitude: view.Destination.Longitude(),
		}
	}

	return result
}

func orderFromEvent(event ports.OrderEvent) OrderEvent {
	aggregate := event.Order

	items := make([]OrderItem, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items[i] = OrderItem{
			MenuItemID: item.MenuItemID().String(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice(),
			Quantity:   item.Quantity(),
		}
	}

	result := Order{
		ID:            aggregate.ID().String(),
		DeliveryType:  aggregate.DeliveryType().String(),
		Status:        aggregate.Status().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		GuestName:     aggregate.Contact().Name(),
		Phone:         aggregate.Contact().Phone(),
		Address:       aggregate.Contact().Address(),
		DeliveryFee:   aggregate.DeliveryFee(),
		TotalAmount:   aggregate.TotalAmount(),
		PickupCode:    aggregate.PickupCode(),
		ScheduledFor:  aggregate.ScheduledFor(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Items:         items,
	}

	if customerID := aggregate.Contact().CustomerID(); customerID != nil {
		result.CustomerID = customerID.String()
	}
	if destination := aggregate.Destination(); destination != nil {
		result.Destination = &GeoPointDTO{
			Latitude:  destination.Latitude(),
			Longitude: destination.Longitude(),
		}
	}

	return OrderEvent{
		Kind:       event.Kind.String(),
		Order:      result,
		OccurredAt: event.OccurredAt,
	}
}
