// Package queries contains read-side operations in the CQRS architecture.
// Query handlers go straight to the database with raw SQL and return flat
// view structs; they never mutate state and never load full aggregates.
package queries

import (
	"context"
	"database/sql"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderView is the read model for a single order as shown on dashboards
// and order detail screens.
type OrderView struct {
	ID            kernel.UUID
	DeliveryType  order.DeliveryType
	Status        order.Status
	PaymentMethod order.PaymentMethod
	PaymentStatus order.PaymentStatus
	CustomerID    *kernel.UUID
	GuestName     string
	Phone         string
	Address       string
	Destination   *kernel.GeoPoint
	DeliveryFee   int64
	TotalAmount   int64
	PickupCode    string
	ScheduledFor  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItemView
}

// OrderItemView is one order line in the read model.
type OrderItemView struct {
	MenuItemID kernel.UUID
	Name       string
	UnitPrice  int64
	Quantity   int
}

// orderViewColumns is the column list every order view query selects,
// in the position scanOrderView expects.
const orderViewColumns = `
	id,
	delivery_type,
	payment_method,
	payment_status,
	status,
	customer_id,
	guest_name,
	phone,
	address,
	dest_latitude,
	dest_longitude,
	delivery_fee,
	total_amount,
	pickup_code,
	scheduled_for,
	created_at,
	updated_at
`

// scanOrderView scans one orders row into an OrderView, without items.
func scanOrderView(rows *sql.Rows) (OrderView, error) {
	var (
		view          OrderView
		id            uuid.UUID
		deliveryType  string
		paymentMethod string
		paymentStatus string
		status        string
		customerID    uuid.NullUUID
		destLatitude  sql.NullFloat64
		destLongitude sql.NullFloat64
		scheduledFor  sql.NullTime
	)

	err := rows.Scan(
		&id,
		&deliveryType,
		&paymentMethod,
		&paymentStatus,
		&status,
		&customerID,
		&view.GuestName,
		&view.Phone,
		&view.Address,
		&destLatitude,
		&destLongitude,
		&view.DeliveryFee,
		&view.TotalAmount,
		&view.PickupCode,
		&scheduledFor,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.DeliveryType, err = order.DeliveryTypeFromString(deliveryType); err != nil {
		return OrderView{}, err
	}
	if view.PaymentMethod, err = order.PaymentMethodFromString(paymentMethod); err != nil {
		return OrderView{}, err
	}
	if view.PaymentStatus, err = order.PaymentStatusFromString(paymentStatus); err != nil {
		return OrderView{}, err
	}
	if view.Status, err = order.StatusFromString(status); err != nil {
		return OrderView{}, err
	}

	if customerID.Valid {
		cID, idErr := kernel.UUIDFromBytes(customerID.UUID[:])
		if idErr != nil {
			return OrderView{}, idErr
		}
		view.CustomerID = &cID
	}

	if destLatitude.Valid && destLongitude.Valid {
		point, pointErr := kernel.NewGeoPoint(destLatitude.Float64, destLongitude.Float64)
		if pointErr != nil {
			return OrderView{}, pointErr
		}
		view.Destination = &point
	}

	if scheduledFor.Valid {
		t := scheduledFor.Time
		view.ScheduledFor = &t
	}

	return view, nil
}

// queryOrderViews runs an order view query and returns the fully assembled
// views, items attached and pickup codes backfilled.
func queryOrderViews(
	ctx context.Context,
	db *gorm.DB,
	querySQL string,
	args ...any,
) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(querySQL, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachItems(ctx, db, views); err != nil {
		return nil, err
	}
	if err = backfillPickupCodes(views); err != nil {
		return nil, err
	}

	return views, nil
}

// attachItems loads the order lines for all views in one batched query.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	indexByID := make(map[kernel.UUID]int, len(views))
	ids := make([]string, 0, len(views))
	for i, view := range views {
		indexByID[view.ID] = i
		ids = append(ids, view.ID.String())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id = ANY(?::uuid[])
		ORDER BY order_id, name
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID    uuid.UUID
			menuItemID uuid.UUID
			item       OrderItemView
		)
		if err = rows.Scan(&orderID, &menuItemID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return err
		}

		oID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return idErr
		}
		if item.MenuItemID, idErr = kernel.UUIDFromBytes(menuItemID[:]); idErr != nil {
			return idErr
		}

		if i, ok := indexByID[oID]; ok {
			views[i].Items = append(views[i].Items, item)
		}
	}

	return rows.Err()
}

// backfillPickupCodes recomputes missing pickup codes at read time.
// The derivation is deterministic over the order id, so a row written before
// codes were stored still displays the same code the engine would have issued.
func backfillPickupCodes(views []OrderView) error {
	codes := services.NewPickupCodeGenerator()
	for i := range views {
		if views[i].PickupCode != "" {
			continue
		}

		code, err := codes.Generate(views[i].ID)
		if err != nil {
			return err
		}
		views[i].PickupCode = code
	}

	return nil
}
