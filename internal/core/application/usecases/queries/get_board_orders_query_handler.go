package queries

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"

	"gorm.io/gorm"
)

// GetBoardOrdersQueryHandler retrieves role-scoped dashboards from the database.
// Boards show only live work: terminal orders never appear.
//
// Example:
//
//	handler := NewGetBoardOrdersQueryHandler(db)
//	query, _ := NewGetBoardOrdersQuery(staff.Cook)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders on the kitchen board\n", len(board))
type GetBoardOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBoardOrdersQueryHandler creates a handler for dashboard queries.
// Requires a GORM database connection for query execution.
func NewGetBoardOrdersQueryHandler(db *gorm.DB) GetBoardOrdersQueryHandler {
	return GetBoardOrdersQueryHandler{db: db}
}

// Handle executes the board query for the role in the query.
// Results are sorted oldest first so the longest-waiting order tops the board.
func (h GetBoardOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBoardOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	switch query.Role() {
	case staff.Cook:
		return queryOrderViews(ctx, h.db, `
			SELECT `+orderViewColumns+`
			FROM orders
			WHERE status IN (?, ?, ?, ?)
			ORDER BY created_at
		`,
			order.Pending.String(), order.Confirmed.String(),
			order.Preparing.String(), order.Ready.String(),
		)

	case staff.Courier:
		return queryOrderViews(ctx, h.db, `
			SELECT `+orderViewColumns+`
			FROM orders
			WHERE delivery_type = ? AND status IN (?, ?)
			ORDER BY created_at
		`,
			order.Delivery.String(),
			order.Ready.String(), order.Delivering.String(),
		)

	default:
		// GeneralEmployee, Owner, Admin oversee everything still in play.
		return queryOrderViews(ctx, h.db, `
			SELECT `+orderViewColumns+`
			FROM orders
			WHERE status NOT IN (?, ?)
			ORDER BY created_at
		`,
			order.Delivered.String(), order.Cancelled.String(),
		)
	}
}
