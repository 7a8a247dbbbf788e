package queries

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetBoardOrdersQueryIsNotConstructed = errors.New(
	"GetBoardOrdersQuery must be created via NewGetBoardOrdersQuery constructor",
)

// GetBoardOrdersQuery retrieves the active orders for a staff dashboard,
// scoped by the viewer's role:
//
//	Cook                            kitchen board: Pending through Ready
//	Courier                         delivery board: delivery orders in Ready or Delivering
//	GeneralEmployee, Owner, Admin   every active order
//
// Clients have no board; they track individual orders instead.
type GetBoardOrdersQuery struct {
	role staff.Role

	guard guard.ConstructorGuard
}

// NewGetBoardOrdersQuery creates a board query for the given staff role.
// Fails for Client and for invalid roles.
func NewGetBoardOrdersQuery(role staff.Role) (GetBoardOrdersQuery, error) {
	if err := role.Validate(); err != nil {
		return GetBoardOrdersQuery{}, err
	}
	if !role.IsStaff() {
		return GetBoardOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%s has no dashboard", role),
		)
	}

	return GetBoardOrdersQuery{
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBoardOrdersQueryIsNotConstructed if validation fails.
func (q GetBoardOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardOrdersQueryIsNotConstructed)
}

// Role returns the staff role the board is scoped to.
func (q GetBoardOrdersQuery) Role() staff.Role {
	return q.role
}
