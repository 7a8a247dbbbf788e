package queries_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(id))

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetOrderQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetBoardOrdersQuery(t *testing.T) {
	for _, role := range []staff.Role{
		staff.Cook, staff.Courier, staff.GeneralEmployee, staff.Owner, staff.Admin,
	} {
		query, err := queries.NewGetBoardOrdersQuery(role)
		require.NoError(t, err, role.String())
		assert.Equal(t, role, query.Role())
	}

	_, err := queries.NewGetBoardOrdersQuery(staff.Client)
	require.Error(t, err, "clients have no dashboard")

	_, err = queries.NewGetBoardOrdersQuery(staff.UnknownRole)
	require.Error(t, err)

	var zero queries.GetBoardOrdersQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetBoardOrdersQueryIsNotConstructed)
}

func TestNewGetCustomerOrdersQuery(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetCustomerOrdersQuery(id)
	require.NoError(t, err)
	assert.True(t, query.CustomerID().IsEqual(id))

	_, err = queries.NewGetCustomerOrdersQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetCustomerOrdersQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetCustomerOrdersQueryIsNotConstructed)
}
