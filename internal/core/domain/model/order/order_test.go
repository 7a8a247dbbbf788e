package order_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Poulet Yassa", 1500, 2)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func guestContact(t *testing.T, address string) order.Contact {
	t.Helper()
	contact, err := order.NewGuestContact("Awa Ndiaye", "+221771234567", address)
	require.NoError(t, err)
	return contact
}

func destination(t *testing.T) *kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(14.7200, -17.4650)
	require.NoError(t, err)
	return &point
}

func newPickupOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.Pickup, order.Cash,
		guestContact(t, ""), nil, validItems(t), 0, "123456", nil,
	)
	require.NoError(t, err)
	return o
}

func newDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), order.Delivery, order.Wave,
		guestContact(t, "Quartier Nord, Avenue de la Paix"), destination(t),
		validItems(t), 600, "654321", nil,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("pickup order totals items with zero fee", func(t *testing.T) {
		o := newPickupOrder(t)

		assert.Equal(t, int64(3000), o.TotalAmount(), "1500 x 2")
		assert.Equal(t, int64(0), o.DeliveryFee())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "123456", o.PickupCode())
		assert.Equal(t, int64(1), o.Version())
		require.NoError(t, o.Validate())
	})

	t.Run("delivery order totals items plus fee", func(t *testing.T) {
		o := newDeliveryOrder(t)

		assert.Equal(t, int64(3600), o.TotalAmount(), "1500 x 2 + 600")
		assert.Equal(t, int64(600), o.DeliveryFee())
		require.NotNil(t, o.Destination())
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), order.Pickup, order.Cash,
			guestContact(t, ""), nil, nil, 0, "123456", nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects delivery order without destination", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), order.Delivery, order.Cash,
			guestContact(t, "Rue Principale"), nil, validItems(t), 500, "123456", nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects delivery order without address", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), order.Delivery, order.Cash,
			guestContact(t, ""), destination(t), validItems(t), 500, "123456", nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects pickup order with a delivery fee", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), order.Pickup, order.Cash,
			guestContact(t, ""), nil, validItems(t), 500, "123456", nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects malformed pickup codes", func(t *testing.T) {
		for _, code := range []string{"", "12345", "1234567", "12a456"} {
			_, err := order.NewOrder(
				kernel.NewUUID(), order.Pickup, order.Cash,
				guestContact(t, ""), nil, validItems(t), 0, code, nil,
			)
			require.Error(t, err, "code %q should be rejected", code)
		}
	})

	t.Run("rejects unconstructed order id", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{}, order.Pickup, order.Cash,
			guestContact(t, ""), nil, validItems(t), 0, "123456", nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("accepts schedule at least one hour ahead", func(t *testing.T) {
		at := time.Now().Add(2 * time.Hour)

		o, err := order.NewOrder(
			kernel.NewUUID(), order.Pickup, order.Cash,
			guestContact(t, ""), nil, validItems(t), 0, "123456", &at,
		)

		require.NoError(t, err)
		require.NotNil(t, o.ScheduledFor())
	})

	t.Run("rejects schedule under one hour ahead", func(t *testing.T) {
		at := time.Now().Add(30 * time.Minute)

		_, err := order.NewOrder(
			kernel.NewUUID(), order.Pickup, order.Cash,
			guestContact(t, ""), nil, validItems(t), 0, "123456", &at,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("unconstructed order fails validation", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("pickup order walks the full pickup path", func(t *testing.T) {
		o := newPickupOrder(t)

		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Ready, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Delivered, staff.GeneralEmployee))

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("delivery order walks the full delivery path", func(t *testing.T) {
		o := newDeliveryOrder(t)

		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.GeneralEmployee))
		require.NoError(t, o.TransitionTo(order.Ready, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Delivering, staff.Courier))
		require.NoError(t, o.TransitionTo(order.Delivered, staff.Courier))

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("rejects out-of-order jump", func(t *testing.T) {
		o := newPickupOrder(t)

		err := o.TransitionTo(order.Preparing, staff.Cook)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status(), "status must not change on rejection")
	})

	t.Run("rejects delivering for pickup orders regardless of status", func(t *testing.T) {
		o := newPickupOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Ready, staff.Cook))

		err := o.TransitionTo(order.Delivering, staff.Courier)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("rejects unauthorized roles", func(t *testing.T) {
		o := newPickupOrder(t)

		err := o.TransitionTo(order.Confirmed, staff.Client)
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)

		err = o.TransitionTo(order.Confirmed, staff.Courier)
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("only courier completes a delivery in flight", func(t *testing.T) {
		o := newDeliveryOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Ready, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Delivering, staff.Courier))

		err := o.TransitionTo(order.Delivered, staff.GeneralEmployee)
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)

		require.NoError(t, o.TransitionTo(order.Delivered, staff.Courier))
	})

	t.Run("cook cannot hand over a pickup order", func(t *testing.T) {
		o := newPickupOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Ready, staff.Cook))

		err := o.TransitionTo(order.Delivered, staff.Cook)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("staff can cancel before ready", func(t *testing.T) {
		for _, setup := range []func(o *order.Order){
			func(_ *order.Order) {},
			func(o *order.Order) { require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook)) },
			func(o *order.Order) {
				require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
				require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))
			},
		} {
			o := newPickupOrder(t)
			setup(o)

			require.NoError(t, o.TransitionTo(order.Cancelled, staff.Admin))
			assert.Equal(t, order.Cancelled, o.Status())
		}
	})

	t.Run("client cannot cancel", func(t *testing.T) {
		o := newPickupOrder(t)

		err := o.TransitionTo(order.Cancelled, staff.Client)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("no transition leaves a terminal state", func(t *testing.T) {
		cancelled := newPickupOrder(t)
		require.NoError(t, cancelled.TransitionTo(order.Cancelled, staff.Admin))

		for _, target := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready,
			order.Delivering, order.Delivered,
		} {
			err := cancelled.TransitionTo(target, staff.Admin)
			require.Error(t, err, "Cancelled -> %s should be rejected", target)
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("bumps updatedAt on success", func(t *testing.T) {
		o := newPickupOrder(t)
		before := o.UpdatedAt()

		time.Sleep(time.Millisecond)
		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))

		assert.True(t, o.UpdatedAt().After(before))
	})
}

func TestOrder_SetPaymentStatus(t *testing.T) {
	t.Run("payment axis moves independently of fulfillment", func(t *testing.T) {
		o := newPickupOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))

		require.NoError(t, o.SetPaymentStatus(order.PaymentConfirmed))

		assert.Equal(t, order.Preparing, o.Status())
		assert.Equal(t, order.PaymentConfirmed, o.PaymentStatus())
	})

	t.Run("cash order may stay pending while preparing", func(t *testing.T) {
		o := newPickupOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed, staff.Cook))
		require.NoError(t, o.TransitionTo(order.Preparing, staff.Cook))

		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("rejects invalid payment status", func(t *testing.T) {
		o := newPickupOrder(t)

		err := o.SetPaymentStatus(order.UnknownPaymentStatus)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	now := time.Now().UTC()

	t.Run("rebuilds a persisted order as-is", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.RestoreOrder(
			id, order.Delivery, order.Card,
			guestContact(t, "Rue Principale"), destination(t), validItems(t),
			600, 3600, "654321",
			order.Preparing, order.PaymentConfirmed,
			nil, now.Add(-time.Hour), now, 4,
		)

		require.NoError(t, err)
		assert.Equal(t, id, o.ID())
		assert.Equal(t, order.Preparing, o.Status())
		assert.Equal(t, order.PaymentConfirmed, o.PaymentStatus())
		assert.Equal(t, int64(3600), o.TotalAmount())
		assert.Equal(t, int64(4), o.Version())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), order.Pickup, order.Cash,
			guestContact(t, ""), nil, validItems(t),
			0, 3000, "123456",
			order.UnknownStatus, order.PaymentPending,
			nil, now, now, 1,
		)

		require.Error(t, err)
	})

	t.Run("rejects non-positive version", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), order.Pickup, order.Cash,
			guestContact(t, ""), nil, validItems(t),
			0, 3000, "123456",
			order.Pending, order.PaymentPending,
			nil, now, now, 0,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestOrder_Items(t *testing.T) {
	t.Run("returns a defensive copy", func(t *testing.T) {
		o := newPickupOrder(t)

		items := o.Items()
		require.Len(t, items, 1)
		items[0] = order.LineItem{}

		assert.NoError(t, o.Items()[0].Validate())
	})
}

func TestContact(t *testing.T) {
	t.Run("guest contact requires name and phone", func(t *testing.T) {
		_, err := order.NewGuestContact("", "+221771234567", "")
		require.Error(t, err)

		_, err = order.NewGuestContact("Awa", "", "")
		require.Error(t, err)
	})

	t.Run("customer contact requires phone even with a profile", func(t *testing.T) {
		_, err := order.NewCustomerContact(kernel.NewUUID(), "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("guest orders carry no customer reference", func(t *testing.T) {
		contact, err := order.NewGuestContact("Awa", "+221771234567", "")
		require.NoError(t, err)

		assert.True(t, contact.IsGuest())
		assert.Nil(t, contact.CustomerID())
	})

	t.Run("customer orders carry the reference", func(t *testing.T) {
		customerID := kernel.NewUUID()
		contact, err := order.NewCustomerContact(customerID, "+221771234567", "")
		require.NoError(t, err)

		assert.False(t, contact.IsGuest())
		require.NotNil(t, contact.CustomerID())
		assert.True(t, customerID.IsEqual(*contact.CustomerID()))
	})
}

func TestLineItem(t *testing.T) {
	t.Run("subtotal multiplies price by quantity", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), "Thieboudienne", 2500, 3)
		require.NoError(t, err)

		assert.Equal(t, int64(7500), item.Subtotal())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), "Thieboudienne", -1, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), "Thieboudienne", 2500, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), "", 2500, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
