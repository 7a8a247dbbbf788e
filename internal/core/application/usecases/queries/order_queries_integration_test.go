package queries_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderQueriesIntegrationTestSuite exercises the read-side handlers against
// a real PostgreSQL schema seeded through the write-side repository.
type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	orderRepo   *orderrepo.GormOrderRepository
	getOrder    queries.GetOrderQueryHandler
	getBoard    queries.GetBoardOrdersQueryHandler
	getCustomer queries.GetCustomerOrdersQueryHandler
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.getOrder = queries.NewGetOrderQueryHandler(db)
	suite.getBoard = queries.NewGetBoardOrdersQueryHandler(db)
	suite.getCustomer = queries.NewGetCustomerOrdersQueryHandler(db)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_ReturnsFullView() {
	ctx := context.Background()

	seeded := suite.seedOrder(ctx, order.Delivery, order.Pending, nil)

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	view, err := suite.getOrder.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(seeded.ID(), view.ID)
	suite.Equal(order.Delivery, view.DeliveryType)
	suite.Equal(order.Pending, view.Status)
	suite.Equal(order.PaymentPending, view.PaymentStatus)
	suite.Equal(seeded.TotalAmount(), view.TotalAmount)
	suite.Equal(seeded.DeliveryFee(), view.DeliveryFee)
	suite.Equal(seeded.PickupCode(), view.PickupCode)
	suite.Require().NotNil(view.Destination)
	suite.Len(view.Items, 2)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_MissingStoredCode_RecomputesIt() {
	ctx := context.Background()

	seeded := suite.seedOrder(ctx, order.Pickup, order.Pending, nil)
	suite.Require().NoError(
		suite.db.Exec("UPDATE orders SET pickup_code = '' WHERE id = ?", seeded.ID().Bytes()).Error)

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	view, err := suite.getOrder.Handle(ctx, query)
	suite.Require().NoError(err)

	expected, err := services.NewPickupCodeGenerator().Generate(seeded.ID())
	suite.Require().NoError(err)
	suite.Equal(expected, view.PickupCode)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_Unknown_ReturnsNotFound() {
	ctx := context.Background()

	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getOrder.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBoard_RoleScoping() {
	ctx := context.Background()

	pending := suite.seedOrder(ctx, order.Pickup, order.Pending, nil)
	preparing := suite.seedOrder(ctx, order.Delivery, order.Preparing, nil)
	readyDelivery := suite.seedOrder(ctx, order.Delivery, order.Ready, nil)
	readyPickup := suite.seedOrder(ctx, order.Pickup, order.Ready, nil)
	delivering := suite.seedOrder(ctx, order.Delivery, order.Delivering, nil)
	suite.seedOrder(ctx, order.Pickup, order.Delivered, nil)
	suite.seedOrder(ctx, order.Pickup, order.Cancelled, nil)

	kitchenQuery, err := queries.NewGetBoardOrdersQuery(staff.Cook)
	suite.Require().NoError(err)
	kitchen, err := suite.getBoard.Handle(ctx, kitchenQuery)
	suite.Require().NoError(err)
	suite.assertViewIDs(kitchen, pending, preparing, readyDelivery, readyPickup)

	courierQuery, err := queries.NewGetBoardOrdersQuery(staff.Courier)
	suite.Require().NoError(err)
	courierBoard, err := suite.getBoard.Handle(ctx, courierQuery)
	suite.Require().NoError(err)
	suite.assertViewIDs(courierBoard, readyDelivery, delivering)

	ownerQuery, err := queries.NewGetBoardOrdersQuery(staff.Owner)
	suite.Require().NoError(err)
	everything, err := suite.getBoard.Handle(ctx, ownerQuery)
	suite.Require().NoError(err)
	suite.assertViewIDs(everything, pending, preparing, readyDelivery, readyPickup, delivering)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBoard_OldestFirst() {
	ctx := context.Background()

	older := suite.seedOrderCreatedAt(ctx, time.Now().UTC().Add(-2*time.Hour))
	newer := suite.seedOrderCreatedAt(ctx, time.Now().UTC().Add(-time.Minute))

	query, err := queries.NewGetBoardOrdersQuery(staff.Cook)
	suite.Require().NoError(err)

	board, err := suite.getBoard.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(board, 2)
	suite.Equal(older.ID(), board[0].ID, "longest-waiting order tops the board")
	suite.Equal(newer.ID(), board[1].ID)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetCustomerOrders_NewestFirstAndScoped() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	older := suite.seedCustomerOrder(ctx, customerID, time.Now().UTC().Add(-time.Hour))
	newer := suite.seedCustomerOrder(ctx, customerID, time.Now().UTC().Add(-time.Minute))
	suite.seedOrder(ctx, order.Pickup, order.Pending, nil) // someone else's guest order

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	suite.Require().NoError(err)

	history, err := suite.getCustomer.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(newer.ID(), history[0].ID)
	suite.Equal(older.ID(), history[1].ID)
	suite.Require().NotNil(history[0].CustomerID)
	suite.Equal(customerID, *history[0].CustomerID)
}

func (suite *OrderQueriesIntegrationTestSuite) TestHandle_InvalidQueries_ReturnError() {
	ctx := context.Background()

	_, err := suite.getOrder.Handle(ctx, queries.GetOrderQuery{})
	suite.Require().Error(err)

	_, err = suite.getBoard.Handle(ctx, queries.GetBoardOrdersQuery{})
	suite.Require().Error(err)

	_, err = suite.getCustomer.Handle(ctx, queries.GetCustomerOrdersQuery{})
	suite.Require().Error(err)
}

func (suite *OrderQueriesIntegrationTestSuite) seedItems() []order.LineItem {
	item1, err := order.NewLineItem(kernel.NewUUID(), "Thieboudienne", 3000, 1)
	suite.Require().NoError(err)
	item2, err := order.NewLineItem(kernel.NewUUID(), "Jus de bouye", 700, 2)
	suite.Require().NoError(err)
	return []order.LineItem{item1, item2}
}

// seedOrder persists an order already in the given status via RestoreOrder.
func (suite *OrderQueriesIntegrationTestSuite) seedOrder(
	ctx context.Context,
	deliveryType order.DeliveryType,
	status order.Status,
	customerID *kernel.UUID,
) *order.Order {
	var contact order.Contact
	var err error
	if customerID != nil {
		contact, err = order.NewCustomerContact(*customerID, "+221781234567", "Rue 5, Mouit")
	} else {
		contact, err = order.NewGuestContact("Ibrahima Ba", "+221781234567", "Rue 5, Mouit")
	}
	suite.Require().NoError(err)

	var destination *kernel.GeoPoint
	var fee int64
	if deliveryType == order.Delivery {
		point, pointErr := kernel.NewGeoPoint(14.7210, -17.4655)
		suite.Require().NoError(pointErr)
		destination = &point
		fee = 500
	}

	items := suite.seedItems()
	total := items[0].Subtotal() + items[1].Subtotal() + fee
	now := time.Now().UTC()

	seeded, err := order.RestoreOrder(
		kernel.NewUUID(), deliveryType, order.Cash, contact, destination, items,
		fee, total, "123456", status, order.PaymentPending, nil, now, now, 1,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	return seeded
}

func (suite *OrderQueriesIntegrationTestSuite) seedOrderCreatedAt(
	ctx context.Context, createdAt time.Time,
) *order.Order {
	contact, err := order.NewGuestContact("Ibrahima Ba", "+221781234567", "")
	suite.Require().NoError(err)

	items := suite.seedItems()
	total := items[0].Subtotal() + items[1].Subtotal()

	seeded, err := order.RestoreOrder(
		kernel.NewUUID(), order.Pickup, order.Cash, contact, nil, items,
		0, total, "123456", order.Pending, order.PaymentPending, nil, createdAt, createdAt, 1,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	return seeded
}

func (suite *OrderQueriesIntegrationTestSuite) seedCustomerOrder(
	ctx context.Context, customerID kernel.UUID, createdAt time.Time,
) *order.Order {
	contact, err := order.NewCustomerContact(customerID, "+221781234567", "")
	suite.Require().NoError(err)

	items := suite.seedItems()
	total := items[0].Subtotal() + items[1].Subtotal()

	seeded, err := order.RestoreOrder(
		kernel.NewUUID(), order.Pickup, order.Card, contact, nil, items,
		0, total, "123456", order.Pending, order.PaymentPending, nil, createdAt, createdAt, 1,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	return seeded
}

func (suite *OrderQueriesIntegrationTestSuite) assertViewIDs(got []queries.OrderView, want ...*order.Order) {
	suite.Require().Len(got, len(want))

	gotIDs := make(map[kernel.UUID]bool, len(got))
	for _, view := range got {
		gotIDs[view.ID] = true
	}
	for _, o := range want {
		suite.True(gotIDs[o.ID()], "order %s missing from board", o.ID())
	}
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
