package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActingRoleHeader carries the caller's role on mutating requests.
// Absent means the caller is a client.
const ActingRoleHeader = "X-Acting-Role"

// Server handles HTTP requests for the ordering API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler      commands.PlaceOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	updatePaymentHandler   commands.UpdatePaymentCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getBoardOrdersHandler    queries.GetBoardOrdersQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler

	// Live order event feed
	broker ports.OrderEventBroker
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	updatePaymentHandler commands.UpdatePaymentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getBoardOrdersHandler queries.GetBoardOrdersQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	broker ports.OrderEventBroker,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		updatePaymentHandler:     updatePaymentHandler,
		getOrderHandler:          getOrderHandler,
		getBoardOrdersHandler:    getBoardOrdersHandler,
		getCustomerOrdersHandler: getCustomerOrdersHandler,
		broker:                   broker,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/payment", s.ChangeOrderPayment)
	api.GET("/orders/stream", s.StreamOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/boards/:role", s.GetBoard)
	api.GET("/customers/:id/orders", s.GetCustomerOrders)
}

// PlaceOrder handles POST /api/v1/orders - checkout for guests and customers.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := placeOrderCommandFromRequest(body)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: cmd.OrderID().String()})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - fulfillment transitions.
// The acting role comes from the X-Acting-Role header; it defaults to client.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body ChangeStatus
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	actor, err := actingRole(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderPayment handles POST /api/v1/orders/:id/payment - payment status updates.
func (s *Server) ChangeOrderPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var body ChangePayment
	if bindErr := ctx.Bind(&body); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	paymentStatus, err := order.PaymentStatusFromString(body.PaymentStatus)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentCommand(orderID, paymentStatus)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if handleErr := s.updatePaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// GetBoard handles GET /api/v1/boards/:role - the role-scoped staff dashboard.
func (s *Server) GetBoard(ctx echo.Context) error {
	role, err := staff.RoleFromString(ctx.Param("role"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetBoardOrdersQuery(role)
	if err != nil {
		return errorResponse(ctx, err)
	}

	views, err := s.getBoardOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders - order history.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	views, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// StreamOrders handles GET /api/v1/orders/stream - a server-sent event feed
// of order changes. The optional "role" query parameter scopes the feed to
// the same orders the matching board shows; the optional "customer_id"
// parameter scopes it to one customer's own orders instead.
//
// The stream is best-effort: a slow consumer loses events, and the refresh
// cycle re-sends current state, so consumers apply every message as an
// idempotent upsert keyed by order id.
func (s *Server) StreamOrders(ctx echo.Context) error {
	filter, err := streamFilter(ctx.QueryParam("role"), ctx.QueryParam("customer_id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	subscription := s.broker.Subscribe(filter)
	defer subscription.Cancel()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case event, open := <-subscription.Events():
			if !open {
				return nil
			}

			payload, marshalErr := json.Marshal(orderFromEvent(event))
			if marshalErr != nil {
				continue
			}

			if _, writeErr := fmt.Fprintf(response, "data: %s\n\n", payload); writeErr != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func placeOrderCommandFromRequest(body NewOrder) (commands.PlaceOrderCommand, error) {
	deliveryType, err := order.DeliveryTypeFromString(body.DeliveryType)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	paymentMethod, err := order.PaymentMethodFromString(body.PaymentMethod)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	contact, err := contactFromRequest(body)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	items := make([]order.LineItem, 0, len(body.Items))
	for _, line := range body.Items {
		menuItemID, idErr := kernel.UUIDFromString(line.MenuItemID)
		if idErr != nil {
			return commands.PlaceOrderCommand{}, idErr
		}

		item, itemErr := order.NewLineItem(menuItemID, line.Name, line.UnitPrice, line.Quantity)
		if itemErr != nil {
			return commands.PlaceOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	var destination *kernel.GeoPoint
	if body.Destination != nil {
		point, pointErr := kernel.NewGeoPoint(body.Destination.Latitude, body.Destination.Longitude)
		if pointErr != nil {
			return commands.PlaceOrderCommand{}, pointErr
		}
		destination = &point
	}

	return commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		deliveryType,
		paymentMethod,
		contact,
		destination,
		items,
		body.ScheduledFor,
	)
}

func contactFromRequest(body NewOrder) (order.Contact, error) {
	if body.CustomerID == "" {
		return order.NewGuestContact(body.GuestName, body.Phone, body.Address)
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return order.Contact{}, err
	}
	return order.NewCustomerContact(customerID, body.Phone, body.Address)
}

func actingRole(ctx echo.Context) (staff.Role, error) {
	header := ctx.Request().Header.Get(ActingRoleHeader)
	if header == "" {
		return staff.Client, nil
	}
	return staff.RoleFromString(header)
}

// streamFilter builds the event predicate for a stream subscription.
// A customer id scopes the feed to that customer's own orders; a role
// mirrors the scope of the matching board. With neither, the feed carries
// every order change.
func streamFilter(roleParam string, customerParam string) (ports.OrderEventFilter, error) {
	if customerParam != "" {
		customerID, err := kernel.UUIDFromString(customerParam)
		if err != nil {
			return nil, err
		}
		return func(o *order.Order) bool {
			id := o.Contact().CustomerID()
			return id != nil && id.IsEqual(customerID)
		}, nil
	}

	if roleParam == "" {
		return nil, nil
	}

	role, err := staff.RoleFromString(roleParam)
	if err != nil {
		return nil, err
	}

	switch {
	case role == staff.Cook:
		return func(o *order.Order) bool {
			return !o.Status().IsTerminal() && o.Status() != order.Delivering
		}, nil
	case role == staff.Courier:
		return func(o *order.Order) bool {
			return o.DeliveryType() == order.Delivery &&
				(o.Status() == order.Ready || o.Status() == order.Delivering)
		}, nil
	case role.IsStaff():
		// GeneralEmployee, Owner, Admin see everything still in play.
		return func(o *order.Order) bool {
			return !o.Status().IsTerminal()
		}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"role", errors.New("clients subscribe with a customer id, not a role"),
		)
	}
}

// errorResponse maps domain and application errors onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrentModification):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
