// Package http exposes the delivery brokerage over a REST API built on echo.
// Handlers translate requests into commands and queries, and domain errors
// into HTTP status codes.
package http

import (
	"net/http"

	"nlivrilik/internal/core/application/usecases/commands"
	"nlivrilik/internal/core/application/usecases/queries"
	"nlivrilik/internal/core/domain/model/kernel"
	"nlivrilik/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server implements the REST handlers. It coordinates between HTTP requests
// and application use cases.
type Server struct {
	jwtSecret string

	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	takeOrderHandler         commands.TakeOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	completeDeliveryHandler  commands.CompleteDeliveryCommandHandler
	submitRatingHandler      commands.SubmitRatingCommandHandler
	createUserHandler        commands.CreateUserCommandHandler
	setAvailabilityHandler   commands.SetCourierAvailabilityCommandHandler

	// Query handlers
	getOrderByIDHandler         queries.GetOrderByIDQueryHandler
	getOrdersByStatusHandler    queries.GetOrdersByStatusQueryHandler
	getActiveDeliveriesHandler  queries.GetActiveDeliveriesQueryHandler
	getAvailableCouriersHandler queries.GetAvailableCouriersQueryHandler
	getRatingSummaryHandler     queries.GetCourierRatingSummaryQueryHandler
	getOrderRatingHandler       queries.GetOrderRatingQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	jwtSecret string,
	createOrderHandler commands.CreateOrderCommandHandler,
	takeOrderHandler commands.TakeOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	submitRatingHandler commands.SubmitRatingCommandHandler,
	createUserHandler commands.CreateUserCommandHandler,
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	getAvailableCouriersHandler queries.GetAvailableCouriersQueryHandler,
	getRatingSummaryHandler queries.GetCourierRatingSummaryQueryHandler,
	getOrderRatingHandler queries.GetOrderRatingQueryHandler,
) *Server {
	return &Server{
		jwtSecret:                   jwtSecret,
		createOrderHandler:          createOrderHandler,
		takeOrderHandler:            takeOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		completeDeliveryHandler:     completeDeliveryHandler,
		submitRatingHandler:         submitRatingHandler,
		createUserHandler:           createUserHandler,
		setAvailabilityHandler:      setAvailabilityHandler,
		getOrderByIDHandler:         getOrderByIDHandler,
		getOrdersByStatusHandler:    getOrdersByStatusHandler,
		getActiveDeliveriesHandler:  getActiveDeliveriesHandler,
		getAvailableCouriersHandler: getAvailableCouriersHandler,
		getRatingSummaryHandler:     getRatingSummaryHandler,
		getOrderRatingHandler:       getOrderRatingHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder, optionalAuth(s.jwtSecret))
	orders.GET("", s.GetOrdersByStatus, requireAuth(s.jwtSecret))
	orders.GET("/:id", s.GetOrder)
	orders.POST("/:id/take", s.TakeOrder, requireAuth(s.jwtSecret))
	orders.PATCH("/:id/status", s.UpdateOrderStatus, requireAuth(s.jwtSecret))
	orders.POST("/:id/complete", s.CompleteDelivery, requireAuth(s.jwtSecret))
	orders.POST("/:id/rating", s.SubmitRating, optionalAuth(s.jwtSecret))
	orders.GET("/:id/rating", s.GetOrderRating)

	couriers := api.Group("/couriers")
	couriers.GET("/available", s.GetAvailableCouriers, requireAuth(s.jwtSecret))
	couriers.GET("/:id/deliveries", s.GetActiveDeliveries, requireAuth(s.jwtSecret))
	couriers.GET("/:id/rating-summary", s.GetCourierRatingSummary)
	couriers.PATCH("/:id/availability", s.SetCourierAvailability, requireAuth(s.jwtSecret))

	api.POST("/users", s.CreateUser)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders. Open to guests; authenticated
// customers get the order attached to their account.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if ok, err := bindAndValidate(ctx, &request); !ok {
		return err
	}

	contact, err := order.NewContactInfo(request.CustomerName, request.CustomerEmail, request.CustomerPhone)
	if err != nil {
		return domainError(ctx, err)
	}

	point, err := kernel.NewGeoPoint(request.Longitude, request.Latitude)
	if err != nil {
		return domainError(ctx, err)
	}
	address, err := order.NewDeliveryAddress(request.Address, point, request.AdditionalInfo)
	if err != nil {
		return domainError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerIDFrom(ctx), contact, address, request.Content)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	response, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// GetOrdersByStatus handles GET /api/v1/orders?status=X. Restricted to
// administrators.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	if actor.Role != kernel.RoleAdmin {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "only administrators can list orders"))
	}

	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return domainError(ctx, err)
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return domainError(ctx, err)
	}

	orders, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]orderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderSummaryResponse(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// TakeOrder handles POST /api/v1/orders/:id/take. The authenticated courier
// claims the order for delivery.
func (s *Server) TakeOrder(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	if actor.Role != kernel.RoleCourier {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "only couriers can take orders"))
	}

	orderID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	cmd, err := commands.NewTakeOrderCommand(orderID, actor.ID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.takeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status. Role gating is
// enforced by the order aggregate based on the authenticated actor.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)

	orderID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	var request updateOrderStatusRequest
	if ok, bindErr := bindAndValidate(ctx, &request); !ok {
		return bindErr
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, actor, request.Note)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:id/complete. The courier
// reports the delivery together with the financial reconciliation.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	if actor.Role != kernel.RoleCourier {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "only couriers can complete deliveries"))
	}

	orderID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	var request completeDeliveryRequest
	if ok, bindErr := bindAndValidate(ctx, &request); !ok {
		return bindErr
	}

	var total *order.Cents
	if request.Total != nil {
		cents := order.Cents(*request.Total)
		total = &cents
	}

	cmd, err := commands.NewCompleteDeliveryCommand(
		orderID, actor.ID,
		order.Cents(request.Subtotal), order.Cents(request.DeliveryFee), total,
		request.PaymentMethod, request.IsPaid, request.Notes,
	)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitRating handles POST /api/v1/orders/:id/rating. Open to guests for
// guest orders; orders placed by an account require that customer's token.
func (s *Server) SubmitRating(ctx echo.Context) error {
	orderID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	var request submitRatingRequest
	if ok, bindErr := bindAndValidate(ctx, &request); !ok {
		return bindErr
	}

	ratingID := kernel.NewUUID()
	cmd, err := commands.NewSubmitRatingCommand(
		ratingID, orderID, customerIDFrom(ctx), request.Rating, request.Comment)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.submitRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: ratingID.String()})
}

// GetOrderRating handles GET /api/v1/orders/:id/rating.
func (s *Server) GetOrderRating(ctx echo.Context) error {
	orderID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	query, err := queries.NewGetOrderRatingQuery(orderID)
	if err != nil {
		return domainError(ctx, err)
	}

	response, err := s.getOrderRatingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ratingResponse{
		ID:        response.ID.String(),
		OrderID:   response.OrderID.String(),
		CourierID: response.CourierID.String(),
		Rating:    response.Rating,
		Comment:   response.Comment,
		CreatedAt: response.CreatedAt,
	})
}

// GetAvailableCouriers handles GET /api/v1/couriers/available. Restricted to
// administrators.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	actor, _ := actorFrom(ctx)
	if actor.Role != kernel.RoleAdmin {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "only administrators can list couriers"))
	}

	couriers, err := s.getAvailableCouriersHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableCouriersQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]courierResponse, 0, len(couriers))
	for _, courier := range couriers {
		response = append(response, courierResponse{
			ID:                  courier.ID.String(),
			Name:                courier.Name,
			Email:               courier.Email,
			CompletedDeliveries: courier.CompletedDeliveries,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDeliveries handles GET /api/v1/couriers/:id/deliveries. Couriers
// see their own list; administrators anyone's.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	courierID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	actor, _ := actorFrom(ctx)
	if actor.Role != kernel.RoleAdmin && !(actor.Role == kernel.RoleCourier && actor.ID.IsEqual(courierID)) {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "couriers can only view their own deliveries"))
	}

	query, err := queries.NewGetActiveDeliveriesQuery(courierID)
	if err != nil {
		return domainError(ctx, err)
	}

	deliveries, err := s.getActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]activeDeliveryResponse, 0, len(deliveries))
	for _, delivery := range deliveries {
		response = append(response, toActiveDeliveryResponse(delivery))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierRatingSummary handles GET /api/v1/couriers/:id/rating-summary.
func (s *Server) GetCourierRatingSummary(ctx echo.Context) error {
	courierID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	query, err := queries.NewGetCourierRatingSummaryQuery(courierID)
	if err != nil {
		return domainError(ctx, err)
	}

	summary, err := s.getRatingSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ratingSummaryResponse{
		CourierID: summary.CourierID.String(),
		Average:   summary.Average,
		Count:     summary.Count,
		Histogram: summary.Histogram,
	})
}

// SetCourierAvailability handles PATCH /api/v1/couriers/:id/availability.
// Couriers toggle their own flag; administrators anyone's.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, ok, parseErr := pathUUID(ctx, "id")
	if !ok {
		return parseErr
	}

	actor, _ := actorFrom(ctx)
	if actor.Role != kernel.RoleAdmin && !(actor.Role == kernel.RoleCourier && actor.ID.IsEqual(courierID)) {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "couriers can only change their own availability"))
	}

	var request setAvailabilityRequest
	if ok, bindErr := bindAndValidate(ctx, &request); !ok {
		return bindErr
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, request.Available)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateUser handles POST /api/v1/users. Registration is open; administrators
// are created out of band.
func (s *Server) CreateUser(ctx echo.Context) error {
	var request createUserRequest
	if ok, err := bindAndValidate(ctx, &request); !ok {
		return err
	}

	role, err := kernel.RoleFromString(request.Role)
	if err != nil {
		return domainError(ctx, err)
	}
	if role == kernel.RoleAdmin {
		return ctx.JSON(http.StatusForbidden,
			newErrorResponse(http.StatusForbidden, "administrator accounts cannot be self-registered"))
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateUserCommand(userID, request.Name, request.Email, role)
	if err != nil {
		return domainError(ctx, err)
	}

	if err := s.createUserHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: userID.String()})
}
