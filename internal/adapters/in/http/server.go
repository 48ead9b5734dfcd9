// Package http exposes the order lifecycle operations over a REST API.
// It coordinates between HTTP handlers and application use cases, translating
// the application error taxonomy into HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server implements the HTTP transport for the order service.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	attachPaymentHandler   commands.AttachPaymentCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	fulfillOrderHandler    commands.FulfillOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	refundOrderHandler     commands.RefundOrderCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
	orderStatsHandler   queries.OrderStatsQueryHandler
	searchOrdersHandler queries.SearchOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	attachPaymentHandler commands.AttachPaymentCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	fulfillOrderHandler commands.FulfillOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	refundOrderHandler commands.RefundOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	orderStatsHandler queries.OrderStatsQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		attachPaymentHandler:   attachPaymentHandler,
		transitionOrderHandler: transitionOrderHandler,
		fulfillOrderHandler:    fulfillOrderHandler,
		cancelOrderHandler:     cancelOrderHandler,
		refundOrderHandler:     refundOrderHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		orderStatsHandler:      orderStatsHandler,
		searchOrdersHandler:    searchOrdersHandler,
	}
}

// RegisterRoutes wires all API routes onto the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/stats", s.GetOrderStats)
	api.GET("/orders/search", s.SearchOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/payment", s.AttachPayment)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/fulfill", s.FulfillOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/refund", s.RefundOrder)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one cart line of an order creation request.
type NewOrderItem struct {
	ProductID   string `json:"product_id"`
	ProductType string `json:"product_type"`
	Quantity    int    `json:"quantity"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	BuyerID      string         `json:"buyer_id"`
	ContactEmail string         `json:"contact_email"`
	Items        []NewOrderItem `json:"items"`
}

// OrderCreated is the order creation response body.
type OrderCreated struct {
	ID string `json:"id"`
}

// AttachPaymentRequest is the payment attachment request body.
type AttachPaymentRequest struct {
	PaymentRef    string `json:"payment_ref"`
	PaymentMethod string `json:"payment_method"`
}

// TransitionRequest is the status transition request body.
type TransitionRequest struct {
	Target string `json:"target"`
}

// ReasonRequest carries the optional reason for cancellations and refunds.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// OrderLine is one line of an order response.
type OrderLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	LineType  string          `json:"line_type"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Title     string          `json:"title"`
}

// Order is the order representation returned by read endpoints.
type Order struct {
	ID            string          `json:"id"`
	BuyerID       string          `json:"buyer_id"`
	ContactEmail  string          `json:"contact_email"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentRef    *string         `json:"payment_ref,omitempty"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Lines         []OrderLine     `json:"lines,omitempty"`
}

// OrdersPage is the paginated listing response body.
type OrdersPage struct {
	Items    []Order `json:"items"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int64   `json:"total"`
}

// TopProduct is one entry of the stats top-seller ranking.
type TopProduct struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int64  `json:"quantity"`
}

// OrderStats is the stats response body.
type OrderStats struct {
	Revenue           decimal.Decimal  `json:"revenue"`
	CompletedOrders   int64            `json:"completed_orders"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	CountsByStatus    map[string]int64 `json:"counts_by_status"`
	TopProducts       []TopProduct     `json:"top_products"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromString(body.BuyerID)
	if err != nil {
		return badRequest(ctx, "Invalid buyer ID: "+err.Error())
	}

	items := make([]commands.CreateOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "Invalid product ID: "+itemErr.Error())
		}

		productType, itemErr := order.LineTypeFromString(item.ProductType)
		if itemErr != nil {
			return badRequest(ctx, "Invalid product type: "+itemErr.Error())
		}

		orderItem, itemErr := commands.NewCreateOrderItem(productID, productType, item.Quantity)
		if itemErr != nil {
			return badRequest(ctx, "Invalid order item: "+itemErr.Error())
		}
		items = append(items, orderItem)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, buyerID, body.ContactEmail, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id. The requester is identified by the
// X-Requester-Id header; X-Requester-Role: admin lifts the ownership check.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	requesterID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Requester-Id"))
	if err != nil {
		return badRequest(ctx, "Invalid requester ID: "+err.Error())
	}
	isAdmin := ctx.Request().Header.Get("X-Requester-Role") == "admin"

	query, err := queries.NewGetOrderQuery(orderID, requesterID, isAdmin)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(response))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	buyerID, err := kernel.UUIDFromString(ctx.QueryParam("buyer_id"))
	if err != nil {
		return badRequest(ctx, "Invalid buyer ID: "+err.Error())
	}

	status, err := statusFilter(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	page := intParam(ctx.QueryParam("page"), 1)
	pageSize := intParam(ctx.QueryParam("page_size"), 0)

	query, err := queries.NewListOrdersQuery(buyerID, status, page, pageSize)
	if err != nil {
		return mapError(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	items := make([]Order, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toOrder(item))
	}

	return ctx.JSON(http.StatusOK, OrdersPage{
		Items:    items,
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	})
}

// AttachPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) AttachPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body AttachPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAttachPaymentCommand(orderID, body.PaymentRef, body.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if err := s.attachPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(body.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FulfillOrder handles POST /api/v1/orders/:id/fulfill.
func (s *Server) FulfillOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewFulfillOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.fulfillOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body ReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefundOrder handles POST /api/v1/orders/:id/refund.
func (s *Server) RefundOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body ReasonRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRefundOrderCommand(orderID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.refundOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderStats handles GET /api/v1/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	from, err := timeFilter(ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "Invalid from date: "+err.Error())
	}
	to, err := timeFilter(ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "Invalid to date: "+err.Error())
	}

	query, err := queries.NewOrderStatsQuery(from, to)
	if err != nil {
		return mapError(ctx, err)
	}

	stats, err := s.orderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	top := make([]TopProduct, 0, len(stats.TopProducts))
	for _, product := range stats.TopProducts {
		top = append(top, TopProduct(product))
	}

	return ctx.JSON(http.StatusOK, OrderStats{
		Revenue:           stats.Revenue,
		CompletedOrders:   stats.CompletedOrders,
		AverageOrderValue: stats.AverageOrderValue,
		CountsByStatus:    stats.CountsByStatus,
		TopProducts:       top,
	})
}

// SearchOrders handles GET /api/v1/orders/search.
func (s *Server) SearchOrders(ctx echo.Context) error {
	status, err := statusFilter(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var lineType *order.LineType
	if raw := ctx.QueryParam("line_type"); raw != "" {
		parsed, typeErr := order.LineTypeFromString(raw)
		if typeErr != nil {
			return badRequest(ctx, "Invalid line type: "+typeErr.Error())
		}
		lineType = &parsed
	}

	from, err := timeFilter(ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "Invalid from date: "+err.Error())
	}
	to, err := timeFilter(ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "Invalid to date: "+err.Error())
	}

	query, err := queries.NewSearchOrdersQuery(
		ctx.QueryParam("q"),
		status,
		lineType,
		from,
		to,
		intParam(ctx.QueryParam("limit"), 0),
	)
	if err != nil {
		return mapError(ctx, err)
	}

	results, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]Order, 0, len(results))
	for _, result := range results {
		response = append(response, toOrder(result))
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrder(response queries.OrderResponse) Order {
	lines := make([]OrderLine, 0, len(response.Lines))
	for _, line := range response.Lines {
		lines = append(lines, OrderLine{
			ID:        line.ID.String(),
			ProductID: line.ProductID.String(),
			LineType:  line.LineType,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Title:     line.Title,
		})
	}

	return Order{
		ID:            response.ID.String(),
		BuyerID:       response.BuyerID.String(),
		ContactEmail:  response.ContactEmail,
		Status:        response.Status,
		Subtotal:      response.Subtotal,
		Tax:           response.Tax,
		Total:         response.Total,
		PaymentRef:    response.PaymentRef,
		PaymentMethod: response.PaymentMethod,
		CreatedAt:     response.CreatedAt,
		UpdatedAt:     response.UpdatedAt,
		CompletedAt:   response.CompletedAt,
		Lines:         lines,
	}
}

func statusFilter(raw string) (*order.Status, error) {
	if raw == "" {
		return nil, nil
	}
	status, err := order.StatusFromString(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func timeFilter(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// mapError translates the application error taxonomy into HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}
