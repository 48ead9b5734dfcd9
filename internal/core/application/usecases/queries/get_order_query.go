// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its lines.
// The requester's identity travels with the query so the handler can enforce
// that buyers only see their own orders while administrators see any.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID, requesterID, false)
//	handler := NewGetOrderQueryHandler(db)
//
//	order, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrNotAuthorized) {
//	    // requester is not the owner and not an admin
//	}
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	isAdmin     bool

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order.
// Validates that both identifiers are valid.
func NewGetOrderQuery(orderID, requesterID kernel.UUID, isAdmin bool) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), requesterID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:     orderID,
		requesterID: requesterID,
		isAdmin:     isAdmin,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequesterID returns the identity asking for the order.
func (q GetOrderQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// IsAdmin reports whether the requester holds the administrator role.
func (q GetOrderQuery) IsAdmin() bool {
	return q.isAdmin
}

// OrderLineResponse represents one order line in the read model.
type OrderLineResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	LineType  string
	Quantity  int
	UnitPrice decimal.Decimal
	Title     string
}

// OrderResponse represents a full order in the read model: the header amounts,
// payment fields, timestamps, and every line.
type OrderResponse struct {
	ID            kernel.UUID
	BuyerID       kernel.UUID
	ContactEmail  string
	Status        string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentRef    *string
	PaymentMethod *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
	Lines         []OrderLineResponse
}
