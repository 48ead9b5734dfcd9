package queries

import (
	"context"
	"database/sql"
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order retrieval.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve one order with its lines.
// Returns an ObjectNotFoundError when the order does not exist and an
// AuthorizationError when the requester is neither the owner nor an admin.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	header, err := h.fetchHeader(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	if !query.IsAdmin() && !header.BuyerID.IsEqual(query.RequesterID()) {
		return OrderResponse{}, errs.NewAuthorizationError("order")
	}

	lines, err := fetchLines(ctx, h.db, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	header.Lines = lines

	return header, nil
}

func (h GetOrderQueryHandler) fetchHeader(ctx context.Context, orderID kernel.UUID) (OrderResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			buyer_id,
			contact_email,
			status,
			subtotal,
			tax,
			total,
			payment_ref,
			payment_method,
			created_at,
			updated_at,
			completed_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		response    OrderResponse
		id, buyerID uuid.UUID
		status      int
		completedAt sql.NullTime
	)

	err := row.Scan(
		&id,
		&buyerID,
		&response.ContactEmail,
		&status,
		&response.Subtotal,
		&response.Tax,
		&response.Total,
		&response.PaymentRef,
		&response.PaymentMethod,
		&response.CreatedAt,
		&response.UpdatedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if response.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderResponse{}, err
	}
	response.Status = order.Status(status).String()
	if completedAt.Valid {
		completed := completedAt.Time
		response.CompletedAt = &completed
	}

	return response, nil
}

// fetchLines loads the lines of one order in insertion order. Shared with the
// search handler.
func fetchLines(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			line_type,
			quantity,
			unit_price,
			title
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			line          OrderLineResponse
			id, productID uuid.UUID
			lineType      int
			unitPrice     decimal.Decimal
		)

		if err = rows.Scan(&id, &productID, &lineType, &line.Quantity, &unitPrice, &line.Title); err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		line.LineType = order.LineType(lineType).String()
		line.UnitPrice = unitPrice
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
