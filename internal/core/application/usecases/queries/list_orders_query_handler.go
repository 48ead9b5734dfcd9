package queries

import (
	"context"
	"database/sql"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves a page of a buyer's order headers.
// Lines are not loaded here; callers drill into a single order with GetOrder.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
// Returns the requested page sorted by creation time, newest first, together
// with the total count for the same filter.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrdersPage, error) {
	if err := query.Validate(); err != nil {
		return OrdersPage{}, err
	}

	where := "WHERE buyer_id = ?"
	args := []any{query.BuyerID().Bytes()}
	if query.Status() != nil {
		where += " AND status = ?"
		args = append(args, int(*query.Status()))
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders "+where, args...).
		Scan(&total).Error; err != nil {
		return OrdersPage{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	rows, err := h.db.WithContext(ctx).Raw(`
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
		`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, append(args, query.PageSize(), offset)...).Rows()
	if err != nil {
		return OrdersPage{}, err
	}
	defer rows.Close()

	items := make([]OrderResponse, 0, query.PageSize())
	for rows.Next() {
		item, scanErr := scanOrderHeader(rows)
		if scanErr != nil {
			return OrdersPage{}, scanErr
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return OrdersPage{}, err
	}

	return OrdersPage{
		Items:    items,
		Page:     query.Page(),
		PageSize: query.PageSize(),
		Total:    total,
	}, nil
}

// scanOrderHeader reads one order header row in the column order used by the
// listing and search queries.
func scanOrderHeader(rows *sql.Rows) (OrderResponse, error) {
	var (
		response    OrderResponse
		id, buyerID uuid.UUID
		status      int
		completedAt sql.NullTime
	)

	err := rows.Scan(
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
