package queries

import (
	"context"

	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatsQueryHandler computes revenue and sales aggregates with raw SQL.
// All aggregation happens in the database; nothing is summed in application
// memory.
type OrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewOrderStatsQueryHandler creates a handler for the stats query.
func NewOrderStatsQueryHandler(db *gorm.DB) OrderStatsQueryHandler {
	return OrderStatsQueryHandler{db: db}
}

// Handle executes the stats query over the optional date range.
// Revenue and average order value count completed orders only; refunded and
// cancelled orders contribute to the status counts but not to revenue.
func (h OrderStatsQueryHandler) Handle(ctx context.Context, query OrderStatsQuery) (OrderStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatsResponse{}, err
	}

	rangeWhere := ""
	rangeArgs := []any{}
	if query.From() != nil {
		rangeWhere += " AND created_at >= ?"
		rangeArgs = append(rangeArgs, *query.From())
	}
	if query.To() != nil {
		rangeWhere += " AND created_at <= ?"
		rangeArgs = append(rangeArgs, *query.To())
	}

	response := OrderStatsResponse{
		Revenue:           decimal.Zero,
		AverageOrderValue: decimal.Zero,
		CountsByStatus:    make(map[string]int64),
		TopProducts:       make([]TopProductResponse, 0, topProductLimit),
	}

	if err := h.loadRevenue(ctx, &response, rangeWhere, rangeArgs); err != nil {
		return OrderStatsResponse{}, err
	}
	if err := h.loadStatusCounts(ctx, &response, rangeWhere, rangeArgs); err != nil {
		return OrderStatsResponse{}, err
	}
	if err := h.loadTopProducts(ctx, &response, rangeWhere, rangeArgs); err != nil {
		return OrderStatsResponse{}, err
	}

	return response, nil
}

func (h OrderStatsQueryHandler) loadRevenue(
	ctx context.Context, response *OrderStatsResponse, rangeWhere string, rangeArgs []any,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = ?`+rangeWhere,
		append([]any{int(order.Completed)}, rangeArgs...)...,
	).Row()

	if err := row.Scan(&response.Revenue, &response.CompletedOrders); err != nil {
		return err
	}

	if response.CompletedOrders > 0 {
		response.AverageOrderValue = response.Revenue.
			Div(decimal.NewFromInt(response.CompletedOrders)).
			Round(2)
	}
	return nil
}

func (h OrderStatsQueryHandler) loadStatusCounts(
	ctx context.Context, response *OrderStatsResponse, rangeWhere string, rangeArgs []any,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE 1=1`+rangeWhere+`
		GROUP BY status`,
		rangeArgs...,
	).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status int
			count  int64
		)
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		response.CountsByStatus[order.Status(status).String()] = count
	}
	return rows.Err()
}

func (h OrderStatsQueryHandler) loadTopProducts(
	ctx context.Context, response *OrderStatsResponse, rangeWhere string, rangeArgs []any,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT l.product_id, l.title, SUM(l.quantity)
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		WHERE o.status = ?`+rangeWhere+`
		GROUP BY l.product_id, l.title
		ORDER BY SUM(l.quantity) DESC, l.title
		LIMIT ?`,
		append(append([]any{int(order.Completed)}, rangeArgs...), topProductLimit)...,
	).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			top       TopProductResponse
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &top.Title, &top.Quantity); err != nil {
			return err
		}
		top.ProductID = productID.String()
		response.TopProducts = append(response.TopProducts, top)
	}
	return rows.Err()
}
