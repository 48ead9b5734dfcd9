package queries

import (
	"context"

	"gorm.io/gorm"
)

// SearchOrdersQueryHandler runs the admin order search with raw SQL.
// Keyword matching is case-insensitive over contact emails and line titles;
// line-level filters are applied with EXISTS so each order appears once no
// matter how many of its lines match.
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

// NewSearchOrdersQueryHandler creates a handler for the order search.
func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

// Handle executes the search and returns matching order headers, newest first,
// capped at the query's limit.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := "WHERE 1=1"
	args := []any{}

	if keyword := query.Keyword(); keyword != "" {
		pattern := "%" + keyword + "%"
		where += ` AND (o.contact_email ILIKE ? OR EXISTS (
			SELECT 1 FROM order_lines l
			WHERE l.order_id = o.id AND l.title ILIKE ?
		))`
		args = append(args, pattern, pattern)
	}
	if query.Status() != nil {
		where += " AND o.status = ?"
		args = append(args, int(*query.Status()))
	}
	if query.LineType() != nil {
		where += ` AND EXISTS (
			SELECT 1 FROM order_lines l
			WHERE l.order_id = o.id AND l.line_type = ?
		)`
		args = append(args, int(*query.LineType()))
	}
	if query.From() != nil {
		where += " AND o.created_at >= ?"
		args = append(args, *query.From())
	}
	if query.To() != nil {
		where += " AND o.created_at <= ?"
		args = append(args, *query.To())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.buyer_id,
			o.contact_email,
			o.status,
			o.subtotal,
			o.tax,
			o.total,
			o.payment_ref,
			o.payment_method,
			o.created_at,
			o.updated_at,
			o.completed_at
		FROM orders o
		`+where+`
		ORDER BY o.created_at DESC
		LIMIT ?
	`, append(args, query.Limit())...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]OrderResponse, 0, query.Limit())
	for rows.Next() {
		item, scanErr := scanOrderHeader(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
