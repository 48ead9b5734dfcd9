package queries

import (
	"errors"
	"fmt"
	"time"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// topProductLimit caps the top-selling products list in the stats response.
const topProductLimit = 5

var ErrOrderStatsQueryIsNotConstructed = errors.New(
	"OrderStatsQuery must be created via NewOrderStatsQuery constructor",
)

// OrderStatsQuery computes revenue and sales aggregates over an optional
// creation-date range.
//
// Example:
//
//	from := time.Now().AddDate(0, -1, 0)
//	query, _ := NewOrderStatsQuery(&from, nil)
//	handler := NewOrderStatsQueryHandler(db)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to compute stats: %w", err)
//	}
//	fmt.Printf("revenue: %s over %d completed orders\n", stats.Revenue, stats.CompletedOrders)
type OrderStatsQuery struct { //nolint:recvcheck //using for validation
	from *time.Time
	to   *time.Time

	guard guard.ConstructorGuard
}

// NewOrderStatsQuery creates a stats query. Both range bounds are optional;
// when both are given, from must not be after to.
func NewOrderStatsQuery(from, to *time.Time) (OrderStatsQuery, error) {
	if from != nil && to != nil && from.After(*to) {
		return OrderStatsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("%s is after %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}

	return OrderStatsQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrOrderStatsQueryIsNotConstructed)
}

// From returns the optional lower creation-date bound, inclusive.
func (q OrderStatsQuery) From() *time.Time {
	return q.from
}

// To returns the optional upper creation-date bound, inclusive.
func (q OrderStatsQuery) To() *time.Time {
	return q.to
}

// TopProductResponse is one entry of the top-selling products list.
type TopProductResponse struct {
	ProductID string
	Title     string
	Quantity  int64
}

// OrderStatsResponse aggregates the read side of the order book.
// Revenue and average order value are computed over completed orders only;
// the status counts cover every status so the funnel is visible.
type OrderStatsResponse struct {
	Revenue           decimal.Decimal
	CompletedOrders   int64
	AverageOrderValue decimal.Decimal
	CountsByStatus    map[string]int64
	TopProducts       []TopProductResponse
}
