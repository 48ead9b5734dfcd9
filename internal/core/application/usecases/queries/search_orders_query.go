package queries

import (
	"errors"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery is the admin search over the order book: a keyword matched
// against contact emails and line titles, combined with optional status,
// product-type, and creation-date filters. Results are capped.
//
// Example:
//
//	status := order.Completed
//	query, _ := NewSearchOrdersQuery("workshop", &status, nil, nil, nil, 0)
//	handler := NewSearchOrdersQueryHandler(db)
//
//	results, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("search failed: %w", err)
//	}
type SearchOrdersQuery struct { //nolint:recvcheck //using for validation
	keyword  string
	status   *order.Status
	lineType *order.LineType
	from     *time.Time
	to       *time.Time
	limit    int

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery creates a search query.
// A zero limit falls back to the default; anything above the cap is rejected.
// The keyword may be empty, in which case only the filters apply.
func NewSearchOrdersQuery(
	keyword string,
	status *order.Status,
	lineType *order.LineType,
	from, to *time.Time,
	limit int,
) (SearchOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return SearchOrdersQuery{}, err
		}
	}
	if lineType != nil {
		if err := lineType.Validate(); err != nil {
			return SearchOrdersQuery{}, err
		}
	}
	if from != nil && to != nil && from.After(*to) {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("%s is after %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}

	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 1 || limit > maxSearchLimit {
		return SearchOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxSearchLimit)
	}

	return SearchOrdersQuery{
		keyword:  keyword,
		status:   status,
		lineType: lineType,
		from:     from,
		to:       to,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// Keyword returns the search keyword; empty means filter-only search.
func (q SearchOrdersQuery) Keyword() string {
	return q.keyword
}

// Status returns the optional status filter.
func (q SearchOrdersQuery) Status() *order.Status {
	return q.status
}

// LineType returns the optional product-type filter.
func (q SearchOrdersQuery) LineType() *order.LineType {
	return q.lineType
}

// From returns the optional lower creation-date bound, inclusive.
func (q SearchOrdersQuery) From() *time.Time {
	return q.from
}

// To returns the optional upper creation-date bound, inclusive.
func (q SearchOrdersQuery) To() *time.Time {
	return q.to
}

// Limit returns the maximum number of orders returned.
func (q SearchOrdersQuery) Limit() int {
	return q.limit
}
