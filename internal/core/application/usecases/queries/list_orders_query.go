package queries

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves one page of a buyer's orders, newest first,
// optionally narrowed to a single status.
//
// Example:
//
//	status := order.Completed
//	query, _ := NewListOrdersQuery(buyerID, &status, 1, 20)
//	handler := NewListOrdersQueryHandler(db)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("%d of %d orders\n", len(page.Items), page.Total)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	buyerID  kernel.UUID
	status   *order.Status
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for one page of a buyer's orders.
// Page numbering starts at 1. A zero pageSize falls back to the default;
// anything above the maximum is rejected.
func NewListOrdersQuery(buyerID kernel.UUID, status *order.Status, page, pageSize int) (ListOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	if page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"page",
			fmt.Errorf("%d is not greater than 0", page),
		)
	}

	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}

	return ListOrdersQuery{
		buyerID:  buyerID,
		status:   status,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// BuyerID returns the buyer whose orders are listed.
func (q ListOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of orders per page.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrdersPage is one page of the buyer's order history.
type OrdersPage struct {
	Items    []OrderResponse
	Page     int
	PageSize int
	Total    int64
}
