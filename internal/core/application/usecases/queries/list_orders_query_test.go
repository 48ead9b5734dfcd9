package queries_test

import (
	"testing"

	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_ValidInput(t *testing.T) {
	buyerID := kernel.NewUUID()
	status := order.Completed

	query, err := queries.NewListOrdersQuery(buyerID, &status, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, buyerID, query.BuyerID())
	assert.Equal(t, order.Completed, *query.Status())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 10, query.PageSize())
}

func TestNewListOrdersQuery_DefaultPageSize(t *testing.T) {
	query, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, query.PageSize())
}

func TestNewListOrdersQuery_InvalidPage(t *testing.T) {
	_, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, 0, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListOrdersQuery_PageSizeTooLarge(t *testing.T) {
	_, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil, 1, 101)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewListOrdersQuery_InvalidStatusFilter(t *testing.T) {
	status := order.Unknown
	_, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status, 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
