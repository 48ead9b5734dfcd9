package order_test

import (
	"fmt"
	"testing"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.PaymentPending))
		assert.Equal(t, 3, int(order.Paid))
		assert.Equal(t, 4, int(order.Processing))
		assert.Equal(t, 5, int(order.Completed))
		assert.Equal(t, 6, int(order.Cancelled))
		assert.Equal(t, 7, int(order.Refunded))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.PaymentPending,
			order.Paid,
			order.Processing,
			order.Completed,
			order.Cancelled,
			order.Refunded,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(42).Validate()

		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	expected := map[order.Status]string{
		order.Unknown:        "unknown",
		order.Pending:        "pending",
		order.PaymentPending: "payment_pending",
		order.Paid:           "paid",
		order.Processing:     "processing",
		order.Completed:      "completed",
		order.Cancelled:      "cancelled",
		order.Refunded:       "refunded",
	}

	for status, name := range expected {
		assert.Equal(t, name, status.String())
	}

	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all valid names", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending,
			order.PaymentPending,
			order.Paid,
			order.Processing,
			order.Completed,
			order.Cancelled,
			order.Refunded,
		} {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")
		require.Error(t, err)

		_, err = order.StatusFromString("shipped")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:        {order.PaymentPending, order.Cancelled},
		order.PaymentPending: {order.Paid, order.Cancelled},
		order.Paid:           {order.Processing, order.Cancelled},
		order.Processing:     {order.Completed, order.Cancelled},
		order.Completed:      {order.Refunded},
		order.Cancelled:      {},
		order.Refunded:       {},
	}

	all := []order.Status{
		order.Pending,
		order.PaymentPending,
		order.Paid,
		order.Processing,
		order.Completed,
		order.Cancelled,
		order.Refunded,
	}

	for from, targets := range allowed {
		permitted := make(map[order.Status]bool)
		for _, to := range targets {
			permitted[to] = true
		}

		for _, to := range all {
			name := fmt.Sprintf("%s to %s", from.String(), to.String())
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, permitted[to], from.CanTransitionTo(to))
			})
		}
	}
}

func TestStatus_Transition(t *testing.T) {
	t.Run("should return target for allowed transition", func(t *testing.T) {
		next, err := order.Pending.Transition(order.PaymentPending)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentPending, next)
	})

	t.Run("should name the attempted pair for disallowed transition", func(t *testing.T) {
		next, err := order.Pending.Transition(order.Completed)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Status(0), next)
		assert.Contains(t, err.Error(), "from pending to completed")
	})

	t.Run("should reject invalid target status", func(t *testing.T) {
		_, err := order.Pending.Transition(order.Unknown)

		require.Error(t, err)
	})

	t.Run("should reject transitions out of terminal statuses", func(t *testing.T) {
		_, err := order.Cancelled.Transition(order.Pending)
		require.Error(t, err)

		_, err = order.Refunded.Transition(order.Completed)
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.PaymentPending.IsTerminal())
	assert.False(t, order.Paid.IsTerminal())
	assert.False(t, order.Processing.IsTerminal())
	assert.False(t, order.Completed.IsTerminal(), "completed can still be refunded")
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Refunded.IsTerminal())
}
