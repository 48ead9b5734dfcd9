package commands

import (
	"errors"
	"time"

	"commerce/internal/pkg/guard"
)

var (
	ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
		"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
	)
	ErrTTLIsInvalid = errors.New("ttl must be greater than 0")
)

// ExpirePendingOrdersCommand represents a request to cancel orders that have
// sat in "pending" longer than the configured payment window.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates a command to expire stale pending orders.
// Validates that the time-to-live is positive.
func NewExpirePendingOrdersCommand(ttl time.Duration) (ExpirePendingOrdersCommand, error) {
	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, ErrTTLIsInvalid
	}

	return ExpirePendingOrdersCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// TTL returns how long an order may stay pending before it expires.
func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}
