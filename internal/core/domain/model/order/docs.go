// Package order provides domain entities and business logic for order management
// in the commerce system. It implements the Order aggregate root with lifecycle
// management, immutable line items, and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, totals, and lifecycle
//   - Line: An immutable line item with price and title snapshots
//   - LineType: The closed tag over the purchasable product kinds
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, buyer, contact email, and at least one line
//   - total == subtotal + tax; subtotal == sum of line unit price times quantity
//   - Order status follows the declared transition table:
//     pending -> payment_pending -> paid -> processing -> completed -> refunded,
//     with cancellation allowed from every pre-completion status
//   - Payment references are attached idempotently and are unique once set
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
