// Package fulfillment provides the access-right records granted once an order
// completes: course enrollments, event bookings, and digital-good download
// grants. Exactly one record exists per order line, keyed by the line's
// identifier, which is what makes granting idempotent.
//
// Records are never deleted. Compensation flips their sub-status to cancelled
// (or revoked) and leaves them in place as an audit trail; the corresponding
// shared counters are adjusted separately by the catalog repository.
package fulfillment
