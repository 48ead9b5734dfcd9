// Package catalog holds read models for the product catalogs the order core
// consumes: courses, events, and digital goods. The catalogs themselves are
// owned elsewhere; this package only describes the snapshot the core reads at
// order-creation time (price, purchasability, title) and the shared counters
// it mutates at fulfillment and refund time (enrollment count, available
// event capacity, download count).
//
// Counter mutation never happens on these structs. They are point-in-time
// reads; all counter changes are atomic single-statement updates executed by
// the catalog repository inside the owning transaction.
package catalog
