// Package services contains domain services that implement business logic
// spanning multiple aggregates. Domain services coordinate operations that
// don't naturally belong to a single entity.
//
// The package provides the AccessDispatcher, which maps each order line's
// product type to the pair of operations that grant and revoke the
// corresponding access right. The mapping is a closed set of variants:
// supporting a new product type means adding one handler, not modifying the
// existing ones.
package services
