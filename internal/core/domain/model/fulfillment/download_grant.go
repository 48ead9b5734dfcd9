package fulfillment

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ErrDownloadGrantIsNotConstructed is returned when a DownloadGrant was not
// created through NewDownloadGrant or RestoreDownloadGrant.
var ErrDownloadGrantIsNotConstructed = errors.New("DownloadGrant must be created via NewDownloadGrant constructor")

// GrantStatus is the sub-status of a download grant.
type GrantStatus int

const (
	// GrantStatusUnknown represents an invalid or undefined sub-status.
	GrantStatusUnknown GrantStatus = iota

	// GrantActive means the buyer may download the product.
	GrantActive

	// GrantRevoked means the grant was reversed by a refund. The record is
	// retained as an audit trail.
	GrantRevoked
)

// DownloadGrant records download access granted for a single order line.
// ConsumedDownloads counts the buyer's downloads against the grant and never
// goes negative.
type DownloadGrant struct {
	id                kernel.UUID
	orderLineID       kernel.UUID
	buyerID           kernel.UUID
	productID         kernel.UUID
	consumedDownloads int
	status            GrantStatus

	guard kernel.ConstructorGuard
}

// NewDownloadGrant creates an active grant with zero consumed downloads.
func NewDownloadGrant(id, orderLineID, buyerID, productID kernel.UUID) (*DownloadGrant, error) {
	if err := errors.Join(
		id.Validate(),
		orderLineID.Validate(),
		buyerID.Validate(),
		productID.Validate(),
	); err != nil {
		return nil, err
	}

	return &DownloadGrant{
		id:          id,
		orderLineID: orderLineID,
		buyerID:     buyerID,
		productID:   productID,
		status:      GrantActive,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreDownloadGrant reconstructs a grant from persistence.
func RestoreDownloadGrant(
	id, orderLineID, buyerID, productID kernel.UUID,
	consumedDownloads int,
	status GrantStatus,
) (*DownloadGrant, error) {
	if consumedDownloads < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"consumed downloads is invalid",
			fmt.Errorf("%d is negative", consumedDownloads),
		)
	}

	grant, err := NewDownloadGrant(id, orderLineID, buyerID, productID)
	if err != nil {
		return nil, err
	}
	grant.consumedDownloads = consumedDownloads
	grant.status = status
	return grant, nil
}

// Validate ensures the DownloadGrant was created via a constructor.
func (g *DownloadGrant) Validate() error {
	if g == nil {
		return ErrDownloadGrantIsNotConstructed
	}
	return g.guard.Validate(ErrDownloadGrantIsNotConstructed)
}

// ID returns the grant's unique identifier.
func (g *DownloadGrant) ID() kernel.UUID { return g.id }

// OrderLineID returns the order line this grant was issued for.
func (g *DownloadGrant) OrderLineID() kernel.UUID { return g.orderLineID }

// BuyerID returns the buyer holding the grant.
func (g *DownloadGrant) BuyerID() kernel.UUID { return g.buyerID }

// ProductID returns the downloadable product.
func (g *DownloadGrant) ProductID() kernel.UUID { return g.productID }

// ConsumedDownloads returns the number of downloads consumed against the grant.
func (g *DownloadGrant) ConsumedDownloads() int { return g.consumedDownloads }

// Status returns the grant sub-status.
func (g *DownloadGrant) Status() GrantStatus { return g.status }

// Revoke reverses the grant but retains the record. Returns true if the
// sub-status changed, false if the grant was already revoked.
func (g *DownloadGrant) Revoke() bool {
	if g.status == GrantRevoked {
		return false
	}
	g.status = GrantRevoked
	return true
}
