// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by buyer, status, and creation time.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID       uuid.UUID `gorm:"type:uuid;index"`
	ContactEmail  string
	Status        int             `gorm:"index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2)"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2)"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2)"`
	PaymentRef    *string         `gorm:"uniqueIndex"`
	PaymentMethod *string
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
	CompletedAt   *time.Time
	Lines         []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one order line row. Lines are written once at order
// creation and never updated; Position preserves the original cart ordering.
type OrderLineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	LineType  int
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	Title     string
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation,
// including one line row per order line.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for i, line := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			ID:        line.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			Position:  i,
			LineType:  int(line.Type()),
			ProductID: line.ProductID().Bytes(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice(),
			Title:     line.Title(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		ContactEmail:  aggregate.ContactEmail(),
		Status:        int(aggregate.Status()),
		Subtotal:      aggregate.Subtotal(),
		Tax:           aggregate.Tax(),
		Total:         aggregate.Total(),
		PaymentRef:    aggregate.PaymentRef(),
		PaymentMethod: aggregate.PaymentMethod(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		CompletedAt:   aggregate.CompletedAt(),
		Lines:         lineDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Lines, func(i, j int) bool {
		return dto.Lines[i].Position < dto.Lines[j].Position
	})

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		buyerID,
		dto.ContactEmail,
		order.Status(dto.Status),
		lines,
		dto.Subtotal,
		dto.Tax,
		dto.Total,
		dto.PaymentRef,
		dto.PaymentMethod,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedAt,
	)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.NewLine(id, productID, order.LineType(dto.LineType), dto.Quantity, dto.UnitPrice, dto.Title)
}
