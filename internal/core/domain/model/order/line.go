package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrLineIsNotConstructed is returned when a Line instance was not created
	// through the NewLine factory method.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

// LineType is the closed tag distinguishing the kinds of purchasable items.
// Each type maps to exactly one fulfillment record family: a course line
// yields an enrollment, an event line a booking, a digital-good line a
// download grant. Adding a product type means adding one constant here and
// one access handler, nothing else.
type LineType int

const (
	// LineTypeUnknown represents an invalid or undefined line type.
	LineTypeUnknown LineType = iota

	// LineTypeCourse marks a line purchasing course enrollment.
	LineTypeCourse

	// LineTypeEvent marks a line booking seats at a capacity-bounded event.
	LineTypeEvent

	// LineTypeDigitalGood marks a line granting download access to a digital product.
	LineTypeDigitalGood
)

func getLineTypeStrings() map[LineType]string {
	return map[LineType]string{
		LineTypeCourse:      "course",
		LineTypeEvent:       "event",
		LineTypeDigitalGood: "digital_good",
	}
}

// Validate checks if the LineType value is one of the declared variants.
func (t LineType) Validate() error {
	if _, ok := getLineTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("line type is invalid", fmt.Errorf("%d is not a valid line type", t))
	}
	return nil
}

// String returns the persisted name of the line type.
func (t LineType) String() string {
	if str, ok := getLineTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// LineTypeFromString parses a line type name as produced by String.
func LineTypeFromString(name string) (LineType, error) {
	for lineType, str := range getLineTypeStrings() {
		if str == name {
			return lineType, nil
		}
	}
	return LineTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"line type is invalid",
		fmt.Errorf("%q is not a valid line type name", name),
	)
}

// Line is one purchasable item within an order. The unit price and title are
// snapshots captured at order creation, so later catalog edits never
// retroactively alter historical orders. Lines are immutable once the order
// is created.
type Line struct {
	// id is the unique identifier for the line
	id kernel.UUID

	// productID references the purchased catalog item
	productID kernel.UUID

	// lineType selects the fulfillment record family for this line
	lineType LineType

	// quantity is the number of units purchased (must be positive)
	quantity int

	// unitPrice is the per-unit price snapshot (never negative)
	unitPrice decimal.Decimal

	// title is the product title snapshot
	title string

	// isConstructed ensures the line was created via NewLine
	isConstructed bool
}

// NewLine creates a new order line with validation.
//
// Parameters:
//   - id: Unique identifier for the line (must be a valid UUID)
//   - productID: Referenced catalog item (must be a valid UUID)
//   - lineType: One of the declared product-type variants
//   - quantity: Number of units (must be positive)
//   - unitPrice: Per-unit price snapshot (must not be negative)
//   - title: Product title snapshot (must not be empty)
//
// Returns:
//   - *Line: The created line if all validations pass
//   - error: Validation error if any parameter is invalid
func NewLine(
	id kernel.UUID,
	productID kernel.UUID,
	lineType LineType,
	quantity int,
	unitPrice decimal.Decimal,
	title string,
) (*Line, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		lineType.Validate(),
	); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if unitPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice.String()),
		)
	}

	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}

	return &Line{
		id:            id,
		productID:     productID,
		lineType:      lineType,
		quantity:      quantity,
		unitPrice:     unitPrice,
		title:         title,
		isConstructed: true,
	}, nil
}

// Validate ensures the Line instance was properly constructed through NewLine.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the referenced catalog item identifier.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// Type returns the line's product-type tag.
func (l *Line) Type() LineType {
	return l.lineType
}

// Quantity returns the number of units purchased.
func (l *Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the per-unit price snapshot.
func (l *Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// Title returns the product title snapshot.
func (l *Line) Title() string {
	return l.title
}

// Subtotal returns unitPrice multiplied by quantity.
func (l *Line) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
