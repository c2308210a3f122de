// Package validation holds the business rules for procurement requests:
// VAT ID format, order line sanity checks, total calculation and status
// transitions.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"procura/internal/domain"
)

// German VAT ID (USt-IdNr.): DE followed by exactly 9 digits.
var vatIDPattern = regexp.MustCompile(`^DE\d{9}$`)

// totalTolerance is the allowed drift between a provided total and the
// recalculated one.
var totalTolerance = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

// Error is a field-scoped validation failure. It unwraps to
// domain.ErrInvalidInput so handlers map it to a 400.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return domain.ErrInvalidInput
}

// NormalizeVatID uppercases and trims a VAT ID.
func NormalizeVatID(vatID string) string {
	return strings.ToUpper(strings.TrimSpace(vatID))
}

// ValidateVatID checks the German VAT ID format.
func ValidateVatID(vatID string) error {
	if strings.TrimSpace(vatID) == "" {
		return &Error{Field: "vat_id", Message: "VAT ID is required"}
	}
	if !vatIDPattern.MatchString(NormalizeVatID(vatID)) {
		return &Error{
			Field:   "vat_id",
			Message: "Invalid VAT ID format. Expected format: DE + 9 digits (e.g., DE123456789)",
		}
	}
	return nil
}

// LineInput is the subset of an order line the rules need.
type LineInput struct {
	LineType        domain.LineType
	Description     string
	UnitPrice       decimal.Decimal
	Amount          decimal.Decimal
	DiscountPercent *decimal.Decimal
}

// ValidateOrderLine checks a single order line.
func ValidateOrderLine(pos int, line LineInput) error {
	field := func(name string) string {
		return fmt.Sprintf("order_lines[%d].%s", pos, name)
	}
	if strings.TrimSpace(line.Description) == "" {
		return &Error{Field: field("description"), Message: "description must not be blank"}
	}
	if !line.Amount.IsPositive() {
		return &Error{Field: field("amount"), Message: "amount must be positive"}
	}
	if line.UnitPrice.IsNegative() {
		return &Error{Field: field("unit_price"), Message: "unit price must not be negative"}
	}
	if line.DiscountPercent != nil {
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(oneHundred) {
			return &Error{Field: field("discount_percent"), Message: "discount percent must be between 0 and 100"}
		}
	}
	return nil
}

// LineTotal computes the total of one line: unit price times amount,
// minus the percentage discount, rounded half-up to 2 decimals.
func LineTotal(unitPrice, amount decimal.Decimal, discountPercent *decimal.Decimal) decimal.Decimal {
	total := unitPrice.Mul(amount)
	if discountPercent != nil && !discountPercent.IsZero() {
		multiplier := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
		total = total.Mul(multiplier)
	}
	return roundHalfUp(total)
}

// roundHalfUp rounds to 2 decimals, halves away from zero. Decimal's
// Round uses half-away-from-zero, which matches half-up for the
// non-negative money values handled here.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RequestTotal sums the line totals of all standard lines. Alternative
// and optional lines never count toward the request total.
func RequestTotal(lines []LineInput) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.LineType != domain.LineTypeStandard {
			continue
		}
		total = total.Add(LineTotal(line.UnitPrice, line.Amount, line.DiscountPercent))
	}
	return roundHalfUp(total)
}

// ValidateProvidedTotal compares a caller-supplied total against the
// recalculated one, allowing a one-cent tolerance.
func ValidateProvidedTotal(lines []LineInput, provided decimal.Decimal) error {
	calculated := RequestTotal(lines)
	if calculated.Sub(provided).Abs().GreaterThan(totalTolerance) {
		return &Error{
			Field:   "total_cost",
			Message: fmt.Sprintf("Total mismatch: expected %s, got %s", calculated, provided),
		}
	}
	return nil
}

// ValidateTransition checks a status change against the workflow.
func ValidateTransition(from, to domain.RequestStatus) error {
	if !domain.IsValidStatus(to) {
		return &Error{Field: "status", Message: fmt.Sprintf("unknown status %q", to)}
	}
	if !domain.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}
