package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestValidateVatID(t *testing.T) {
	assert.NoError(t, ValidateVatID("DE123456789"))
	assert.NoError(t, ValidateVatID(" de123456789 "), "normalized before matching")

	invalid := []string{
		"",
		"DE12345678",    // 8 digits
		"DE1234567890",  // 10 digits
		"AT123456789",   // wrong country
		"DE12345678X",   // non-digit
		"123456789",     // missing prefix
	}
	for _, v := range invalid {
		err := ValidateVatID(v)
		require.Error(t, err, "vat id %q", v)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestValidateOrderLine(t *testing.T) {
	valid := LineInput{
		LineType:    domain.LineTypeStandard,
		Description: "Laptop",
		UnitPrice:   dec("999.50"),
		Amount:      dec("2"),
	}
	assert.NoError(t, ValidateOrderLine(0, valid))

	t.Run("blank description", func(t *testing.T) {
		line := valid
		line.Description = "  "
		err := ValidateOrderLine(0, line)
		require.Error(t, err)
		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "order_lines[0].description", verr.Field)
	})

	t.Run("zero amount", func(t *testing.T) {
		line := valid
		line.Amount = decimal.Zero
		assert.Error(t, ValidateOrderLine(1, line))
	})

	t.Run("negative price", func(t *testing.T) {
		line := valid
		line.UnitPrice = dec("-1")
		assert.Error(t, ValidateOrderLine(0, line))
	})

	t.Run("discount out of range", func(t *testing.T) {
		line := valid
		line.DiscountPercent = decPtr("101")
		assert.Error(t, ValidateOrderLine(0, line))
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("plain multiply", func(t *testing.T) {
		total := LineTotal(dec("999.50"), dec("2"), nil)
		assert.Equal(t, "1999", total.String())
	})

	t.Run("with discount", func(t *testing.T) {
		total := LineTotal(dec("1299.99"), dec("5"), decPtr("10"))
		assert.Equal(t, "5849.96", total.String(), "rounded half-up to 2 decimals")
	})

	t.Run("half rounds up", func(t *testing.T) {
		total := LineTotal(dec("0.125"), dec("1"), nil)
		assert.Equal(t, "0.13", total.String())
	})
}

func TestRequestTotalOnlyStandardLines(t *testing.T) {
	lines := []LineInput{
		{LineType: domain.LineTypeStandard, Description: "Laptop", UnitPrice: dec("1000"), Amount: dec("2")},
		{LineType: domain.LineTypeAlternative, Description: "Bigger laptop", UnitPrice: dec("2500"), Amount: dec("2")},
		{LineType: domain.LineTypeOptional, Description: "Dock", UnitPrice: dec("189"), Amount: dec("2")},
		{LineType: domain.LineTypeStandard, Description: "Mouse", UnitPrice: dec("25.50"), Amount: dec("4")},
	}

	total := RequestTotal(lines)
	assert.Equal(t, "2102", total.String())
}

func TestValidateProvidedTotal(t *testing.T) {
	lines := []LineInput{
		{LineType: domain.LineTypeStandard, Description: "Laptop", UnitPrice: dec("999.50"), Amount: dec("2")},
	}

	assert.NoError(t, ValidateProvidedTotal(lines, dec("1999.00")))
	assert.NoError(t, ValidateProvidedTotal(lines, dec("1999.01")), "one cent tolerance")
	assert.Error(t, ValidateProvidedTotal(lines, dec("1998.50")))
}

func TestValidateTransition(t *testing.T) {
	allowed := []struct{ from, to domain.RequestStatus }{
		{domain.StatusOpen, domain.StatusInProgress},
		{domain.StatusOpen, domain.StatusClosed},
		{domain.StatusInProgress, domain.StatusClosed},
		{domain.StatusInProgress, domain.StatusOpen},
	}
	for _, tr := range allowed {
		assert.NoError(t, ValidateTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to domain.RequestStatus }{
		{domain.StatusClosed, domain.StatusOpen},
		{domain.StatusClosed, domain.StatusInProgress},
		{domain.StatusOpen, domain.StatusOpen},
	}
	for _, tr := range denied {
		err := ValidateTransition(tr.from, tr.to)
		require.Error(t, err, "%s -> %s", tr.from, tr.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}

	assert.Error(t, ValidateTransition(domain.StatusOpen, domain.RequestStatus("bogus")))
}
