package extraction

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"procura/internal/domain"
	"procura/internal/toon"
)

var defaultTaxRate = decimal.NewFromInt(19)

// toPlain flattens decoded TOON values into the same shapes
// encoding/json produces, so one mapping path serves both formats.
func toPlain(v any) any {
	switch val := v.(type) {
	case *toon.Object:
		m := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			inner, _ := val.Get(k)
			m[k] = toPlain(inner)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toPlain(e)
		}
		return out
	default:
		return v
	}
}

// buildOffer maps loosely structured model output into a
// ParsedVendorOffer, applying the leniency policy: bad numbers become
// nil or a safe default, missing text gets a placeholder, and only an
// empty order-line list is fatal.
func buildOffer(data map[string]any) (*ParsedVendorOffer, error) {
	var lines []ParsedOrderLine
	rawLines, _ := data["order_lines"].([]any)
	for _, raw := range rawLines {
		lineMap, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, buildOrderLine(lineMap))
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no valid order lines could be extracted")
	}

	offer := &ParsedVendorOffer{
		VendorName:        stringField(data, "Unknown Vendor", "vendor_name"),
		VatID:             stringField(data, "", "vat_id"),
		OfferDate:         stringField(data, "", "offer_date"),
		OfferNumber:       stringField(data, "", "offer_number"),
		Currency:          stringField(data, "EUR", "currency"),
		OrderLines:        lines,
		SubtotalNet:       parseDecimal(data["subtotal_net"]),
		DiscountTotal:     parseDecimal(data["discount_total"]),
		DeliveryCostNet:   parseDecimal(data["delivery_cost_net"]),
		DeliveryTaxAmount: parseDecimal(data["delivery_tax_amount"]),
		TaxRate:           parseDecimalDefault(data["tax_rate"], defaultTaxRate),
		TaxAmount:         parseDecimal(data["tax_amount"]),
		TotalGross:        parseDecimal(firstValue(data, "total_gross", "total_amount")),
		PaymentTerms:      stringField(data, "", "payment_terms"),
		DeliveryTerms:     stringField(data, "", "delivery_terms"),
		ValidityPeriod:    stringField(data, "", "validity_period"),
		WarrantyTerms:     stringField(data, "", "warranty_terms"),
		OtherTerms:        stringField(data, "", "other_terms"),
	}
	return offer, nil
}

func buildOrderLine(line map[string]any) ParsedOrderLine {
	return ParsedOrderLine{
		LineType:            domain.NormalizeLineType(stringField(line, "standard", "line_type")),
		Description:         stringField(line, "Unknown item", "description"),
		DetailedDescription: stringField(line, "", "detailed_description"),
		UnitPriceNet:        parseDecimalDefault(firstValue(line, "unit_price_net", "unit_price", "price"), decimal.Zero),
		Amount:              parseDecimalDefault(firstValue(line, "amount", "quantity"), decimal.NewFromInt(1)),
		Unit:                stringField(line, "pcs", "unit"),
		DiscountPercent:     parseDecimal(line["discount_percent"]),
		DiscountAmount:      parseDecimal(line["discount_amount"]),
		LineTotalNet:        parseDecimal(firstValue(line, "line_total_net", "total_price")),
	}
}

func firstValue(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(m map[string]any, fallback string, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				return s
			}
		}
	}
	return fallback
}

// parseDecimal converts a numeric field of unknown shape. String values
// tolerate currency symbols, thousands separators and the German
// decimal comma ("1.234,56"). Anything unparseable yields nil.
func parseDecimal(v any) *decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		d := decimal.NewFromFloat(val)
		return &d
	case int64:
		d := decimal.NewFromInt(val)
		return &d
	case int:
		d := decimal.NewFromInt(int64(val))
		return &d
	case string:
		cleaned := strings.TrimSpace(val)
		cleaned = strings.ReplaceAll(cleaned, "€", "")
		cleaned = strings.ReplaceAll(cleaned, "EUR", "")
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else if strings.Contains(cleaned, ",") {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}

func parseDecimalDefault(v any, fallback decimal.Decimal) decimal.Decimal {
	if d := parseDecimal(v); d != nil {
		return *d
	}
	return fallback
}
