// Package extraction turns vendor offer text into structured offer data
// using a model. The primary exchange format is TOON; a single JSON
// retry covers models that cannot hold the compact format.
package extraction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"procura/internal/domain"
	"procura/internal/toon"
)

// ParsedOrderLine is one extracted offer position. Unparseable numeric
// fields stay nil; price and amount fall back to zero and one.
type ParsedOrderLine struct {
	LineType            domain.LineType  `json:"line_type"`
	Description         string           `json:"description"`
	DetailedDescription string           `json:"detailed_description,omitempty"`
	UnitPriceNet        decimal.Decimal  `json:"unit_price_net"`
	Amount              decimal.Decimal  `json:"amount"`
	Unit                string           `json:"unit"`
	DiscountPercent     *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountAmount      *decimal.Decimal `json:"discount_amount,omitempty"`
	LineTotalNet        *decimal.Decimal `json:"line_total_net,omitempty"`
}

// ParsedVendorOffer is the structured result of extracting one offer
// document.
type ParsedVendorOffer struct {
	VendorName        string            `json:"vendor_name"`
	VatID             string            `json:"vat_id,omitempty"`
	OfferDate         string            `json:"offer_date,omitempty"`
	OfferNumber       string            `json:"offer_number,omitempty"`
	Currency          string            `json:"currency"`
	OrderLines        []ParsedOrderLine `json:"order_lines"`
	SubtotalNet       *decimal.Decimal  `json:"subtotal_net,omitempty"`
	DiscountTotal     *decimal.Decimal  `json:"discount_total,omitempty"`
	DeliveryCostNet   *decimal.Decimal  `json:"delivery_cost_net,omitempty"`
	DeliveryTaxAmount *decimal.Decimal  `json:"delivery_tax_amount,omitempty"`
	TaxRate           decimal.Decimal   `json:"tax_rate"`
	TaxAmount         *decimal.Decimal  `json:"tax_amount,omitempty"`
	TotalGross        *decimal.Decimal  `json:"total_gross,omitempty"`
	PaymentTerms      string            `json:"payment_terms,omitempty"`
	DeliveryTerms     string            `json:"delivery_terms,omitempty"`
	ValidityPeriod    string            `json:"validity_period,omitempty"`
	WarrantyTerms     string            `json:"warranty_terms,omitempty"`
	OtherTerms        string            `json:"other_terms,omitempty"`
}

// Metadata reports how an offer was extracted.
type Metadata struct {
	FormatUsed   string        `json:"format_used"`
	FallbackUsed bool          `json:"fallback_used"`
	TokenSavings *toon.Savings `json:"token_savings,omitempty"`
}

// ExtractionError means the model answered but no usable offer could be
// built from its output, even after the JSON retry. RawOutput holds the
// last model answer for diagnosis.
type ExtractionError struct {
	Msg       string
	RawOutput string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("offer extraction failed: %s", e.Msg)
}
