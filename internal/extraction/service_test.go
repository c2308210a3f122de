package extraction

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/llm"
)

const toonOffer = `vendor_name:ACME GmbH|vat_id:DE123456789|currency:EUR|order_lines:[{line_type:standard|description:Laptop Pro 15|detailed_description:32GB RAM, 1TB SSD|unit_price_net:999.5|amount:2|unit:pcs|line_total_net:1999};{line_type:optional|description:USB-C Dock|unit_price_net:189|amount:2|unit:pcs|line_total_net:378}]|subtotal_net:1999|tax_rate:19|tax_amount:379.81|total_gross:2378.81`

const jsonOffer = `{
  "vendor_name": "ACME GmbH",
  "vat_id": "DE123456789",
  "currency": "EUR",
  "order_lines": [
    {"line_type": "standard", "description": "Laptop Pro 15", "unit_price_net": 999.5, "amount": 2, "unit": "pcs", "line_total_net": 1999}
  ],
  "subtotal_net": 1999,
  "tax_rate": 19,
  "total_gross": 2378.81
}`

// scriptedClient returns one canned answer (or error) per call and
// records every request it saw.
type scriptedClient struct {
	responses []string
	errs      []error
	requests  []llm.CompletionRequest
}

func (c *scriptedClient) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	i := len(c.requests)
	c.requests = append(c.requests, req)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", llm.ErrModelUnavailable
}

func newTestService(client llm.Client) *Service {
	return NewService(client, Config{UseTOON: true, FallbackToJSON: true})
}

func TestParseOfferTOONSuccess(t *testing.T) {
	client := &scriptedClient{responses: []string{toonOffer}}
	svc := newTestService(client)

	offer, meta, err := svc.ParseOffer(context.Background(), "Angebot ...")
	require.NoError(t, err)

	assert.Equal(t, "ACME GmbH", offer.VendorName)
	assert.Equal(t, "DE123456789", offer.VatID)
	require.Len(t, offer.OrderLines, 2)
	assert.Equal(t, domain.LineTypeStandard, offer.OrderLines[0].LineType)
	assert.Equal(t, "999.5", offer.OrderLines[0].UnitPriceNet.String())
	assert.Equal(t, domain.LineTypeOptional, offer.OrderLines[1].LineType)

	assert.Equal(t, "toon", meta.FormatUsed)
	assert.False(t, meta.FallbackUsed)
	require.NotNil(t, meta.TokenSavings)
	assert.Greater(t, meta.TokenSavings.JSONChars, meta.TokenSavings.TOONChars)

	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].System, "TOON format")
}

func TestParseOfferAcceptsFencedResponse(t *testing.T) {
	client := &scriptedClient{responses: []string{"```\n" + toonOffer + "\n```"}}
	svc := newTestService(client)

	offer, _, err := svc.ParseOffer(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, "ACME GmbH", offer.VendorName)
}

func TestParseOfferFallsBackToJSON(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"I could not find any structured data in this document.",
		jsonOffer,
	}}
	svc := newTestService(client)

	offer, meta, err := svc.ParseOffer(context.Background(), "doc")
	require.NoError(t, err)

	assert.Equal(t, "ACME GmbH", offer.VendorName)
	assert.Equal(t, "json", meta.FormatUsed)
	assert.True(t, meta.FallbackUsed)
	assert.Nil(t, meta.TokenSavings)

	require.Len(t, client.requests, 2)
	assert.Contains(t, client.requests[1].System, "valid JSON")
}

func TestParseOfferEmptyLinesTriggersFallback(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"vendor_name:ACME GmbH|order_lines:[]",
		jsonOffer,
	}}
	svc := newTestService(client)

	offer, meta, err := svc.ParseOffer(context.Background(), "doc")
	require.NoError(t, err)
	assert.True(t, meta.FallbackUsed)
	require.Len(t, offer.OrderLines, 1)
}

func TestParseOfferBothFormatsFail(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"not toon at all { broken",
		"still not json",
	}}
	svc := newTestService(client)

	_, _, err := svc.ParseOffer(context.Background(), "doc")
	require.Error(t, err)

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "still not json", exErr.RawOutput)
	assert.Len(t, client.requests, 2, "never more than two model calls")
}

func TestParseOfferModelUnavailable(t *testing.T) {
	client := &scriptedClient{errs: []error{llm.ErrModelUnavailable}}
	svc := newTestService(client)

	_, _, err := svc.ParseOffer(context.Background(), "doc")
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
	assert.Len(t, client.requests, 1)
}

func TestParseOfferModelUnavailableDuringFallback(t *testing.T) {
	client := &scriptedClient{
		responses: []string{"garbage response"},
		errs:      []error{nil, llm.ErrModelUnavailable},
	}
	svc := newTestService(client)

	_, _, err := svc.ParseOffer(context.Background(), "doc")
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
	assert.Len(t, client.requests, 2)
}

func TestParseOfferNoFallbackConfigured(t *testing.T) {
	client := &scriptedClient{responses: []string{"garbage"}}
	svc := NewService(client, Config{UseTOON: true, FallbackToJSON: false})

	_, _, err := svc.ParseOffer(context.Background(), "doc")
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Len(t, client.requests, 1)
}

func TestParseOfferJSONOnlyMode(t *testing.T) {
	client := &scriptedClient{responses: []string{jsonOffer}}
	svc := NewService(client, Config{UseTOON: false, FallbackToJSON: true})

	offer, meta, err := svc.ParseOffer(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, "json", meta.FormatUsed)
	assert.False(t, meta.FallbackUsed)
	assert.Equal(t, "ACME GmbH", offer.VendorName)
	assert.Len(t, client.requests, 1)
	assert.False(t, strings.Contains(client.requests[0].System, "TOON"))
}
