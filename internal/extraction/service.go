package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"procura/internal/llm"
	"procura/internal/toon"
)

// Config tunes the extraction service.
type Config struct {
	MaxTokens      int
	UseTOON        bool
	FallbackToJSON bool
}

// Service extracts structured offers from document text. At most two
// model calls happen per offer: the TOON attempt and, if its output is
// unusable, one JSON retry.
type Service struct {
	client llm.Client
	cfg    Config
}

// NewService creates an extraction service.
func NewService(client llm.Client, cfg Config) *Service {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4000
	}
	return &Service{client: client, cfg: cfg}
}

// ParseOffer extracts a vendor offer from document text.
//
// Model transport failures surface as llm.ErrModelUnavailable and are
// never retried. A model answer that cannot be turned into an offer
// triggers the single JSON retry; if that fails too, the caller gets an
// *ExtractionError carrying the raw output.
func (s *Service) ParseOffer(ctx context.Context, documentText string) (*ParsedVendorOffer, *Metadata, error) {
	if s.client == nil {
		return nil, nil, fmt.Errorf("extraction: no model client configured: %w", llm.ErrModelUnavailable)
	}

	meta := &Metadata{FormatUsed: "json"}
	if s.cfg.UseTOON {
		meta.FormatUsed = "toon"
	}

	resp, err := s.callModel(ctx, documentText, s.cfg.UseTOON)
	if err != nil {
		return nil, nil, err
	}

	offer, parseErr := s.decodeOffer(resp, s.cfg.UseTOON, meta)
	if parseErr == nil {
		return offer, meta, nil
	}

	if !s.cfg.UseTOON || !s.cfg.FallbackToJSON {
		return nil, nil, &ExtractionError{Msg: parseErr.Error(), RawOutput: resp}
	}

	log.Printf("extraction: TOON attempt unusable, retrying with JSON: %v", parseErr)
	meta.FallbackUsed = true
	meta.FormatUsed = "json"
	meta.TokenSavings = nil

	resp, err = s.callModel(ctx, documentText, false)
	if err != nil {
		return nil, nil, err
	}

	offer, jsonErr := s.decodeOffer(resp, false, meta)
	if jsonErr != nil {
		return nil, nil, &ExtractionError{
			Msg:       fmt.Sprintf("both TOON and JSON formats failed: %v; %v", parseErr, jsonErr),
			RawOutput: resp,
		}
	}
	return offer, meta, nil
}

func (s *Service) callModel(ctx context.Context, documentText string, useTOON bool) (string, error) {
	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:    systemPrompt(useTOON),
		Prompt:    "Extract data from this vendor offer:\n\n" + documentText,
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("extraction: model call: %w", err)
	}
	return resp, nil
}

func (s *Service) decodeOffer(resp string, useTOON bool, meta *Metadata) (*ParsedVendorOffer, error) {
	cleaned := llm.StripCodeFences(resp)

	var data map[string]any
	if useTOON {
		decoded, err := toon.Decode(cleaned)
		if err != nil {
			return nil, fmt.Errorf("invalid TOON: %w", err)
		}
		obj, ok := decoded.(*toon.Object)
		if !ok {
			return nil, fmt.Errorf("TOON response is not an object")
		}
		if savings, err := toon.EstimateSavings(obj); err == nil {
			meta.TokenSavings = &savings
		}
		data, _ = toPlain(obj).(map[string]any)
	} else {
		if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	return buildOffer(data)
}
