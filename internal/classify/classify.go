// Package classify suggests a commodity group for a procurement request.
// The primary path asks a model to pick from the fixed catalog; a
// deterministic keyword fallback guarantees a suggestion even when no
// model is reachable.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"procura/internal/catalog"
	"procura/internal/llm"
	"procura/internal/toon"
)

const systemPrompt = `You are an expert procurement specialist who classifies purchase requests into the correct commodity groups.

You will be given:
1. A request title
2. Order line descriptions
3. A catalog of available commodity groups

Your task is to:
1. Analyze the request and order lines
2. Select the MOST appropriate commodity group from the catalog
3. Provide a confidence score (0.0 to 1.0)
4. Explain your reasoning

IMPORTANT RULES:
- ONLY use commodity groups from the provided catalog
- Choose the SINGLE best match
- Consider both the request title AND individual order line descriptions
- Higher confidence (>0.8) means strong match
- Medium confidence (0.5-0.8) means reasonable match
- Low confidence (<0.5) means uncertain, best guess

Output your response in TOON format:
category:029|name:Hardware|confidence:0.85|explanation:Brief reason for selection

The category MUST be the exact 3-digit code from the catalog (e.g., 001, 029, 031).
ONLY output the TOON formatted data, nothing else.`

const (
	maxTokens         = 500
	keywordConfidence = 0.3
	noMatchConfidence = 0.1
)

// SuggestInput describes the request to classify.
type SuggestInput struct {
	Title      string
	Lines      []string
	VendorName string
}

// Suggestion is a commodity-group recommendation. Category always names
// an existing catalog entry.
type Suggestion struct {
	Category     string  `json:"category"`
	Name         string  `json:"name"`
	Confidence   float64 `json:"confidence"`
	Explanation  string  `json:"explanation"`
	FallbackUsed bool    `json:"fallback_used"`
}

// Service performs commodity classification. A nil model client
// disables the primary path entirely.
type Service struct {
	client   llm.Client
	catalog  *catalog.Catalog
	keywords *KeywordTable
}

// NewService creates a classification service.
func NewService(client llm.Client, cat *catalog.Catalog, keywords *KeywordTable) *Service {
	return &Service{client: client, catalog: cat, keywords: keywords}
}

// Suggest returns the best commodity-group match for the input. It
// never fails: any model or parse problem falls back to keyword
// matching, and keyword matching always produces a suggestion.
func (s *Service) Suggest(ctx context.Context, input SuggestInput) *Suggestion {
	if s.client == nil {
		return s.keywordSuggestion(input)
	}

	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		System:    systemPrompt,
		Prompt:    s.buildUserPrompt(input),
		MaxTokens: maxTokens,
	})
	if err != nil {
		log.Printf("classify: model call failed, using keyword fallback: %v", err)
		return s.keywordSuggestion(input)
	}

	suggestion, err := s.parseModelResponse(resp)
	if err != nil {
		log.Printf("classify: unusable model response, using keyword fallback: %v", err)
		return s.keywordSuggestion(input)
	}
	return suggestion
}

func (s *Service) buildUserPrompt(input SuggestInput) string {
	var sb strings.Builder
	sb.WriteString("Classify this procurement request:\n\n")
	sb.WriteString("Request Title: " + input.Title + "\n")
	if input.VendorName != "" {
		sb.WriteString("Vendor: " + input.VendorName + "\n")
	}
	if len(input.Lines) > 0 {
		sb.WriteString("Order Lines:\n")
		for i, line := range input.Lines {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, line)
		}
	}
	sb.WriteString("\nAvailable Commodity Groups:\n")
	sb.WriteString("Category Code : Name\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, e := range s.catalog.Entries() {
		sb.WriteString(e.Category + " : " + e.Name + "\n")
	}
	return sb.String()
}

// parseModelResponse accepts the TOON answer format and, as a courtesy,
// plain JSON. The returned category must exist in the catalog.
func (s *Service) parseModelResponse(resp string) (*Suggestion, error) {
	cleaned := llm.StripCodeFences(resp)

	fields, err := decodeFields(cleaned)
	if err != nil {
		return nil, err
	}

	category := normalizeCategory(fields["category"])
	entry, ok := s.catalog.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("model returned unknown category %q", category)
	}

	name := asString(fields["name"])
	if name == "" {
		name = entry.Name
	}

	return &Suggestion{
		Category:    entry.Category,
		Name:        name,
		Confidence:  clamp01(asFloat(fields["confidence"], 0.5)),
		Explanation: asString(fields["explanation"]),
	}, nil
}

func decodeFields(cleaned string) (map[string]any, error) {
	if v, err := toon.Decode(cleaned); err == nil {
		if obj, ok := v.(*toon.Object); ok {
			fields := make(map[string]any, obj.Len())
			for _, k := range obj.Keys() {
				val, _ := obj.Get(k)
				fields[k] = val
			}
			return fields, nil
		}
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("response is neither TOON nor JSON: %.100s", cleaned)
	}
	return fields, nil
}

// keywordSuggestion deterministically matches the configured keywords
// against the request text. The rule with the most matched keywords
// wins; ties go to the lowest category code.
func (s *Service) keywordSuggestion(input SuggestInput) *Suggestion {
	text := strings.ToLower(input.Title)
	for _, line := range input.Lines {
		text += " " + strings.ToLower(line)
	}

	bestCategory := ""
	bestKeyword := ""
	bestCount := 0
	for _, rule := range s.keywords.Rules {
		count := 0
		matched := ""
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				count++
				if matched == "" {
					matched = kw
				}
			}
		}
		if count == 0 {
			continue
		}
		if count > bestCount || (count == bestCount && rule.Category < bestCategory) {
			bestCount = count
			bestCategory = rule.Category
			bestKeyword = matched
		}
	}

	if bestCount > 0 {
		if entry, ok := s.catalog.Lookup(bestCategory); ok {
			return &Suggestion{
				Category:     entry.Category,
				Name:         entry.Name,
				Confidence:   keywordConfidence,
				Explanation:  fmt.Sprintf("Keyword match: '%s' found in request", bestKeyword),
				FallbackUsed: true,
			}
		}
	}

	first := s.catalog.First()
	return &Suggestion{
		Category:     first.Category,
		Name:         first.Name,
		Confidence:   noMatchConfidence,
		Explanation:  "No strong match found. Please review and select manually.",
		FallbackUsed: true,
	}
}

// normalizeCategory pads numeric category codes to three digits, so 29,
// "29" and "029" all resolve to the same catalog entry.
func normalizeCategory(v any) string {
	switch val := v.(type) {
	case int64:
		return fmt.Sprintf("%03d", val)
	case float64:
		return fmt.Sprintf("%03d", int64(val))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return fmt.Sprintf("%03d", n)
		}
		return strings.TrimSpace(val)
	default:
		return ""
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asFloat(v any, fallback float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
