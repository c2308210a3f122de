package toon

import "encoding/json"

// Savings compares the JSON and TOON encodings of the same value. Token
// estimates use the common four-characters-per-token heuristic; the
// numbers are informational, not billing-grade.
type Savings struct {
	JSONChars      int     `json:"json_chars"`
	TOONChars      int     `json:"toon_chars"`
	SavingsPercent float64 `json:"savings_percent"`
	JSONTokensEst  int     `json:"json_tokens_est"`
	TOONTokensEst  int     `json:"toon_tokens_est"`
}

// EstimateSavings encodes v both ways and reports the size difference.
func EstimateSavings(v any) (Savings, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return Savings{}, err
	}
	toonStr, err := Encode(v)
	if err != nil {
		return Savings{}, err
	}

	s := Savings{
		JSONChars:     len(jsonBytes),
		TOONChars:     len(toonStr),
		JSONTokensEst: (len(jsonBytes) + 3) / 4,
		TOONTokensEst: (len(toonStr) + 3) / 4,
	}
	if s.JSONChars > 0 {
		s.SavingsPercent = float64(s.JSONChars-s.TOONChars) / float64(s.JSONChars) * 100
	}
	return s, nil
}
