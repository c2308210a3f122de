package classify

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var builtinKeywords []byte

// KeywordRule maps a set of keywords to one commodity-group category.
type KeywordRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// KeywordTable is the configured keyword fallback mapping.
type KeywordTable struct {
	Rules []KeywordRule `yaml:"rules"`
}

// LoadKeywordTable parses the embedded keyword table.
func LoadKeywordTable() (*KeywordTable, error) {
	return parseKeywordTable(builtinKeywords)
}

// LoadKeywordTableFromFile parses a keyword table from a YAML file,
// allowing deployments to override the embedded defaults.
func LoadKeywordTableFromFile(path string) (*KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword table %s: %w", path, err)
	}
	return parseKeywordTable(data)
}

func parseKeywordTable(data []byte) (*KeywordTable, error) {
	var table KeywordTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing keyword table: %w", err)
	}
	if len(table.Rules) == 0 {
		return nil, fmt.Errorf("keyword table has no rules")
	}
	return &table, nil
}
