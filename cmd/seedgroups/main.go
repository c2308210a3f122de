// Command seedgroups writes the commodity-group catalog as a SQL seed
// file. By default it uses the built-in 50-group catalog; an optional
// Excel file (columns: Category, Name, Description) overrides it.
// Usage: go run ./cmd/seedgroups [catalog.xlsx]
// Output: db/seeds/commodity_groups.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"procura/internal/catalog"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := "db/seeds/commodity_groups.sql"

	entries := catalog.Builtin().Entries()
	if len(os.Args) > 1 {
		loaded, err := loadFromExcel(os.Args[1])
		if err != nil {
			return fmt.Errorf("load Excel catalog: %w", err)
		}
		entries = loaded
		log.Printf("loaded %d entries from %s", len(entries), os.Args[1])
	}

	if err := os.MkdirAll("db/seeds", 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	var b strings.Builder
	b.WriteString("-- Commodity group catalog seed data.\n")
	fmt.Fprintf(&b, "-- %d entries.\n", len(entries))
	b.WriteString("BEGIN;\n\n")
	b.WriteString("INSERT INTO commodity_groups (id, category, name, description, created_at) VALUES\n")

	for i, e := range entries {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', '%s', NOW())",
			escapeSQL(e.Category), escapeSQL(e.Name), escapeSQL(e.Description))
	}

	b.WriteString("\nON CONFLICT (category) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description;\n")
	b.WriteString("\nCOMMIT;\n")

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}

	log.Printf("Generated %d entries in %s", len(entries), outPath)
	return nil
}

// loadFromExcel reads catalog entries from the first sheet. Row 1 is
// the header; columns are A=Category, B=Name, C=Description.
func loadFromExcel(path string) ([]catalog.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	var entries []catalog.Entry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		category := strings.TrimSpace(cellVal(row, 0))
		name := strings.TrimSpace(cellVal(row, 1))
		if category == "" || name == "" {
			continue
		}
		for len(category) < 3 {
			category = "0" + category
		}
		entries = append(entries, catalog.Entry{
			Category:    category,
			Name:        name,
			Description: strings.TrimSpace(cellVal(row, 2)),
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", path)
	}
	return entries, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
