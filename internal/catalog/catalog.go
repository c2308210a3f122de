// Package catalog holds the fixed commodity-group classification
// catalog. The 50 groups are a stable organizational taxonomy; the
// builtin seed is authoritative when the database has not been seeded.
package catalog

// Entry is one commodity group of the catalog.
type Entry struct {
	Category    string
	Name        string
	Description string
}

// Catalog is an immutable, ordered commodity-group catalog.
type Catalog struct {
	entries []Entry
	byCode  map[string]Entry
}

// New builds a catalog from entries, preserving their order.
func New(entries []Entry) *Catalog {
	byCode := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byCode[e.Category] = e
	}
	return &Catalog{entries: entries, byCode: byCode}
}

// Builtin returns the catalog built from the standard 50-group seed.
func Builtin() *Catalog {
	return New(builtinEntries)
}

// Entries returns all entries in catalog order. The slice is shared;
// callers must not modify it.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Lookup returns the entry for a category code.
func (c *Catalog) Lookup(category string) (Entry, bool) {
	e, ok := c.byCode[category]
	return e, ok
}

// First returns the first catalog entry.
func (c *Catalog) First() Entry {
	return c.entries[0]
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
