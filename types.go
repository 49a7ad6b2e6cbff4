package sphinxpoetry

import (
	"context"
	"slices"

	"github.com/Azhovan/sphinxpoetry/internal/normalize"
)

// DefaultFile is the document read when no path is given.
const DefaultFile = "pyproject.toml"

// Source provides a decoded configuration document.
type Source interface {
	// Load reads and decodes the document. Missing documents are an error.
	Load(ctx context.Context) (*Document, error)

	// Name returns a human-readable identifier (e.g., "file:pyproject.toml").
	Name() string
}

// Document is a decoded configuration file.
type Document struct {
	// Path is the absolute location the document was read from.
	Path string

	// Tree holds the decoded values. Tables are map[string]any, arrays []any.
	Tree map[string]any

	// KeyOrder maps a table key path (see normalize.KeyPath, "" for the root)
	// to its child keys in document order. Formats without ordering leave it nil.
	KeyOrder map[string][]string
}

// Lookup walks the tree along parts and returns the value found there.
func (d *Document) Lookup(parts ...string) (any, bool) {
	if d == nil {
		return nil, false
	}
	var current any = d.Tree
	for _, part := range parts {
		table, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = table[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Keys returns the keys of table in document order. Keys without recorded
// order follow in lexical order.
func (d *Document) Keys(table map[string]any, parts ...string) []string {
	keys := make([]string, 0, len(table))
	seen := make(map[string]bool, len(table))

	if d != nil {
		for _, key := range d.KeyOrder[normalize.KeyPath(parts...)] {
			if _, ok := table[key]; ok && !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	var rest []string
	for key := range table {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)

	return append(keys, rest...)
}

// Namespace is a caller-owned mapping that receives the parsed metadata and
// the freeform settings.
type Namespace map[string]any

// Optional distinguishes "not declared" from "declared as zero value".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrDefault returns the wrapped value or the provided default.
func (o Optional[T]) OrDefault(defaultVal T) T {
	if o.Set {
		return o.Value
	}
	return defaultVal
}

func some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}
