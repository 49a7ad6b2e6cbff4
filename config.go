package sphinxpoetry

import (
	"iter"
)

// Config is the loaded configuration. The four metadata values are exposed as
// accessors; Get, Len, Keys and All cover the tool.sphinx-pyproject table only.
// A Config is immutable and safe for concurrent reads.
type Config struct {
	path     string
	metadata Metadata
	freeform map[string]any
	keys     []string
	entries  []entry
}

// entry is one namespace key in merge order.
type entry struct {
	key        string
	value      any
	provenance KeyProvenance
}

// Name returns tool.poetry.name with underscores replaced by dashes.
func (c *Config) Name() string { return c.metadata.Name.Value }

// Version returns tool.poetry.version as a string.
func (c *Config) Version() string { return c.metadata.Version.Value }

// Description returns tool.poetry.description.
func (c *Config) Description() string { return c.metadata.Description.Value }

// Author returns the joined display names of authors and maintainers.
func (c *Config) Author() string { return c.metadata.Author }

// Path returns the absolute path of the document.
func (c *Config) Path() string { return c.path }

// Metadata returns the parsed project metadata.
func (c *Config) Metadata() Metadata { return c.metadata }

// Get returns the value of key in the tool.sphinx-pyproject table.
func (c *Config) Get(key string) (any, bool) {
	v, ok := c.freeform[key]
	return v, ok
}

// Len returns the number of keys in the tool.sphinx-pyproject table.
func (c *Config) Len() int {
	return len(c.freeform)
}

// Keys returns the tool.sphinx-pyproject keys in document order.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// All iterates over the tool.sphinx-pyproject table in document order.
func (c *Config) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range c.keys {
			if !yield(key, c.freeform[key]) {
				return
			}
		}
	}
}

// Namespace returns a new mapping holding the metadata followed by the
// freeform settings, as merged into the namespace given to the Loader.
func (c *Config) Namespace() Namespace {
	ns := make(Namespace, len(c.entries))
	for _, e := range c.entries {
		ns[e.key] = e.value
	}
	return ns
}

// Provenance describes where each namespace key came from, in merge order.
func (c *Config) Provenance() []KeyProvenance {
	out := make([]KeyProvenance, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.provenance
	}
	return out
}

var metadataKeys = []struct {
	key     string
	keyPath string
}{
	{"name", poetryKey("name")},
	{"version", poetryKey("version")},
	{"description", poetryKey("description")},
	{"author", poetryKey("authors")},
}

// buildEntries lays out the namespace: metadata first, then freeform keys in
// document order. A freeform key equal to a metadata key replaces it in place.
func (c *Config) buildEntries(sourceName string) []entry {
	meta := c.metadata.Map()
	entries := make([]entry, 0, len(meta)+len(c.keys))
	index := make(map[string]int, len(meta)+len(c.keys))

	for _, mk := range metadataKeys {
		v, ok := meta[mk.key]
		if !ok {
			continue
		}
		index[mk.key] = len(entries)
		entries = append(entries, entry{
			key:   mk.key,
			value: v,
			provenance: KeyProvenance{
				Key:        mk.key,
				KeyPath:    mk.keyPath,
				SourceName: sourceName,
			},
		})
	}

	for _, key := range c.keys {
		e := entry{
			key:   key,
			value: c.freeform[key],
			provenance: KeyProvenance{
				Key:        key,
				KeyPath:    freeformKey(key),
				SourceName: sourceName,
			},
		}
		if i, ok := index[key]; ok {
			e.provenance.Overrides = true
			entries[i] = e
			continue
		}
		index[key] = len(entries)
		entries = append(entries, e)
	}

	return entries
}
