package normalize

import (
	"strconv"
	"strings"
)

// KeyPath renders table key parts as a dot-separated path.
// Parts that contain dots, quotes, whitespace or are empty are quoted so that
// the result stays unambiguous.
// Examples:
//   - KeyPath("tool", "poetry", "name") → "tool.poetry.name"
//   - KeyPath("tool", "sphinx-pyproject") → "tool.sphinx-pyproject"
//   - KeyPath("tool", "a.b") → `tool."a.b"`
//   - KeyPath() → ""
func KeyPath(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		if needsQuoting(part) {
			b.WriteString(strconv.Quote(part))
			continue
		}
		b.WriteString(part)
	}
	return b.String()
}

// Index appends a list index to a key path.
// Examples:
//   - Index("tool.poetry.authors", 2) → "tool.poetry.authors[2]"
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// ApplyPrefix combines a prefix with a key to create a nested key path.
// If prefix is empty, returns the key unchanged.
// Examples:
//   - ApplyPrefix("tool.poetry", "name") → "tool.poetry.name"
//   - ApplyPrefix("", "name") → "name"
func ApplyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

// ProjectName replaces underscores with dashes.
// No other normalization (case folding, PEP 503 runs) is applied, so the
// function is idempotent.
func ProjectName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func needsQuoting(part string) bool {
	if part == "" {
		return true
	}
	return strings.ContainsAny(part, ". \t\"'")
}
