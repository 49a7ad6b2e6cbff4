package sphinxpoetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpEffective.
type dumpConfig struct {
	withSources bool   // Include the document key path of each value
	format      string // "text", "json" or "yaml"
	indent      string // Indentation for JSON and YAML output (default: "  ")
}

// WithSources includes source attribution for each key in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the namespace as a JSON object.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "json"
	}
}

// AsYAML outputs the namespace as a YAML mapping.
func AsYAML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = "yaml"
	}
}

// WithIndent sets the indentation for JSON and YAML output.
// Default is two spaces ("  "). An empty indent gives compact JSON.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// DumpEffective writes the effective namespace: metadata first, then the
// freeform settings in document order. Keys appear in the same order in every
// format.
func DumpEffective(w io.Writer, cfg *Config, opts ...DumpOption) error {
	if cfg == nil {
		return ErrNilConfig
	}

	config := dumpConfig{
		format: "text",
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	switch config.format {
	case "json":
		return dumpAsJSON(w, cfg.entries, config)
	case "yaml":
		return dumpAsYAML(w, cfg.entries, config)
	default:
		return dumpAsText(w, cfg.entries, config)
	}
}

// dumpAsText outputs one "key: value" line per namespace key.
func dumpAsText(w io.Writer, entries []entry, config dumpConfig) error {
	for _, e := range entries {
		line := fmt.Sprintf("%s: %s", e.key, formatValue(e.value))
		if config.withSources {
			line += fmt.Sprintf(" (source: %s)", e.provenance.KeyPath)
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON writes an object whose members follow namespace order.
// encoding/json sorts map keys, so the top level is assembled by hand.
func dumpAsJSON(w io.Writer, entries []entry, config dumpConfig) error {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		if config.indent != "" {
			b.WriteString("\n" + config.indent)
		}

		key, err := json.Marshal(e.key)
		if err != nil {
			return fmt.Errorf("json marshal error: %w", err)
		}

		var value any = e.value
		if config.withSources {
			value = struct {
				Value  any    `json:"value"`
				Source string `json:"source"`
			}{e.value, e.provenance.KeyPath}
		}

		var data []byte
		if config.indent != "" {
			data, err = json.MarshalIndent(value, config.indent, config.indent)
		} else {
			data, err = json.Marshal(value)
		}
		if err != nil {
			return fmt.Errorf("json marshal error: %w", err)
		}

		b.Write(key)
		b.WriteByte(':')
		if config.indent != "" {
			b.WriteByte(' ')
		}
		b.Write(data)
	}
	if config.indent != "" && len(entries) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString("}\n")

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// dumpAsYAML builds a mapping node so that key order survives encoding.
func dumpAsYAML(w io.Writer, entries []entry, config dumpConfig) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key}
		if config.withSources {
			keyNode.LineComment = "source: " + e.provenance.KeyPath
		}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(yamlValue(e.value)); err != nil {
			return fmt.Errorf("yaml marshal error: %w", err)
		}
		root.Content = append(root.Content, keyNode, valueNode)
	}

	enc := yaml.NewEncoder(w)
	indent := len(config.indent)
	if indent < 2 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return enc.Close()
}

// yamlValue replaces json.Number with int64 or float64 so numbers from JSON
// documents are not written as quoted strings.
func yamlValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}

// formatValue formats a value for text output. Strings are quoted.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + " = " + formatValue(val[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}
