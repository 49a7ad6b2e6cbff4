package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Decoded is a parsed document: its value tree and the order keys appeared in.
type Decoded struct {
	Tree     map[string]any
	KeyOrder map[string][]string
}

// Decode parses data in the given format ("toml", "yaml", "yml" or "json").
// An empty document decodes to an empty tree.
func Decode(data []byte, format string) (*Decoded, error) {
	switch format {
	case FormatTOML:
		return decodeTOML(data)
	case FormatYAML, "yml":
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: toml, yaml, json)", format)
	}
}

// InferFormat derives the format from the file extension.
// Anything that is not YAML or JSON is read as TOML.
func InferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

func decodeTOML(data []byte) (*Decoded, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	// Order is best effort: the tree above is authoritative.
	order, err := tomlKeyOrder(data)
	if err != nil {
		order = nil
	}

	return &Decoded{Tree: raw, KeyOrder: order}, nil
}

func decodeYAML(data []byte) (*Decoded, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	raw := make(map[string]any)
	if len(root.Content) > 0 {
		if err := root.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	order := newKeyOrder()
	order.walkYAML(nil, &root)

	return &Decoded{Tree: raw, KeyOrder: order.keys}, nil
}

func decodeJSON(data []byte) (*Decoded, error) {
	raw := make(map[string]any)
	if len(bytes.TrimSpace(data)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	}

	order := newKeyOrder()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := order.walkJSON(nil, true, dec); err != nil && !errors.Is(err, io.EOF) {
		order.keys = nil
	}

	return &Decoded{Tree: raw, KeyOrder: order.keys}, nil
}
