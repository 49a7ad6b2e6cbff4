package sphinxpoetry

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Azhovan/sphinxpoetry/internal/normalize"
)

// Table paths read from the document.
var (
	poetryPath   = []string{"tool", "poetry"}
	freeformPath = []string{"tool", "sphinx-pyproject"}
)

// PoetryTable and FreeformTable are the key paths of the two tables.
var (
	PoetryTable   = normalize.KeyPath(poetryPath...)
	FreeformTable = normalize.KeyPath(freeformPath...)
)

// Metadata holds the project metadata parsed from the tool.poetry table.
// Name, Version and Description are unset when the key is not declared.
type Metadata struct {
	Name        Optional[string]
	Version     Optional[string]
	Description Optional[string]
	Author      string
}

// Map returns the declared fields keyed by their namespace names
// ("name", "version", "description", "author").
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, 4)
	if v, ok := m.Name.Get(); ok {
		out["name"] = v
	}
	if v, ok := m.Version.Get(); ok {
		out["version"] = v
	}
	if v, ok := m.Description.Get(); ok {
		out["description"] = v
	}
	out["author"] = m.Author
	return out
}

// ParseMetadata validates the tool.poetry table and extracts the project
// metadata. The table is not modified.
//
// authors is mandatory and must be an array of strings; maintainers is
// optional and appended to it. Each entry contributes its display name (the
// text before "<contact>", trimmed). Display names containing commas are
// rejected, empty ones are skipped and repeated ones are kept once. The names
// are joined as "a, b and c".
//
// Returns *ValidationError listing every problem found.
func ParseMetadata(table map[string]any) (Metadata, error) {
	var meta Metadata
	var fieldErrors []FieldError

	author, errs := parseAuthor(table)
	meta.Author = author
	fieldErrors = append(fieldErrors, errs...)

	if raw, ok := table["name"]; ok {
		name, ok := raw.(string)
		if ok {
			meta.Name = some(normalize.ProjectName(name))
		} else {
			fieldErrors = append(fieldErrors, typeError(poetryKey("name"), "string", raw))
		}
	}

	if raw, ok := table["version"]; ok {
		if version, ok := versionString(raw); ok {
			meta.Version = some(version)
		} else {
			fieldErrors = append(fieldErrors, typeError(poetryKey("version"), "string or integer", raw))
		}
	}

	if raw, ok := table["description"]; ok {
		description, ok := raw.(string)
		if ok {
			meta.Description = some(description)
		} else {
			fieldErrors = append(fieldErrors, typeError(poetryKey("description"), "string", raw))
		}
	}

	if len(fieldErrors) > 0 {
		return Metadata{}, &ValidationError{FieldErrors: fieldErrors}
	}
	return meta, nil
}

// versionString accepts strings and integers as decoded by the TOML, YAML and
// JSON decoders.
func versionString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	default:
		return "", false
	}
}

func parseAuthor(table map[string]any) (string, []FieldError) {
	rawAuthors, ok := table["authors"]
	if !ok {
		return "", []FieldError{{
			FieldPath: poetryKey("authors"),
			Code:      ErrCodeRequired,
			Message:   "'authors' was not declared in the 'tool.poetry' table",
		}}
	}

	var fieldErrors []FieldError
	var names []string
	seen := make(map[string]bool)

	collect := func(key string, raw any) {
		path := poetryKey(key)
		entries, ok := asList(raw)
		if !ok {
			fieldErrors = append(fieldErrors, typeError(path, "array of strings", raw))
			return
		}
		for i, entry := range entries {
			entryPath := normalize.Index(path, i)
			s, ok := entry.(string)
			if !ok {
				fieldErrors = append(fieldErrors, typeError(entryPath, "string", entry))
				continue
			}
			name := normalize.DisplayName(s)
			if strings.Contains(name, ",") {
				fieldErrors = append(fieldErrors, FieldError{
					FieldPath: entryPath + ".name",
					Code:      ErrCodeInvalidName,
					Message:   "name cannot contain commas",
				})
				continue
			}
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	collect("authors", rawAuthors)
	if rawMaintainers, ok := table["maintainers"]; ok {
		collect("maintainers", rawMaintainers)
	}

	if len(fieldErrors) > 0 {
		return "", fieldErrors
	}
	if len(names) == 0 {
		return "", []FieldError{{
			FieldPath: poetryKey("authors"),
			Code:      ErrCodeEmpty,
			Message:   "'authors' and 'maintainers' yield no names",
		}}
	}
	return normalize.WordJoin(names), nil
}

func asList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func poetryKey(key string) string {
	return normalize.ApplyPrefix(PoetryTable, key)
}
