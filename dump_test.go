package sphinxpoetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const dumpTOML = `
[tool.poetry]
name = "my_pkg"
version = "1.0"
description = "demo"
authors = ["Jane <jane@domain>", "John"]

[tool.sphinx-pyproject]
html_theme = "furo"
extensions = ["sphinx.ext.autodoc", "myst_parser"]
numfig = true
html_context = { display_github = true, github_user = "jane" }
`

func loadForDump(t *testing.T) *Config {
	t.Helper()
	path := writeFile(t, "pyproject.toml", dumpTOML)
	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	return cfg
}

func TestDumpEffective_TextFormat(t *testing.T) {
	cfg := loadForDump(t)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg))

	want := strings.Join([]string{
		`name: "my-pkg"`,
		`version: "1.0"`,
		`description: "demo"`,
		`author: "Jane and John"`,
		`html_theme: "furo"`,
		`extensions: ["sphinx.ext.autodoc", "myst_parser"]`,
		`numfig: true`,
		`html_context: {display_github = true, github_user = "jane"}`,
	}, "\n") + "\n"

	assert.Equal(t, want, buf.String())
}

func TestDumpEffective_TextWithSources(t *testing.T) {
	cfg := loadForDump(t)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg, WithSources()))

	output := buf.String()
	assert.Contains(t, output, `name: "my-pkg" (source: tool.poetry.name)`)
	assert.Contains(t, output, `author: "Jane and John" (source: tool.poetry.authors)`)
	assert.Contains(t, output, `html_theme: "furo" (source: tool.sphinx-pyproject.html_theme)`)
}

func TestDumpEffective_JSONFormat(t *testing.T) {
	cfg := loadForDump(t)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg, AsJSON()))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result), "output: %s", buf.String())

	assert.Equal(t, "my-pkg", result["name"])
	assert.Equal(t, "Jane and John", result["author"])
	assert.Equal(t, true, result["numfig"])
	assert.Equal(t, []any{"sphinx.ext.autodoc", "myst_parser"}, result["extensions"])

	output := buf.String()
	assert.Less(t, strings.Index(output, `"author"`), strings.Index(output, `"html_theme"`),
		"metadata precedes settings")
	assert.Less(t, strings.Index(output, `"html_theme"`), strings.Index(output, `"extensions"`),
		"settings keep document order")
}

func TestDumpEffective_JSONCompactWithSources(t *testing.T) {
	cfg := loadForDump(t)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg, AsJSON(), WithIndent(""), WithSources()))

	output := strings.TrimSpace(buf.String())
	assert.NotContains(t, output, "\n")

	var result map[string]struct {
		Value  any    `json:"value"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "demo", result["description"].Value)
	assert.Equal(t, "tool.poetry.description", result["description"].Source)
	assert.Equal(t, "tool.sphinx-pyproject.numfig", result["numfig"].Source)
}

func TestDumpEffective_YAMLFormat(t *testing.T) {
	cfg := loadForDump(t)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg, AsYAML()))

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result), "output: %s", buf.String())

	assert.Equal(t, "my-pkg", result["name"])
	assert.Equal(t, "1.0", result["version"], "string versions stay strings")
	assert.Equal(t, map[string]any{"display_github": true, "github_user": "jane"}, result["html_context"])

	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "name:"), "first key is name, got %q", lines[0])
}

func TestDumpEffective_YAMLWithSources(t *testing.T) {
	cfg := loadForDump(t)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg, AsYAML(), WithSources()))
	assert.Contains(t, buf.String(), "source: tool.sphinx-pyproject.html_theme")
}

func TestDumpEffective_YAMLNumbersFromJSON(t *testing.T) {
	path := writeFile(t, "pyproject.json", `{
  "tool": {
    "poetry": {"name": "pkg", "version": 3, "description": "demo", "authors": ["Jane"]},
    "sphinx-pyproject": {"z": 1.5, "b": [1, {"q": 2}], "big": 1e400}
  }
}`)
	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DumpEffective(&buf, cfg, AsYAML()))
	out := buf.String()

	assert.Contains(t, out, "version: \"3\"\n", "metadata versions stay strings")
	assert.Contains(t, out, "z: 1.5\n")
	assert.NotContains(t, out, `"1"`)
	assert.NotContains(t, out, `"2"`)

	var result map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result), "output: %s", out)
	assert.Equal(t, 1.5, result["z"])
	assert.Equal(t, []any{1, map[string]any{"q": 2}}, result["b"])
	assert.Equal(t, "1e400", result["big"], "numbers outside float64 range are kept as text")
}

func TestDumpEffective_NilConfig(t *testing.T) {
	var buf bytes.Buffer
	err := DumpEffective(&buf, nil)
	assert.True(t, errors.Is(err, ErrNilConfig))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDumpEffective_WriteError(t *testing.T) {
	cfg := loadForDump(t)

	for name, opts := range map[string][]DumpOption{
		"text": nil,
		"json": {AsJSON()},
	} {
		t.Run(name, func(t *testing.T) {
			err := DumpEffective(failingWriter{}, cfg, opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk full")
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "<nil>"},
		{name: "string", value: "a\"b", want: `"a\"b"`},
		{name: "integer", value: int64(3), want: "3"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "empty array", value: []any{}, want: "[]"},
		{name: "nested", value: []any{map[string]any{"b": 1, "a": "x"}}, want: `[{a = "x", b = 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}
