package normalize

import (
	"testing"
)

func TestKeyPath(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected string
	}{
		{
			name:     "nested table",
			input:    []string{"tool", "poetry", "name"},
			expected: "tool.poetry.name",
		},
		{
			name:     "dash is bare",
			input:    []string{"tool", "sphinx-pyproject"},
			expected: "tool.sphinx-pyproject",
		},
		{
			name:     "dotted part is quoted",
			input:    []string{"tool", "a.b"},
			expected: `tool."a.b"`,
		},
		{
			name:     "space is quoted",
			input:    []string{"my key"},
			expected: `"my key"`,
		},
		{
			name:     "empty part is quoted",
			input:    []string{"tool", ""},
			expected: `tool.""`,
		},
		{
			name:     "no parts",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := KeyPath(tt.input...)
			if result != tt.expected {
				t.Errorf("KeyPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	if got := Index("tool.poetry.authors", 2); got != "tool.poetry.authors[2]" {
		t.Errorf("Index() = %q, want %q", got, "tool.poetry.authors[2]")
	}
}

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{name: "with prefix", prefix: "tool.poetry", key: "name", expected: "tool.poetry.name"},
		{name: "empty prefix", prefix: "", key: "name", expected: "name"},
		{name: "empty key", prefix: "tool", key: "", expected: "tool"},
		{name: "both empty", prefix: "", key: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPrefix(tt.prefix, tt.key)
			if result != tt.expected {
				t.Errorf("ApplyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, result, tt.expected)
			}
		})
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "test_name", expected: "test-name"},
		{input: "sphinx_pyproject_poetry", expected: "sphinx-pyproject-poetry"},
		{input: "Mixed_Case", expected: "Mixed-Case"},
		{input: "already-dashed", expected: "already-dashed"},
		{input: "__", expected: "--"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ProjectName(tt.input)
			if result != tt.expected {
				t.Errorf("ProjectName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if again := ProjectName(result); again != result {
				t.Errorf("ProjectName is not idempotent: %q -> %q", result, again)
			}
		})
	}
}
