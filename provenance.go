package sphinxpoetry

// KeyProvenance describes where a namespace key's value came from.
type KeyProvenance struct {
	Key        string // Namespace key (e.g., "html_theme")
	KeyPath    string // Document key path (e.g., "tool.sphinx-pyproject.html_theme")
	SourceName string // Source identifier (e.g., "file:pyproject.toml")
	Overrides  bool   // Whether a freeform setting replaced a metadata value
}
