package sphinxpoetry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Azhovan/sphinxpoetry/internal/normalize"
)

// Loader reads a document, validates the tool.poetry table and captures the
// tool.sphinx-pyproject table.
type Loader struct {
	source    Source
	namespace Namespace
	logger    zerolog.Logger
}

// NewLoader creates a Loader reading DefaultFile with logging disabled.
func NewLoader() *Loader {
	return &Loader{
		source: NewFileSource(DefaultFile, FileOptions{}),
		logger: zerolog.Nop(),
	}
}

// WithFile reads the document from path (resolved to an absolute path on load).
func (l *Loader) WithFile(path string) *Loader {
	l.source = NewFileSource(path, FileOptions{})
	return l
}

// WithSource replaces the document source.
func (l *Loader) WithSource(src Source) *Loader {
	l.source = src
	return l
}

// WithNamespace sets a mapping that Load fills with the metadata and then the
// freeform settings. Freeform keys win on collision. A nil namespace is left
// untouched.
func (l *Loader) WithNamespace(ns Namespace) *Loader {
	l.namespace = ns
	return l
}

// WithLogger sets the logger used for debug events.
func (l *Loader) WithLogger(logger zerolog.Logger) *Loader {
	l.logger = logger
	return l
}

// Load reads the document and builds the Config. Any failure is fatal: no
// partial Config is returned and the namespace is only written on success.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if l.source == nil {
		return nil, errors.New("sphinxpoetry: no source configured")
	}

	doc, err := l.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load source %s: %w", l.source.Name(), err)
	}

	logger := l.logger.With().Str("source", l.source.Name()).Str("path", doc.Path).Logger()
	logger.Debug().Msg("document loaded")

	poetry, err := poetrySection(doc)
	if err != nil {
		return nil, err
	}

	meta, err := ParseMetadata(poetry)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Source = doc.Path
		}
		return nil, err
	}

	if err := requireDeclared(meta, doc.Path); err != nil {
		return nil, err
	}

	freeform, err := freeformSection(doc)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		path:     doc.Path,
		metadata: meta,
		freeform: freeform,
		keys:     doc.Keys(freeform, freeformPath...),
	}
	cfg.entries = cfg.buildEntries(l.source.Name())

	logger.Debug().
		Str("name", cfg.Name()).
		Str("version", cfg.Version()).
		Int("settings", cfg.Len()).
		Msg("configuration parsed")

	if l.namespace != nil {
		for _, e := range cfg.entries {
			if e.provenance.Overrides {
				logger.Debug().Str("key", e.key).Msg("setting overrides project metadata")
			}
			l.namespace[e.key] = e.value
		}
		logger.Debug().Int("keys", len(cfg.entries)).Msg("namespace updated")
	}

	return cfg, nil
}

// Load reads the document at path (DefaultFile if empty) and, when ns is not
// nil, merges the metadata and settings into it.
func Load(ctx context.Context, path string, ns Namespace) (*Config, error) {
	return NewLoader().WithFile(path).WithNamespace(ns).Load(ctx)
}

func poetrySection(doc *Document) (map[string]any, error) {
	raw, ok := doc.Lookup(poetryPath...)
	if !ok {
		return nil, missingSection(doc.Path)
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{
			Source:      doc.Path,
			FieldErrors: []FieldError{typeError(PoetryTable, "table", raw)},
		}
	}
	if len(table) == 0 {
		return nil, missingSection(doc.Path)
	}
	return table, nil
}

func missingSection(path string) error {
	return &ValidationError{
		Source: path,
		FieldErrors: []FieldError{{
			FieldPath: PoetryTable,
			Code:      ErrCodeMissingSection,
			Message:   fmt.Sprintf("no '%s' table found in %s", PoetryTable, filepath.ToSlash(path)),
		}},
	}
}

// requireDeclared reports every required field the parser left unset.
func requireDeclared(meta Metadata, path string) error {
	fields := []struct {
		key string
		set bool
	}{
		{"name", meta.Name.Set},
		{"version", meta.Version.Set},
		{"description", meta.Description.Set},
	}

	var fieldErrors []FieldError
	for _, f := range fields {
		if f.set {
			continue
		}
		fieldErrors = append(fieldErrors, FieldError{
			FieldPath: poetryKey(f.key),
			Code:      ErrCodeRequired,
			Message: fmt.Sprintf(
				"either '%s' was not declared in the '%s' table or it was marked as dynamic, which is unsupported",
				f.key, PoetryTable),
		})
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Source: path, FieldErrors: fieldErrors}
	}
	return nil
}

func freeformSection(doc *Document) (map[string]any, error) {
	raw, ok := doc.Lookup(freeformPath...)
	if !ok {
		return make(map[string]any), nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{
			Source:      doc.Path,
			FieldErrors: []FieldError{typeError(FreeformTable, "table", raw)},
		}
	}
	return table, nil
}

func freeformKey(key string) string {
	return normalize.ApplyPrefix(FreeformTable, normalize.KeyPath(key))
}
