package sphinxpoetry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Azhovan/sphinxpoetry/internal/document"
)

// FileOptions configures file source behavior.
type FileOptions struct {
	// Format: "toml", "yaml", or "json". Inferred from the extension if empty;
	// unknown extensions are read as TOML.
	Format string
}

type fileSource struct {
	path string
	opts FileOptions
}

// NewFileSource creates a source reading the document at path.
// An empty path means DefaultFile in the working directory.
func NewFileSource(path string, opts FileOptions) Source {
	if path == "" {
		path = DefaultFile
	}
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Load resolves the path, reads the file and decodes it.
func (f *fileSource) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(f.path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", f.path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", abs, err)
		}
		return nil, fmt.Errorf("read config file %s: %w", abs, err)
	}

	format := f.opts.Format
	if format == "" {
		format = document.InferFormat(abs)
	}

	decoded, err := document.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", abs, err)
	}

	return &Document{
		Path:     abs,
		Tree:     decoded.Tree,
		KeyOrder: decoded.KeyOrder,
	}, nil
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

type treeSource struct {
	name string
	tree map[string]any
}

// NewTreeSource serves an already decoded tree. Key order is lexical.
func NewTreeSource(name string, tree map[string]any) Source {
	return &treeSource{name: name, tree: tree}
}

func (t *treeSource) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree := t.tree
	if tree == nil {
		tree = make(map[string]any)
	}
	return &Document{Path: t.name, Tree: tree}, nil
}

func (t *treeSource) Name() string {
	return "tree:" + t.name
}
