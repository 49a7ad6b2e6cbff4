// Package sphinxpoetry reads documentation settings and project metadata from a
// pyproject.toml managed by Poetry.
//
// Quick Start:
//
//	ns := sphinxpoetry.Namespace{}
//	cfg, err := sphinxpoetry.Load(context.Background(), "../pyproject.toml", ns)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	project, release := cfg.Name(), cfg.Version()
//
// The [tool.poetry] table supplies name, version, description and the joined
// authors/maintainers (as "author"). The [tool.sphinx-pyproject] table is
// passed through untouched; Get, Len, Keys and All read it in document order.
// When a Namespace is given, both are merged into it, metadata first.
//
// See example_test.go for detailed usage.
package sphinxpoetry
