// sphinxpoetry prints or validates the documentation settings a conf.py would
// receive from a Poetry pyproject.toml.
//
// Usage:
//
//	sphinxpoetry show -f pyproject.toml --format json
//	sphinxpoetry validate -f pyproject.toml
//
// Exit codes:
//   - 0: success
//   - 1: the document is missing or invalid, or the command line is wrong
package main

import (
	"context"
	"fmt"
	"os"
)

var Version = "dev"

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
