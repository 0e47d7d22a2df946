// Package transpiler wires the pipeline together: parse C++ source, build
// the name-resolution tables, and drive the code generator. The stages it
// calls are pure; logging and file I/O live here and above, never below.
package transpiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cxx2rs/cxx2rs/internal/codegen"
	"github.com/cxx2rs/cxx2rs/internal/parser"
	"github.com/cxx2rs/cxx2rs/internal/resolve"
)

// Options control one transpilation run.
type Options struct {
	// Stubs emits signatures with failing placeholder bodies instead of
	// translated bodies.
	Stubs bool
}

// Transpiler converts C++ translation units to Rust source text.
type Transpiler struct {
	parser *parser.Parser
	opts   Options
}

// New creates a transpiler.
func New(opts Options) *Transpiler {
	return &Transpiler{parser: parser.NewParser(), opts: opts}
}

// TranspileSource converts one in-memory translation unit.
func (t *Transpiler) TranspileSource(ctx context.Context, name string, source []byte) (string, error) {
	root, err := t.parser.ParseSource(ctx, name, source)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", name, err)
	}

	tabs := collect(root)
	opts := codegen.Options{
		Resolver:  resolve.NewResolver(tabs.funcs, tabs.structs, tabs.directives, tabs.usingDecls),
		Templates: tabs.templates,
	}

	log.Debug().
		Str("file", name).
		Int("functions", len(tabs.funcs)).
		Int("structs", len(tabs.structs)).
		Int("templates", len(tabs.templates)).
		Bool("stubs", t.opts.Stubs).
		Msg("lowering translation unit")

	if t.opts.Stubs {
		return codegen.GenerateStubs(root, opts), nil
	}
	return codegen.Generate(root, opts), nil
}

// TranspileFile converts one file and returns the Rust text.
func (t *Transpiler) TranspileFile(ctx context.Context, path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return t.TranspileSource(ctx, path, source)
}

// OutputPath maps a C++ source path to its Rust counterpart in outDir.
func OutputPath(outDir, srcPath string) string {
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	return filepath.Join(outDir, strings.TrimSuffix(base, ext)+".rs")
}

// IsCppSource reports whether path looks like a C++ translation unit.
func IsCppSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cpp", ".cc", ".cxx", ".c++":
		return true
	}
	return false
}
