package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/parser"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a C++ file and dump the node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.NewParser()
			root, err := p.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to parse file: %w", err)
			}

			dumpNode(cmd.OutOrStdout(), root, 0)
			return nil
		},
	}

	return cmd
}

func dumpNode(w io.Writer, n *ast.Node, depth int) {
	if n == nil {
		return
	}

	line := strings.Repeat("  ", depth) + string(n.Kind)
	if n.Spelling != "" {
		line += fmt.Sprintf(" %q", n.Spelling)
	}
	if n.Type != nil {
		line += " : " + types.RustTypeStr(n.Type)
	}
	if n.Loc.Line > 0 {
		line += fmt.Sprintf(" [%d:%d]", n.Loc.Line, n.Loc.Col)
	}
	fmt.Fprintln(w, line)

	for _, c := range n.Children {
		dumpNode(w, c, depth+1)
	}
}
