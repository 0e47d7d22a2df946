package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cxx2rs/cxx2rs/internal/config"
	"github.com/cxx2rs/cxx2rs/internal/source"
	"github.com/cxx2rs/cxx2rs/internal/transpiler"
)

func transpileCmd() *cobra.Command {
	var (
		outputDir string
		stdout    bool
	)

	cmd := &cobra.Command{
		Use:   "transpile [path]",
		Short: "Transpile C++ source to Rust",
		Long: `Converts C++ translation units to Rust source files.

The path may be a single file or a directory. For a directory, the
.cxx2rs.yaml project config (if present) controls which files are
included and where output goes.

Example:
  cxx2rs transpile src/main.cpp -o ./rust_out
  cxx2rs transpile ./src`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranspile(cmd.Context(), args[0], outputDir, stdout, transpiler.Options{})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for generated Rust files")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print generated Rust to stdout instead of writing files")

	return cmd
}

func stubsCmd() *cobra.Command {
	var (
		outputDir string
		stdout    bool
	)

	cmd := &cobra.Command{
		Use:   "stubs [path]",
		Short: "Emit Rust stubs for C++ declarations",
		Long: `Emits Rust signatures with failing placeholder bodies for every
function in the input, useful for incremental porting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranspile(cmd.Context(), args[0], outputDir, stdout, transpiler.Options{Stubs: true})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for generated Rust files")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print generated Rust to stdout instead of writing files")

	return cmd
}

func runTranspile(ctx context.Context, path, outputDir string, stdout bool, opts transpiler.Options) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tr := transpiler.New(opts)

	if !info.IsDir() {
		out, err := tr.TranspileFile(ctx, path)
		if err != nil {
			return err
		}
		if stdout || outputDir == "" {
			fmt.Println(out)
			return nil
		}
		return writeOutput(outputDir, path, out)
	}

	// Directory mode: project config drives file selection.
	proj, err := config.LoadProjectConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load project config: %w", err)
	}
	proj.Merge(&config.ProjectConfig{OutputDir: outputDir, Stubs: opts.Stubs})

	files, err := source.ListCppFiles(path, proj.Include, proj.Exclude)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", path, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no C++ sources found under %s", path)
	}

	dirTr := transpiler.New(transpiler.Options{Stubs: proj.Stubs})
	written := 0
	for _, rel := range files {
		out, err := dirTr.TranspileFile(ctx, filepath.Join(path, rel))
		if err != nil {
			log.Error().Err(err).Str("file", rel).Msg("skipping file")
			continue
		}
		if stdout {
			fmt.Printf("// %s\n%s\n", rel, out)
			written++
			continue
		}
		if err := writeOutput(proj.OutputDir, rel, out); err != nil {
			return err
		}
		written++
	}

	fmt.Printf("Transpiled %d of %d file(s)\n", written, len(files))
	return nil
}

func writeOutput(outputDir, srcPath, rust string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	outPath := transpiler.OutputPath(outputDir, srcPath)
	if err := os.WriteFile(outPath, []byte(rust), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("Written: %s\n", outPath)
	return nil
}
