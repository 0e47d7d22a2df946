package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cxx2rs/cxx2rs/internal/config"
	"github.com/cxx2rs/cxx2rs/internal/source"
	"github.com/cxx2rs/cxx2rs/internal/transpiler"
)

func repoCmd() *cobra.Command {
	var (
		outputDir string
		workDir   string
		branch    string
		stubs     bool
	)

	cmd := &cobra.Command{
		Use:   "repo [url]",
		Short: "Clone a GitHub repository and transpile its C++ sources",
		Long: `Clones a repository, scans it for C++ translation units, and
transpiles each one into the output directory.

Example:
  cxx2rs repo https://github.com/fmtlib/fmt -o ./rust_out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := source.ParseRepoURL(args[0])
			if err != nil {
				return err
			}
			if branch != "" {
				info.Branch = branch
			}

			svc := source.NewRepoService(workDir, os.Getenv("GITHUB_TOKEN"))
			result, err := svc.Clone(cmd.Context(), info)
			if err != nil {
				return fmt.Errorf("failed to clone repository: %w", err)
			}

			fmt.Printf("Cloned %s/%s @ %s\n", info.Owner, info.Name, result.CommitSHA[:8])
			return runTranspile(cmd.Context(), result.Path, outputDir, false,
				transpiler.Options{Stubs: stubs})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "./rust_out", "Output directory for generated Rust files")
	cmd.Flags().StringVarP(&workDir, "workdir", "w", "./.cxx2rs-repos", "Directory for cloned repositories")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to clone (defaults to main)")
	cmd.Flags().BoolVar(&stubs, "stubs", false, "Emit stubs instead of translated bodies")

	return cmd
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default .cxx2rs.yaml project config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return writeDefaultConfig(dir)
		},
	}

	return cmd
}

func writeDefaultConfig(dir string) error {
	path := filepath.Join(dir, ".cxx2rs.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := config.SaveProjectConfig(dir, config.DefaultProjectConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Written: %s\n", path)
	return nil
}
