package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:     "cxx2rs",
		Short:   "cxx2rs - C++ to Rust transpiler",
		Long:    `cxx2rs converts C++ translation units into Rust source files.`,
		Version: version,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	})

	// Add subcommands
	rootCmd.AddCommand(transpileCmd())
	rootCmd.AddCommand(stubsCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(repoCmd())
	rootCmd.AddCommand(initCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
