package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/memlab/memsim/internal/config"
	"github.com/memlab/memsim/sim/printer"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	noMap   bool
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Simulate first-fit memory allocation over a trace of requests",
	Long: `memsim replays a trace of allocate/free requests against a simulated
fixed-size memory region using first-fit allocation. After each request it
shows the resulting partition of the region into allocated and free blocks,
and at the end reports total free memory, the largest contiguous free
block, external fragmentation, and allocation success/failure counts.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Print only the final report")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noMap, "no-map", false, "Suppress per-request memory maps")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a TOML config file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildOptions merges the optional config file with the global flags.
// Flags win over file values, which win over defaults.
func buildOptions() (printer.Options, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return printer.Options{}, err
		}
		cfg = loaded
	}

	opts := printer.Options{
		Format:  printer.Format(cfg.Format),
		Color:   cfg.Color,
		ShowMap: cfg.ShowMap,
	}
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if noColor {
		opts.Color = false
	}
	if noMap {
		opts.ShowMap = false
	}
	if cfg.Verbose {
		verbose = true
	}
	return opts, nil
}

// Helper functions for output

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
