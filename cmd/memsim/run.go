package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/memlab/memsim/internal/replay"
	"github.com/memlab/memsim/internal/trace"
	"github.com/memlab/memsim/sim/printer"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>",
		Short: "Replay a trace file against a simulated region",
		Long: `The run command parses a trace file, replays every request in order
against a fresh simulated region, and prints the outcome of each request,
the memory map after it, and the final report.

Example:
  memsim run trace.txt
  memsim run trace.txt --json
  memsim run trace.txt --quiet --no-color`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args[0], os.Stdout)
		},
	}
}

func runTrace(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open trace")
	}
	defer f.Close()

	tr, err := trace.Parse(f)
	if err != nil {
		return err
	}
	printVerbose("Parsed %s: capacity=%d, %d requests\n", path, tr.Capacity, len(tr.Requests))

	res, err := replay.Run(tr)
	if err != nil {
		return err
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}
	p := printer.New(w, opts)

	if quiet {
		if opts.Format == printer.FormatJSON {
			return printJSON(w, res.Report)
		}
		return p.PrintReport(res.Report)
	}
	return p.PrintResult(res)
}
