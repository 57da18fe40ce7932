package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/memlab/memsim/internal/trace"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace>",
		Short: "Validate a trace file without running it",
		Long: `The check command parses a trace file and reports its capacity,
request counts, and any malformed lines, without simulating anything.
It exits non-zero when the trace contains malformed lines.

Example:
  memsim check trace.txt
  memsim check trace.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkTrace(args[0], os.Stdout)
		},
	}
}

// checkSummary is the JSON document emitted by check --json.
type checkSummary struct {
	Capacity    int             `json:"capacity"`
	Allocations int             `json:"allocations"`
	Frees       int             `json:"frees"`
	Malformed   []malformedLine `json:"malformed,omitempty"`
}

type malformedLine struct {
	Line  int    `json:"line"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

func checkTrace(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open trace")
	}
	defer f.Close()

	tr, err := trace.Parse(f)
	if err != nil {
		return err
	}

	sum := checkSummary{Capacity: tr.Capacity}
	for _, req := range tr.Requests {
		switch req.Kind {
		case trace.Allocate:
			sum.Allocations++
		case trace.Free:
			sum.Frees++
		case trace.Malformed:
			sum.Malformed = append(sum.Malformed, malformedLine{
				Line:  req.Line,
				Text:  req.Raw,
				Error: req.Err.Error(),
			})
		}
	}

	if jsonOut {
		if err := printJSON(w, sum); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Capacity: %d\n", sum.Capacity)
		fmt.Fprintf(w, "Allocations: %d\n", sum.Allocations)
		fmt.Fprintf(w, "Frees: %d\n", sum.Frees)
		fmt.Fprintf(w, "Malformed lines: %d\n", len(sum.Malformed))
		for _, m := range sum.Malformed {
			fmt.Fprintf(w, "  line %d: %q\n", m.Line, m.Text)
		}
	}

	if n := len(sum.Malformed); n > 0 {
		return errors.Errorf("trace has %d malformed line(s)", n)
	}
	return nil
}
