package printer

import (
	"fmt"

	"github.com/memlab/memsim/internal/replay"
	"github.com/memlab/memsim/internal/trace"
	"github.com/memlab/memsim/sim"
)

func (p *Printer) printResultText(res *replay.Result) error {
	if _, err := fmt.Fprintf(p.w, "Initialized region with capacity=%d\n\n", res.Capacity); err != nil {
		return err
	}
	for _, step := range res.Steps {
		if err := p.PrintStep(step); err != nil {
			return err
		}
	}
	return p.PrintReport(res.Report)
}

// PrintStep prints the action line for one request and, when ShowMap is
// set, the memory map that resulted from it.
func (p *Printer) PrintStep(step replay.Step) error {
	var err error
	switch step.Req.Kind {
	case trace.Allocate:
		if step.OK() {
			_, err = fmt.Fprintf(p.w, "ALLOCATE %s %d -> %s (start=%d)\n",
				step.Req.Owner, step.Req.Size, p.okColor.Sprint("success"), step.Addr)
		} else {
			_, err = fmt.Fprintf(p.w, "ALLOCATE %s %d -> %s (no single free block large enough)\n",
				step.Req.Owner, step.Req.Size, p.failColor.Sprint("FAIL"))
		}
	case trace.Free:
		if step.OK() {
			_, err = fmt.Fprintf(p.w, "FREE %s -> %s (freed start=%d size=%d)\n",
				step.Req.Owner, p.okColor.Sprint("success"), step.Freed.Start, step.Freed.Size)
		} else {
			_, err = fmt.Fprintf(p.w, "FREE %s -> %s (process not found)\n",
				step.Req.Owner, p.failColor.Sprint("FAIL"))
		}
	case trace.Malformed:
		_, err = fmt.Fprintf(p.w, "%s line %d: %q\n",
			p.warnColor.Sprint("SKIP"), step.Req.Line, step.Req.Raw)
	}
	if err != nil {
		return err
	}

	if !p.opts.ShowMap {
		return nil
	}
	return p.PrintMap(step.Blocks)
}

// PrintMap prints the block table, one row per block in address order.
func (p *Printer) PrintMap(blocks []sim.Block) error {
	if _, err := fmt.Fprintln(p.w, "Current memory map:"); err != nil {
		return err
	}
	for _, b := range blocks {
		row := b.String()
		if b.Free() {
			row = p.freeColor.Sprint(row)
		}
		if _, err := fmt.Fprintf(p.w, "  %s\n", row); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

// PrintReport prints the final summary block.
func (p *Printer) PrintReport(rep sim.Report) error {
	lines := []struct {
		format string
		args   []any
	}{
		{"===== FINAL STATS =====\n", nil},
		{"Total memory: %d\n", []any{rep.Capacity}},
		{"Total free: %d\n", []any{rep.TotalFree}},
		{"Largest free block: %d\n", []any{rep.LargestFree}},
		{"External fragmentation: %.2f%%\n", []any{rep.FragPercent}},
		{"Alloc success: %d, failures: %d\n", []any{rep.AllocSuccess, rep.AllocFail}},
		{"========================\n", nil},
	}
	for _, l := range lines {
		if _, err := p.num.Fprintf(p.w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}
