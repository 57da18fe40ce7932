// Package replay drives a simulator with a parsed trace, one request at a
// time, and records the state after every request.
package replay

import (
	"errors"

	"github.com/memlab/memsim/internal/trace"
	"github.com/memlab/memsim/sim"
)

// Step records the outcome of one trace request and the block table that
// resulted from it. Exactly one of the outcome fields is meaningful,
// selected by Req.Kind and Err.
type Step struct {
	Req    trace.Request
	Addr   int         // start address, for successful allocations
	Freed  sim.Block   // released block, for successful frees
	Err    error       // per-request failure; nil means success
	Blocks []sim.Block // table snapshot taken after the request
}

// OK reports whether the request succeeded.
func (s Step) OK() bool { return s.Err == nil }

// Result is a fully replayed trace.
type Result struct {
	Capacity int
	Initial  []sim.Block // the table before any request: one free block
	Steps    []Step
	Report   sim.Report
}

// Run replays tr against a fresh simulator in strict trace order.
//
// Per-request failures (no fit, unknown owner, malformed line) are
// recorded in their Step and the replay continues. Run itself fails only
// for an invalid capacity or an internal table-consistency violation,
// both of which abort the run.
func Run(tr *trace.Trace) (*Result, error) {
	s, err := sim.New(tr.Capacity)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Capacity: tr.Capacity,
		Initial:  s.Blocks(),
		Steps:    make([]Step, 0, len(tr.Requests)),
	}

	for _, req := range tr.Requests {
		step := Step{Req: req}
		switch req.Kind {
		case trace.Allocate:
			step.Addr, step.Err = s.Allocate(req.Owner, req.Size)
		case trace.Free:
			step.Freed, step.Err = s.Free(req.Owner)
			if errors.Is(step.Err, sim.ErrTableCorrupt) {
				return nil, step.Err
			}
		case trace.Malformed:
			step.Err = req.Err
		}
		step.Blocks = s.Blocks()
		res.Steps = append(res.Steps, step)
	}

	res.Report = s.Report()
	return res, nil
}
