package printer

import (
	"encoding/json"

	"github.com/memlab/memsim/internal/replay"
	"github.com/memlab/memsim/internal/trace"
	"github.com/memlab/memsim/sim"
)

// jsonStep represents one replayed request in JSON output.
type jsonStep struct {
	Line    int         `json:"line"`
	Request string      `json:"request"`
	Op      string      `json:"op"` // allocate, free, malformed
	Owner   string      `json:"owner,omitempty"`
	Size    int         `json:"size,omitempty"`
	OK      bool        `json:"ok"`
	Address *int        `json:"address,omitempty"` // set for successful allocations
	Error   string      `json:"error,omitempty"`
	Blocks  []sim.Block `json:"blocks"`
}

// jsonResult is the single document emitted for a replayed trace.
type jsonResult struct {
	Capacity int         `json:"capacity"`
	Initial  []sim.Block `json:"initial"`
	Steps    []jsonStep  `json:"steps"`
	Report   sim.Report  `json:"report"`
}

func opName(k trace.Kind) string {
	switch k {
	case trace.Allocate:
		return "allocate"
	case trace.Free:
		return "free"
	default:
		return "malformed"
	}
}

func (p *Printer) printResultJSON(res *replay.Result) error {
	doc := jsonResult{
		Capacity: res.Capacity,
		Initial:  res.Initial,
		Steps:    make([]jsonStep, 0, len(res.Steps)),
		Report:   res.Report,
	}

	for _, step := range res.Steps {
		js := jsonStep{
			Line:    step.Req.Line,
			Request: step.Req.Raw,
			Op:      opName(step.Req.Kind),
			Owner:   step.Req.Owner,
			Size:    step.Req.Size,
			OK:      step.OK(),
			Blocks:  step.Blocks,
		}
		if step.Err != nil {
			js.Error = step.Err.Error()
		}
		if step.Req.Kind == trace.Allocate && step.OK() {
			addr := step.Addr
			js.Address = &addr
		}
		doc.Steps = append(doc.Steps, js)
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
