package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memlab/memsim/internal/replay"
	"github.com/memlab/memsim/internal/trace"
)

// replayTrace parses and replays an inline trace for rendering tests.
func replayTrace(t *testing.T, in string) *replay.Result {
	t.Helper()
	tr, err := trace.Parse(strings.NewReader(in))
	require.NoError(t, err)
	res, err := replay.Run(tr)
	require.NoError(t, err)
	return res
}

// plainOptions disables color so output assertions see raw text.
func plainOptions() Options {
	opts := DefaultOptions()
	opts.Color = false
	return opts
}

func TestPrintResultText(t *testing.T) {
	res := replayTrace(t, `300
P1 100
P2 100
FREE P1
bogus
FREE Ghost
`)
	var buf bytes.Buffer
	p := New(&buf, plainOptions())
	require.NoError(t, p.PrintResult(res))
	out := buf.String()

	assert.Contains(t, out, "Initialized region with capacity=300")
	assert.Contains(t, out, "ALLOCATE P1 100 -> success (start=0)")
	assert.Contains(t, out, "ALLOCATE P2 100 -> success (start=100)")
	assert.Contains(t, out, "FREE P1 -> success (freed start=0 size=100)")
	assert.Contains(t, out, `SKIP line 5: "bogus"`)
	assert.Contains(t, out, "FREE Ghost -> FAIL (process not found)")

	assert.Contains(t, out, "[Free  start=0 size=100]")
	assert.Contains(t, out, "[P2 start=100 size=100]")

	assert.Contains(t, out, "===== FINAL STATS =====")
	assert.Contains(t, out, "Total free: 200")
	assert.Contains(t, out, "Largest free block: 100")
	assert.Contains(t, out, "External fragmentation: 33.33%")
	assert.Contains(t, out, "Alloc success: 2, failures: 0")
}

func TestPrintResultTextFailedAllocation(t *testing.T) {
	res := replayTrace(t, `100
P1 150
`)
	var buf bytes.Buffer
	require.NoError(t, New(&buf, plainOptions()).PrintResult(res))
	assert.Contains(t, buf.String(), "ALLOCATE P1 150 -> FAIL (no single free block large enough)")
	assert.Contains(t, buf.String(), "Alloc success: 0, failures: 1")
}

func TestShowMapFalseSuppressesMaps(t *testing.T) {
	res := replayTrace(t, "100\nP1 50\n")
	opts := plainOptions()
	opts.ShowMap = false

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintResult(res))
	assert.NotContains(t, buf.String(), "Current memory map:")
	assert.Contains(t, buf.String(), "ALLOCATE P1 50 -> success (start=0)")
}

func TestReportGroupsLargeNumbers(t *testing.T) {
	res := replayTrace(t, "1048576\n")
	var buf bytes.Buffer
	require.NoError(t, New(&buf, plainOptions()).PrintResult(res))
	assert.Contains(t, buf.String(), "Total memory: 1,048,576")
}

func TestPrintResultJSON(t *testing.T) {
	res := replayTrace(t, `300
P1 100
nonsense
FREE P1
`)
	opts := plainOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintResult(res))

	var doc struct {
		Capacity int `json:"capacity"`
		Initial  []struct {
			Start int `json:"start"`
			Size  int `json:"size"`
		} `json:"initial"`
		Steps []struct {
			Line    int    `json:"line"`
			Op      string `json:"op"`
			OK      bool   `json:"ok"`
			Address *int   `json:"address"`
			Error   string `json:"error"`
		} `json:"steps"`
		Report struct {
			TotalFree    int     `json:"total_free"`
			FragPercent  float64 `json:"external_fragmentation_pct"`
			AllocSuccess int     `json:"alloc_success"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, 300, doc.Capacity)
	require.Len(t, doc.Initial, 1)
	assert.Equal(t, 300, doc.Initial[0].Size)

	require.Len(t, doc.Steps, 3)
	assert.Equal(t, "allocate", doc.Steps[0].Op)
	require.NotNil(t, doc.Steps[0].Address)
	assert.Equal(t, 0, *doc.Steps[0].Address)
	assert.Equal(t, "malformed", doc.Steps[1].Op)
	assert.False(t, doc.Steps[1].OK)
	assert.NotEmpty(t, doc.Steps[1].Error)
	assert.Equal(t, "free", doc.Steps[2].Op)
	assert.True(t, doc.Steps[2].OK)

	assert.Equal(t, 300, doc.Report.TotalFree)
	assert.Equal(t, 1, doc.Report.AllocSuccess)
}
