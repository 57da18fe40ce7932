package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/memlab/memsim/internal/logger"
	"github.com/memlab/memsim/internal/replay"
	"github.com/memlab/memsim/internal/trace"
	"github.com/memlab/memsim/sim"
)

// barWidth is the width of the proportional block bar in the map view.
const barWidth = 30

// explorerModel is the bubbletea model for the interactive trace viewer.
// idx selects the displayed state: 0 is the initial table before any
// request, i > 0 is the table after step i-1.
type explorerModel struct {
	name string
	res  *replay.Result
	idx  int

	vp       viewport.Model
	ready    bool
	showHelp bool
	width    int
	height   int
}

func newExplorerModel(name string, res *replay.Result) explorerModel {
	return explorerModel{name: name, res: res}
}

func (m explorerModel) Init() tea.Cmd {
	return nil
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView())
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - chrome
		}
		m.vp.SetContent(m.mapView())

	case tea.KeyMsg:
		// Navigation keys are consumed here so they don't double as
		// viewport scroll bindings (space pages the viewport by default).
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.idx < len(m.res.Steps) {
				m.idx++
				m.refresh()
			}
			return m, nil
		case "left", "h", "p":
			if m.idx > 0 {
				m.idx--
				m.refresh()
			}
			return m, nil
		case "g", "home":
			m.idx = 0
			m.refresh()
			return m, nil
		case "G", "end":
			m.idx = len(m.res.Steps)
			m.refresh()
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *explorerModel) refresh() {
	logger.Debug("step change", "idx", m.idx)
	m.vp.SetContent(m.mapView())
	m.vp.GotoTop()
}

// blocks returns the table snapshot for the current position.
func (m explorerModel) blocks() []sim.Block {
	if m.idx == 0 {
		return m.res.Initial
	}
	return m.res.Steps[m.idx-1].Blocks
}

func (m explorerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.helpView()
	}
	return m.headerView() + "\n" + m.vp.View() + "\n" + m.footerView()
}

func (m explorerModel) headerView() string {
	title := titleStyle.Render("memsim explorer") + "  " + m.name
	step := stepStyle.Render(fmt.Sprintf("step %d/%d", m.idx, len(m.res.Steps)))

	var action string
	if m.idx == 0 {
		action = stepStyle.Render(fmt.Sprintf("initial state: one free block of %d bytes", m.res.Capacity))
	} else {
		action = describeStep(m.res.Steps[m.idx-1])
	}
	return title + "  " + step + "\n" + action + "\n"
}

// describeStep renders the request and its outcome for the header line.
func describeStep(step replay.Step) string {
	switch step.Req.Kind {
	case trace.Allocate:
		if step.OK() {
			return fmt.Sprintf("ALLOCATE %s %d %s", step.Req.Owner, step.Req.Size,
				okStyle.Render(fmt.Sprintf("-> success (start=%d)", step.Addr)))
		}
		return fmt.Sprintf("ALLOCATE %s %d %s", step.Req.Owner, step.Req.Size,
			failStyle.Render("-> FAIL (no single free block large enough)"))
	case trace.Free:
		if step.OK() {
			return fmt.Sprintf("FREE %s %s", step.Req.Owner,
				okStyle.Render(fmt.Sprintf("-> success (freed start=%d size=%d)", step.Freed.Start, step.Freed.Size)))
		}
		return fmt.Sprintf("FREE %s %s", step.Req.Owner,
			failStyle.Render("-> FAIL (process not found)"))
	default:
		return skipStyle.Render(fmt.Sprintf("SKIP line %d: %q", step.Req.Line, step.Req.Raw))
	}
}

// mapView renders the block table with a proportional bar per block.
func (m explorerModel) mapView() string {
	var sb strings.Builder
	for _, b := range m.blocks() {
		cells := b.Size * barWidth / m.res.Capacity
		if cells < 1 {
			cells = 1
		}
		bar := strings.Repeat("█", cells) + strings.Repeat("░", barWidth-min(cells, barWidth))

		owner := b.Owner
		style := ownedRowStyle
		if b.Free() {
			owner = "Free"
			style = freeRowStyle
		}
		sb.WriteString(style.Render(fmt.Sprintf("%-10s %s start=%-8d size=%-8d", owner, bar, b.Start, b.Size)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m explorerModel) footerView() string {
	blocks := m.blocks()
	free := sim.TotalFree(blocks)
	largest := sim.LargestFree(blocks)
	frag := sim.FragPercent(blocks, m.res.Capacity)

	success, fail := 0, 0
	for _, step := range m.res.Steps[:m.idx] {
		if step.Req.Kind != trace.Allocate {
			continue
		}
		if step.OK() {
			success++
		} else {
			fail++
		}
	}

	stats := fmt.Sprintf("free=%d largest=%d frag=%.2f%% alloc ok/fail=%d/%d",
		free, largest, frag, success, fail)
	hints := "←/→ step · g/G first/last · ? help · q quit"
	return statusStyle.Render(stats) + "\n" + statusStyle.Render(hints)
}

func (m explorerModel) helpView() string {
	help := `memsim explorer

  right, l, n, space   next request
  left, h, p           previous request
  g, home              initial state
  G, end               final state
  up/down, pgup/pgdn   scroll the memory map
  ?                    toggle this help
  q, esc, ctrl+c       quit`
	return help + helpStyle.Render("\npress ? to return")
}
