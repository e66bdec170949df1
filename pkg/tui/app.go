// Package tui is the interactive front end: a prefecture checklist next to
// a population chart that is rebuilt whenever the selection or the metric
// changes.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anrid/japan-population/pkg/chart"
	"github.com/anrid/japan-population/pkg/stats"
)

// Source provides the region list and the per-region compositions.
type Source interface {
	stats.Fetcher
	FetchRegions(ctx context.Context) ([]stats.Region, error)
}

type regionsMsg struct {
	regions []stats.Region
	err     error
}

type builtMsg struct {
	gen     uint64
	res     stats.Result
	applied bool
	err     error
}

const listWidth = 24

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	src     Source
	session *stats.Session
	opts    stats.Options
	palette []string

	width  int
	height int

	cursor int

	loadingRegions bool
	building       uint64

	warnings   []string
	regionsErr error
	showHelp bool
}

// NewModel returns a model for session. The session may already carry a
// selection and a metric, e.g. from command line flags.
func NewModel(ctx context.Context, src Source, session *stats.Session, opts stats.Options, palette []string) Model {
	return Model{
		ctx:            ctx,
		src:            src,
		session:        session,
		opts:           opts,
		palette:        palette,
		width:          100,
		height:         30,
		loadingRegions: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchRegions(m.ctx, m.src), m.rebuild(m.session.Snapshot()))
}

func fetchRegions(ctx context.Context, src Source) tea.Cmd {
	return func() tea.Msg {
		regions, err := src.FetchRegions(ctx)
		return regionsMsg{regions: regions, err: err}
	}
}

func (m Model) rebuild(rb stats.Rebuild) tea.Cmd {
	ctx, src, session, opts := m.ctx, m.src, m.session, m.opts
	return func() tea.Msg {
		res, applied, err := session.Run(ctx, src, rb, opts)
		return builtMsg{gen: rb.Gen, res: res, applied: applied, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case regionsMsg:
		m.loadingRegions = false
		if msg.err != nil {
			m.regionsErr = msg.err
			return m, nil
		}
		m.regionsErr = nil
		rb := m.session.SetRegions(msg.regions)
		m.building = rb.Gen
		return m, m.rebuild(rb)

	case builtMsg:
		if !msg.applied && msg.err == nil {
			return m, nil
		}
		if msg.gen == m.building {
			m.building = 0
		}
		if msg.err != nil {
			m.warnings = []string{fmt.Sprintf("build failed: %v", msg.err)}
			return m, nil
		}
		m.warnings = msg.res.Warnings()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	regions := m.session.Regions()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "?", "h":
		m.showHelp = !m.showHelp
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(regions)-1 {
			m.cursor++
		}
		return m, nil
	case "home", "g":
		m.cursor = 0
		return m, nil
	case "end", "G":
		m.cursor = max(len(regions)-1, 0)
		return m, nil
	case " ", "enter", "x":
		if m.cursor >= len(regions) {
			return m, nil
		}
		return m.start(m.session.Toggle(regions[m.cursor].Code))
	case "tab", "m":
		rb, err := m.session.SetMetric(m.session.Metric().Next())
		if err != nil {
			m.warnings = []string{err.Error()}
			return m, nil
		}
		return m.start(rb)
	case "1", "2", "3", "4":
		rb, err := m.session.SetMetric(stats.Metric(msg.String()[0] - '1'))
		if err != nil {
			m.warnings = []string{err.Error()}
			return m, nil
		}
		return m.start(rb)
	case "c":
		return m.start(m.session.Select(nil))
	case "r":
		return m.start(m.session.Select(m.session.Selection()))
	}
	return m, nil
}

func (m Model) start(rb stats.Rebuild) (tea.Model, tea.Cmd) {
	m.building = rb.Gen
	return m, m.rebuild(rb)
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	list := panelStyle.Height(max(m.height-4, 3)).Width(listWidth).Render(m.renderList())
	chartW := max(m.width-listWidth-8, 20)
	chartH := max(m.height-10, 5)
	table := m.session.Table()
	plot := chart.Terminal(table, m.session.Selection(), m.session.Lookup(), chartW, chartH, m.palette)
	right := lipgloss.JoinVertical(lipgloss.Left, plot, m.renderStatus())

	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", right)
}

func (m Model) renderList() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Prefectures"))
	sb.WriteString("\n")

	if m.loadingRegions {
		sb.WriteString(dimStyle.Render("loading…"))
		return sb.String()
	}

	regions := m.session.Regions()
	sel := m.session.Selection()
	visible := max(m.height-7, 1)
	scroll := 0
	if m.cursor >= visible {
		scroll = m.cursor - visible + 1
	}

	for i := scroll; i < len(regions) && i < scroll+visible; i++ {
		r := regions[i]
		box := "[ ]"
		if sel.Contains(r.Code) {
			box = okStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, r.Name)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderStatus() string {
	var sb strings.Builder
	metric := m.session.Metric()
	for _, mt := range stats.Metrics() {
		label := fmt.Sprintf(" %d %s ", int(mt)+1, mt.Label())
		if mt == metric {
			label = selectedStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		sb.WriteString(label)
	}
	sb.WriteString("\n")

	if m.building != 0 {
		sb.WriteString(dimStyle.Render("fetching…"))
		sb.WriteString("\n")
	}
	if m.regionsErr != nil {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("! could not load prefectures: %v", m.regionsErr)))
		sb.WriteString("\n")
	}
	for _, w := range m.warnings {
		sb.WriteString(warnStyle.Render("! " + w))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("space toggle · tab metric · c clear · r reload · ? help · q quit"))
	return sb.String()
}

func (m Model) renderHelp() string {
	keys := [][2]string{
		{"↑/k ↓/j", "move cursor"},
		{"space/enter", "select or deselect prefecture"},
		{"tab/m", "next metric"},
		{"1-4", "total, youth, working-age, elderly"},
		{"c", "clear selection"},
		{"r", "fetch the chart again"},
		{"?", "toggle help"},
		{"q", "quit"},
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keys"))
	sb.WriteString("\n\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", k[0], helpStyle.Render(k[1])))
	}
	return panelStyle.Render(sb.String())
}
