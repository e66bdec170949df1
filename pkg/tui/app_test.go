package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anrid/japan-population/pkg/stats"
)

type fakeSource struct {
	regions    []stats.Region
	regionsErr error
	comps      map[int]stats.Composition
}

func (s *fakeSource) FetchRegions(ctx context.Context) ([]stats.Region, error) {
	return s.regions, s.regionsErr
}

func (s *fakeSource) FetchComposition(ctx context.Context, code int) (stats.Composition, error) {
	c, ok := s.comps[code]
	if !ok {
		return stats.Composition{}, fmt.Errorf("prefecture %d: %w", code, stats.ErrNetworkFailure)
	}
	return c, nil
}

func newSource() *fakeSource {
	return &fakeSource{
		regions: []stats.Region{{Code: 1, Name: "北海道"}, {Code: 2, Name: "青森県"}},
		comps: map[int]stats.Composition{
			1: {Region: 1, Series: []stats.Series{
				{Label: "総人口", Points: []stats.Point{{Year: 2015, Value: 5381733}, {Year: 2020, Value: 5224614}}},
				{Label: "年少人口", Points: []stats.Point{{Year: 2015, Value: 608296}}},
			}},
		},
	}
}

// step feeds msg to m and then feeds back whatever its command produces.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SelectAndSwitchMetric(t *testing.T) {
	session := stats.NewSession()
	m := NewModel(context.Background(), newSource(), session, stats.Options{}, nil)

	m = step(t, m, regionsMsg{regions: newSource().regions})
	if m.loadingRegions {
		t.Fatalf("still loading after regionsMsg")
	}

	m = step(t, m, key(" "))
	if got := session.Selection(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("selection = %v; want [1]", got)
	}
	if v, ok := session.Table().Value(2020, "北海道"); !ok || v != 5224614 {
		t.Errorf("Value(2020, 北海道) = %v, %v", v, ok)
	}
	if m.building != 0 {
		t.Errorf("building = %d after build finished", m.building)
	}

	m = step(t, m, key("tab"))
	if session.Metric() != stats.MetricYouth {
		t.Errorf("metric = %v; want youth", session.Metric())
	}
	if got := session.Table().Years(); len(got) != 1 || got[0] != 2015 {
		t.Errorf("youth years = %v; want [2015]", got)
	}

	m = step(t, m, key("4"))
	if session.Metric() != stats.MetricElderly {
		t.Errorf("metric = %v; want elderly", session.Metric())
	}
	if len(m.warnings) != 1 || !strings.Contains(m.warnings[0], "no elderly series") {
		t.Errorf("warnings = %v; want missing series warning", m.warnings)
	}

	view := m.View()
	for _, want := range []string{"[x] 北海道", "[ ] 青森県", "老年人口"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestModel_FailedRegionIsReported(t *testing.T) {
	session := stats.NewSession()
	m := NewModel(context.Background(), newSource(), session, stats.Options{}, nil)
	m = step(t, m, regionsMsg{regions: newSource().regions})

	m = step(t, m, key("down"))
	m = step(t, m, key(" "))
	if got := session.Selection(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("selection = %v; want [2]", got)
	}
	if len(m.warnings) != 1 || !strings.Contains(m.warnings[0], "青森県") {
		t.Errorf("warnings = %v; want a warning for 青森県", m.warnings)
	}
	if session.Table().Len() != 0 {
		t.Errorf("table = %v; want empty", session.Table())
	}
}

func TestModel_RegionsError(t *testing.T) {
	src := newSource()
	src.regionsErr = fmt.Errorf("dial: %w", stats.ErrNetworkFailure)
	session := stats.NewSession()
	session.Select(stats.Selection{1})
	m := NewModel(context.Background(), src, session, stats.Options{}, nil)

	msg := fetchRegions(context.Background(), src)()
	m = step(t, m, msg)
	if !errors.Is(m.regionsErr, stats.ErrNetworkFailure) {
		t.Errorf("regionsErr = %v; want ErrNetworkFailure", m.regionsErr)
	}

	m = step(t, m, m.rebuild(session.Snapshot())())
	if _, ok := session.Table().Value(2015, stats.Placeholder(1)); !ok {
		t.Errorf("table = %v; want placeholder column", session.Table())
	}
	if !strings.Contains(m.View(), "could not load prefectures") {
		t.Errorf("warning lost after build")
	}

	m = step(t, m, key("tab"))
	if !strings.Contains(m.View(), "could not load prefectures") {
		t.Errorf("warning lost after metric switch")
	}
}

func TestModel_StaleBuildIgnored(t *testing.T) {
	session := stats.NewSession()
	m := NewModel(context.Background(), newSource(), session, stats.Options{}, nil)
	m = step(t, m, regionsMsg{regions: newSource().regions})

	old := session.Toggle(1)
	session.Toggle(2)
	next, _ := m.Update(builtMsg{gen: old.Gen, applied: false})
	if len(next.(Model).warnings) != 0 {
		t.Errorf("stale build produced warnings %v", next.(Model).warnings)
	}
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(context.Background(), newSource(), stats.NewSession(), stats.Options{}, nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("no command for q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}
