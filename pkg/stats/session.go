package stats

import (
	"context"
	"fmt"
	"sync"
)

// Rebuild is a snapshot of the inputs of one table build, tagged with the
// generation it was taken at.
type Rebuild struct {
	Gen       uint64
	Selection Selection
	Metric    Metric
	Lookup    Lookup
}

// Session owns the selection, the active metric and the region lookup, and
// publishes the table built from them. Every change bumps the generation;
// a build result is only published while its generation is current.
type Session struct {
	mu sync.Mutex

	gen     uint64
	sel     Selection
	metric  Metric
	regions []Region
	lookup  Lookup

	table    Table
	failures []*RegionError
	missing  []int

	running uint64
	cancel  context.CancelFunc
}

func NewSession() *Session {
	return &Session{metric: MetricTotal, table: Table{Metric: MetricTotal, Rows: []Row{}}}
}

// Toggle adds or removes a region from the selection.
func (s *Session) Toggle(code int) Rebuild {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = s.sel.Toggle(code)
	return s.bump()
}

// Select replaces the whole selection.
func (s *Session) Select(sel Selection) Rebuild {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sel.Clone()
	return s.bump()
}

// SetMetric switches the active metric. Invalid metrics are rejected and
// leave the session unchanged.
func (s *Session) SetMetric(m Metric) (Rebuild, error) {
	if !m.Valid() {
		return Rebuild{}, fmt.Errorf("set metric %d: %w", int(m), ErrInvalidMetric)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metric = m
	return s.bump(), nil
}

// SetRegions installs the reference region list.
func (s *Session) SetRegions(regions []Region) Rebuild {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = append([]Region(nil), regions...)
	s.lookup = NewLookup(s.regions)
	return s.bump()
}

func (s *Session) bump() Rebuild {
	s.gen++
	return s.snapshot()
}

func (s *Session) snapshot() Rebuild {
	return Rebuild{Gen: s.gen, Selection: s.sel.Clone(), Metric: s.metric, Lookup: s.lookup}
}

// Snapshot returns the inputs for a build of the current generation.
func (s *Session) Snapshot() Rebuild {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Apply publishes res if gen is still the current generation and reports
// whether it did. Results of superseded builds are dropped.
func (s *Session) Apply(gen uint64, res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.table = res.Table
	s.failures = res.Failures
	s.missing = res.Missing
	return true
}

// Run builds the table for rb and applies it. Starting a run cancels the
// in-flight run of an older generation. It reports applied=false, and no
// error, when rb was superseded before it finished.
func (s *Session) Run(ctx context.Context, f Fetcher, rb Rebuild, opts Options) (res Result, applied bool, err error) {
	s.mu.Lock()
	if rb.Gen != s.gen {
		s.mu.Unlock()
		return Result{}, false, nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.running = rb.Gen
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		if s.running == rb.Gen {
			s.cancel = nil
		}
		s.mu.Unlock()
	}()

	res, err = BuildTable(ctx, f, rb.Selection, rb.Metric, rb.Lookup, opts)
	if err != nil {
		if s.Generation() != rb.Gen {
			return Result{}, false, nil
		}
		// Drop the previous table so it is never drawn under the new
		// selection or metric.
		s.Apply(rb.Gen, Result{Table: Table{Metric: rb.Metric, Rows: []Row{}}})
		return Result{}, false, err
	}
	return res, s.Apply(rb.Gen, res), nil
}

// Refresh runs a build of the current generation.
func (s *Session) Refresh(ctx context.Context, f Fetcher, opts Options) (Result, bool, error) {
	return s.Run(ctx, f, s.Snapshot(), opts)
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Clone()
}

func (s *Session) Metric() Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metric
}

func (s *Session) Regions() []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Region(nil), s.regions...)
}

func (s *Session) Lookup() Lookup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup
}

// Table returns the last published table.
func (s *Session) Table() Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// Failures returns the regions skipped by the last published build.
func (s *Session) Failures() []*RegionError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

func (s *Session) Missing() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missing
}
