package stats

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Fetcher returns the population composition of one region.
type Fetcher interface {
	FetchComposition(ctx context.Context, code int) (Composition, error)
}

// Policy decides what happens to a table build when one region fails.
type Policy int

const (
	// PolicyLenient skips failed regions and reports them in Result.Failures.
	PolicyLenient Policy = iota
	// PolicyStrict fails the whole build on the first failed region.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyLenient, fmt.Errorf("unknown failure policy %q", s)
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

type Options struct {
	Policy Policy
}

// Result is a finished table build.
type Result struct {
	Table Table
	// Failures are the regions skipped under PolicyLenient, in selection order.
	Failures []*RegionError
	// Missing are regions whose response had no sub-series for the metric.
	Missing []int
}

// Warnings describes everything that was left out of the table.
func (r Result) Warnings() []string {
	var w []string
	for _, f := range r.Failures {
		w = append(w, "skipped "+f.Error())
	}
	for _, code := range r.Missing {
		w = append(w, fmt.Sprintf("region %d: no %s series", code, r.Table.Metric))
	}
	return w
}

// BuildTable fetches the composition of every selected region concurrently
// and merges the sub-series for metric into one table. The result does not
// depend on the order in which the fetches complete.
func BuildTable(ctx context.Context, f Fetcher, sel Selection, metric Metric, lookup Lookup, opts Options) (Result, error) {
	if !metric.Valid() {
		return Result{}, fmt.Errorf("build table: %d: %w", int(metric), ErrInvalidMetric)
	}
	res := Result{Table: Table{Metric: metric, Rows: []Row{}}}
	if len(sel) == 0 {
		return res, nil
	}

	comps := make([]Composition, len(sel))
	errs := make([]error, len(sel))

	g, gctx := errgroup.WithContext(ctx)
	for i, code := range sel {
		i, code := i, code
		g.Go(func() error {
			c, err := f.FetchComposition(gctx, code)
			if err != nil {
				errs[i] = err
				if opts.Policy == PolicyStrict {
					return &RegionError{Code: code, Name: lookup.Name(code), Err: err}
				}
				return nil
			}
			comps[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("build table: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m := NewMerger()
	for i, code := range sel {
		name, err := lookup.Resolve(code)
		if err != nil && lookup.Len() > 0 {
			log.Printf("warning: %v, labeling it %q", err, name)
		}
		if errs[i] != nil {
			rerr := &RegionError{Code: code, Name: name, Err: errs[i]}
			log.Printf("warning: skipping %v", rerr)
			res.Failures = append(res.Failures, rerr)
			continue
		}
		s, ok := comps[i].Find(metric)
		if !ok {
			log.Printf("warning: %s (%d) has no %q series", name, code, metric.Label())
			res.Missing = append(res.Missing, code)
			continue
		}
		m.Add(name, s)
	}
	res.Table = m.Table(metric)
	return res, nil
}
