package stats

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// fakeFetcher answers from a fixed map. Codes listed in gates block until
// their gate is closed; every finished call is reported on done.
type fakeFetcher struct {
	comps map[int]Composition
	errs  map[int]error
	gates map[int]chan struct{}
	done  chan int

	calls atomic.Int32
	mu    sync.Mutex
	seen  []int
}

func (f *fakeFetcher) FetchComposition(ctx context.Context, code int) (Composition, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.seen = append(f.seen, code)
	f.mu.Unlock()

	if f.done != nil {
		defer func() { f.done <- code }()
	}
	if g, ok := f.gates[code]; ok {
		select {
		case <-g:
		case <-ctx.Done():
			return Composition{}, ctx.Err()
		}
	}
	if err, ok := f.errs[code]; ok {
		return Composition{}, err
	}
	c, ok := f.comps[code]
	if !ok {
		return Composition{}, fmt.Errorf("no fixture for %d: %w", code, ErrNetworkFailure)
	}
	return c, nil
}

func composition(code int, series map[string][]Point) Composition {
	c := Composition{Region: code}
	for label, pts := range series {
		c.Series = append(c.Series, Series{Label: label, Points: pts})
	}
	return c
}

var testRegions = []Region{{1, "Hokkaido"}, {2, "Aomori"}, {3, "Iwate"}}

func testComps() map[int]Composition {
	return map[int]Composition{
		1: composition(1, map[string][]Point{
			"総人口":  {{2015, 100}, {2020, 110}},
			"年少人口": {{2015, 10}, {2020, 9}},
		}),
		2: composition(2, map[string][]Point{
			"総人口":  {{2015, 50}},
			"年少人口": {{2015, 5}},
		}),
		3: composition(3, map[string][]Point{
			"総人口":  {{2010, 70}, {2025, 60}},
			"老年人口": {{2010, 20}},
		}),
	}
}
