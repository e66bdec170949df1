package stats

import (
	"fmt"
	"sort"
)

// Region is a prefecture as listed by the RESAS prefectures endpoint.
type Region struct {
	Code int
	Name string
}

// Lookup maps region codes to display names.
// The zero value is an empty lookup, which is valid before the region list
// has been fetched.
type Lookup struct {
	names map[int]string
}

func NewLookup(regions []Region) Lookup {
	names := make(map[int]string, len(regions))
	for _, r := range regions {
		names[r.Code] = r.Name
	}
	return Lookup{names: names}
}

// Name returns the display name for code, or a placeholder when the code is
// not known (yet).
func (l Lookup) Name(code int) string {
	if name, ok := l.names[code]; ok {
		return name
	}
	return Placeholder(code)
}

func (l Lookup) Has(code int) bool {
	_, ok := l.names[code]
	return ok
}

// Resolve is like Name but reports ErrUnknownRegion for codes missing from
// the lookup. The returned name is always usable.
func (l Lookup) Resolve(code int) (string, error) {
	if name, ok := l.names[code]; ok {
		return name, nil
	}
	return Placeholder(code), fmt.Errorf("region %d: %w", code, ErrUnknownRegion)
}

func (l Lookup) Len() int {
	return len(l.names)
}

func Placeholder(code int) string {
	return fmt.Sprintf("Unknown region (%d)", code)
}

// Point is a single yearly value of a sub-series.
type Point struct {
	Year  int
	Value float64
}

// Series is one labeled sub-series of a composition response, e.g. "総人口".
type Series struct {
	Label  string
	Points []Point
}

// Composition is the parsed population composition of one region.
type Composition struct {
	Region       int
	BoundaryYear int
	Series       []Series
}

// Find returns the sub-series matching the metric's canonical label.
func (c Composition) Find(m Metric) (Series, bool) {
	label := m.Label()
	for _, s := range c.Series {
		if s.Label == label {
			return s, true
		}
	}
	return Series{}, false
}

// Row is one year of a merged table. Values only holds the regions that
// reported a value for Year.
type Row struct {
	Year   int
	Values map[string]float64
}

// Table is the year-indexed merge of all selected regions' sub-series.
type Table struct {
	Metric Metric
	Rows   []Row
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) Years() []int {
	years := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		years[i] = r.Year
	}
	return years
}

func (t Table) Value(year int, name string) (float64, bool) {
	i := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].Year >= year })
	if i == len(t.Rows) || t.Rows[i].Year != year {
		return 0, false
	}
	v, ok := t.Rows[i].Values[name]
	return v, ok
}

// Columns returns the names present in any row, sorted.
func (t Table) Columns() []string {
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		for name := range r.Values {
			seen[name] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for name := range seen {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// Points returns the series of one column in year order, skipping years the
// column has no value for.
func (t Table) Points(name string) []Point {
	var pts []Point
	for _, r := range t.Rows {
		if v, ok := r.Values[name]; ok {
			pts = append(pts, Point{Year: r.Year, Value: v})
		}
	}
	return pts
}
