package stats

import "sort"

// Merger accumulates sub-series of several regions into rows keyed by year.
// Rows are created on the first contribution for their year. A Merger is
// local to one rebuild and is not safe for concurrent use.
type Merger struct {
	rows map[int]*Row
}

func NewMerger() *Merger {
	return &Merger{rows: make(map[int]*Row)}
}

// Add contributes every point of s under column name.
func (m *Merger) Add(name string, s Series) {
	for _, p := range s.Points {
		row, ok := m.rows[p.Year]
		if !ok {
			row = &Row{Year: p.Year, Values: make(map[string]float64)}
			m.rows[p.Year] = row
		}
		row.Values[name] = p.Value
	}
}

// Table finalizes the accumulated rows in ascending year order.
func (m *Merger) Table(metric Metric) Table {
	t := Table{Metric: metric, Rows: make([]Row, 0, len(m.rows))}
	for _, r := range m.rows {
		t.Rows = append(t.Rows, *r)
	}
	sort.Slice(t.Rows, func(i, j int) bool {
		return t.Rows[i].Year < t.Rows[j].Year
	})
	return t
}
