package stats

import (
	"fmt"
	"strings"
)

// Metric is one of the four population-composition categories.
type Metric int

const (
	MetricTotal Metric = iota
	MetricYouth
	MetricWorkingAge
	MetricElderly
	metricCount
)

var metricLabels = [metricCount]string{"総人口", "年少人口", "生産年齢人口", "老年人口"}
var metricKeys = [metricCount]string{"total", "youth", "working-age", "elderly"}
var metricTitles = [metricCount]string{"Total population", "Youth population (0-14)", "Working-age population (15-64)", "Elderly population (65+)"}

// Metrics lists all metrics in display order.
func Metrics() []Metric {
	return []Metric{MetricTotal, MetricYouth, MetricWorkingAge, MetricElderly}
}

func (m Metric) Valid() bool {
	return m >= MetricTotal && m < metricCount
}

// Label is the sub-series label RESAS uses for the metric.
func (m Metric) Label() string {
	if !m.Valid() {
		return ""
	}
	return metricLabels[m]
}

func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricKeys[m]
}

func (m Metric) Title() string {
	if !m.Valid() {
		return m.String()
	}
	return metricTitles[m]
}

// Next cycles to the following metric, wrapping around after MetricElderly.
func (m Metric) Next() Metric {
	if !m.Valid() {
		return MetricTotal
	}
	return (m + 1) % metricCount
}

// ParseMetric accepts a metric key ("youth"), its RESAS label ("年少人口") or
// its index ("1").
func ParseMetric(s string) (Metric, error) {
	s = strings.TrimSpace(s)
	for _, m := range Metrics() {
		if strings.EqualFold(s, metricKeys[m]) || s == metricLabels[m] || s == fmt.Sprint(int(m)) {
			return m, nil
		}
	}
	return MetricTotal, fmt.Errorf("%q: %w", s, ErrInvalidMetric)
}

func (m Metric) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%d: %w", int(m), ErrInvalidMetric)
	}
	return []byte(m.String()), nil
}

func (m *Metric) UnmarshalText(b []byte) error {
	v, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
