package stats

import (
	"errors"
	"testing"
)

func TestMetric_Label(t *testing.T) {
	for m, want := range map[Metric]string{
		MetricTotal:      "総人口",
		MetricYouth:      "年少人口",
		MetricWorkingAge: "生産年齢人口",
		MetricElderly:    "老年人口",
		Metric(7):        "",
	} {
		if got := m.Label(); got != want {
			t.Errorf("%v.Label() = %q; want %q", m, got, want)
		}
	}
}

func TestParseMetric(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Metric
	}{
		{"total", MetricTotal},
		{"Youth", MetricYouth},
		{"working-age", MetricWorkingAge},
		{"老年人口", MetricElderly},
		{"3", MetricElderly},
	} {
		got, err := ParseMetric(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseMetric(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}

	for _, in := range []string{"", "adult", "4", "-1"} {
		if _, err := ParseMetric(in); !errors.Is(err, ErrInvalidMetric) {
			t.Errorf("ParseMetric(%q) err = %v; want ErrInvalidMetric", in, err)
		}
	}
}

func TestMetric_Next(t *testing.T) {
	m := MetricTotal
	var seen []Metric
	for i := 0; i < 5; i++ {
		seen = append(seen, m)
		m = m.Next()
	}
	want := []Metric{MetricTotal, MetricYouth, MetricWorkingAge, MetricElderly, MetricTotal}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d = %v; want %v", i, seen[i], want[i])
		}
	}
}

func TestMetric_Text(t *testing.T) {
	var m Metric
	if err := m.UnmarshalText([]byte("elderly")); err != nil || m != MetricElderly {
		t.Errorf("UnmarshalText(elderly) = %v, %v", m, err)
	}
	b, err := MetricWorkingAge.MarshalText()
	if err != nil || string(b) != "working-age" {
		t.Errorf("MarshalText = %q, %v; want working-age", b, err)
	}
	if _, err := Metric(9).MarshalText(); !errors.Is(err, ErrInvalidMetric) {
		t.Errorf("MarshalText(9) err = %v; want ErrInvalidMetric", err)
	}
}
