package stats

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelection_Toggle(t *testing.T) {
	var s Selection
	s = s.Toggle(13)
	s = s.Toggle(1)
	s = s.Toggle(27)
	if want := (Selection{13, 1, 27}); !reflect.DeepEqual(s, want) {
		t.Fatalf("s = %v; want %v", s, want)
	}

	s2 := s.Toggle(1)
	if want := (Selection{13, 27}); !reflect.DeepEqual(s2, want) {
		t.Errorf("Toggle(1) = %v; want %v", s2, want)
	}
	if want := (Selection{13, 1, 27}); !reflect.DeepEqual(s, want) {
		t.Errorf("receiver changed to %v; want %v", s, want)
	}
}

func TestSelection_TogglePair(t *testing.T) {
	for _, orig := range []Selection{nil, {1}, {5, 3, 9}} {
		for _, code := range []int{1, 3, 42} {
			got := orig.Toggle(code).Toggle(code)
			if orig.Contains(code) {
				// A selected code comes back at the end.
				if len(got) != len(orig) || !got.Contains(code) {
					t.Errorf("%v.Toggle(%d).Toggle(%d) = %v", orig, code, code, got)
				}
				continue
			}
			if len(got) != len(orig) || (len(orig) > 0 && !reflect.DeepEqual(got, orig)) {
				t.Errorf("%v.Toggle(%d).Toggle(%d) = %v; want %v", orig, code, code, got, orig)
			}
		}
	}
}

func TestParseSelection(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Selection
		ok   bool
	}{
		{"", nil, true},
		{"1", Selection{1}, true},
		{" 13, 1 ,27", Selection{13, 1, 27}, true},
		{"1,1,2", Selection{1, 2}, true},
		{"1,,2,", Selection{1, 2}, true},
		{"1,tokyo", nil, false},
	} {
		got, err := ParseSelection(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseSelection(%q) err = %v; want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseSelection(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	var empty Lookup
	if got := empty.Name(99); got != "Unknown region (99)" {
		t.Errorf("Name(99) = %q", got)
	}

	l := NewLookup([]Region{{1, "北海道"}})
	if got := l.Name(1); got != "北海道" || !l.Has(1) {
		t.Errorf("Name(1) = %q, Has(1) = %v", got, l.Has(1))
	}
	name, err := l.Resolve(2)
	if name != Placeholder(2) || !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("Resolve(2) = %q, %v; want placeholder and ErrUnknownRegion", name, err)
	}
}
