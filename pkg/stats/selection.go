package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Selection is an ordered set of region codes in the order they were picked.
type Selection []int

// Toggle removes code if it is selected and appends it otherwise. The
// receiver is left untouched.
func (s Selection) Toggle(code int) Selection {
	if i := s.Index(code); i >= 0 {
		out := make(Selection, 0, len(s)-1)
		out = append(out, s[:i]...)
		return append(out, s[i+1:]...)
	}
	out := make(Selection, 0, len(s)+1)
	out = append(out, s...)
	return append(out, code)
}

func (s Selection) Index(code int) int {
	for i, c := range s {
		if c == code {
			return i
		}
	}
	return -1
}

func (s Selection) Contains(code int) bool {
	return s.Index(code) >= 0
}

func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	return append(Selection(nil), s...)
}

// ParseSelection reads a comma separated list of codes, e.g. "1,13,27".
// Repeated codes are kept once, at their first position.
func ParseSelection(v string) (Selection, error) {
	var sel Selection
	for _, f := range strings.Split(v, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		code, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad region code %q: %w", f, err)
		}
		if !sel.Contains(code) {
			sel = append(sel, code)
		}
	}
	return sel, nil
}
