package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/japan-population/pkg/stats"
)

// WriteTable prints the table with one column per selected region. Gaps
// are shown as "-". Column widths account for double-width names.
func WriteTable(w io.Writer, t stats.Table, sel stats.Selection, lookup stats.Lookup) error {
	p := message.NewPrinter(language.English)

	header := []string{"Year"}
	for _, code := range sel {
		header = append(header, lookup.Name(code))
	}
	rows := [][]string{header}
	for _, r := range t.Rows {
		cols := []string{strconv.Itoa(r.Year)}
		for _, name := range header[1:] {
			if v, ok := r.Values[name]; ok {
				cols = append(cols, p.Sprintf("%.0f", v))
			} else {
				cols = append(cols, "-")
			}
		}
		rows = append(rows, cols)
	}

	widths := make([]int, len(header))
	for _, cols := range rows {
		for i, c := range cols {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	for _, cols := range rows {
		var sb strings.Builder
		for i, c := range cols {
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(c))
			if i == 0 {
				sb.WriteString(c + pad)
			} else {
				sb.WriteString("  " + pad + c)
			}
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
