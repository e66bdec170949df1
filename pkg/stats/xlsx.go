package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
)

const (
	dataSheet = "Population"
	infoSheet = "Info"
)

// Workbook is a table read back from an exported spreadsheet.
type Workbook struct {
	Table   Table
	Columns []string
}

// Selection numbers the workbook's columns 1..n so the table can be
// rendered like a live one.
func (wb Workbook) Selection() (Selection, Lookup) {
	sel := make(Selection, len(wb.Columns))
	regions := make([]Region, len(wb.Columns))
	for i, name := range wb.Columns {
		sel[i] = i + 1
		regions[i] = Region{Code: i + 1, Name: name}
	}
	return sel, NewLookup(regions)
}

type xlsxChartSeries struct {
	Name       string `json:"name"`
	Categories string `json:"categories"`
	Values     string `json:"values"`
}

type xlsxChart struct {
	Type   string            `json:"type"`
	Series []xlsxChartSeries `json:"series"`
	Title  struct {
		Name string `json:"name"`
	} `json:"title"`
}

// WriteXLSX writes t as a spreadsheet with one column per selected region
// and an embedded line chart.
func WriteXLSX(w io.Writer, t Table, sel Selection, lookup Lookup) error {
	f := xlsx.NewFile()
	f.SetSheetName("Sheet1", dataSheet)

	names := make([]string, len(sel))
	for i, code := range sel {
		names[i] = lookup.Name(code)
	}

	if err := f.SetCellValue(dataSheet, "A1", "Year"); err != nil {
		return err
	}
	for j, name := range names {
		cell, _ := xlsx.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellValue(dataSheet, cell, name); err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		cell, _ := xlsx.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(dataSheet, cell, row.Year); err != nil {
			return err
		}
		for j, name := range names {
			v, ok := row.Values[name]
			if !ok {
				continue
			}
			cell, _ := xlsx.CoordinatesToCellName(j+2, i+2)
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return err
			}
		}
	}

	lastCol, _ := xlsx.ColumnNumberToName(len(names) + 1)
	if err := f.SetColWidth(dataSheet, "A", lastCol, 16); err != nil {
		return err
	}

	if len(t.Rows) > 0 && len(names) > 0 {
		spec := xlsxChart{Type: "line"}
		spec.Title.Name = t.Metric.Title()
		last := len(t.Rows) + 1
		for j := range names {
			col, _ := xlsx.ColumnNumberToName(j + 2)
			spec.Series = append(spec.Series, xlsxChartSeries{
				Name:       fmt.Sprintf("%s!$%s$1", dataSheet, col),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, last),
				Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, col, col, last),
			})
		}
		js, err := json.Marshal(spec)
		if err != nil {
			return err
		}
		anchor, _ := xlsx.CoordinatesToCellName(len(names)+3, 2)
		if err := f.AddChart(dataSheet, anchor, string(js)); err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	f.NewSheet(infoSheet)
	if err := f.SetCellValue(infoSheet, "A1", "metric"); err != nil {
		return err
	}
	if err := f.SetCellValue(infoSheet, "B1", t.Metric.String()); err != nil {
		return err
	}
	if err := f.SetCellValue(infoSheet, "A2", "label"); err != nil {
		return err
	}
	if err := f.SetCellValue(infoSheet, "B2", t.Metric.Label()); err != nil {
		return err
	}

	return f.Write(w)
}

// ReadXLSX reads a workbook written by WriteXLSX.
func ReadXLSX(r io.Reader) (Workbook, error) {
	f, err := xlsx.OpenReader(r)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook: %w", err)
	}

	metric := MetricTotal
	if v, err := f.GetCellValue(infoSheet, "B1"); err == nil && v != "" {
		if metric, err = ParseMetric(v); err != nil {
			return Workbook{}, err
		}
	}

	rows, err := f.GetRows(dataSheet)
	if err != nil {
		return Workbook{}, fmt.Errorf("read sheet %q: %w", dataSheet, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Workbook{}, fmt.Errorf("sheet %q has no header: %w", dataSheet, ErrMalformedResponse)
	}

	wb := Workbook{Columns: append([]string(nil), rows[0][1:]...)}
	m := NewMerger()
	series := make([]Series, len(wb.Columns))

	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return Workbook{}, fmt.Errorf("row %d: bad year %q: %w", i+2, row[0], ErrMalformedResponse)
		}
		for j := 1; j < len(row) && j <= len(wb.Columns); j++ {
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Workbook{}, fmt.Errorf("row %d: bad value %q: %w", i+2, cell, ErrMalformedResponse)
			}
			series[j-1].Points = append(series[j-1].Points, Point{Year: year, Value: v})
		}
	}
	for j, name := range wb.Columns {
		m.Add(name, series[j])
	}
	wb.Table = m.Table(metric)
	return wb, nil
}
