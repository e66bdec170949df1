package resas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anrid/japan-population/pkg/stats"
)

// RESAS answers many errors with HTTP 200 and either a bare status string
// such as "400" or an object carrying statusCode and message.
type apiStatus struct {
	StatusCode json.RawMessage `json:"statusCode"`
	Message    *string         `json:"message"`
}

func (s apiStatus) err(result bool) error {
	if result || (s.StatusCode == nil && s.Message == nil) {
		return nil
	}
	code := strings.Trim(string(s.StatusCode), `"`)
	msg := ""
	if s.Message != nil {
		msg = *s.Message
	}
	return fmt.Errorf("api status %s %q: %w", code, msg, stats.ErrNetworkFailure)
}

type regionsEnvelope struct {
	apiStatus
	Result *[]prefecture `json:"result"`
}

type prefecture struct {
	PrefCode *int    `json:"prefCode"`
	PrefName *string `json:"prefName"`
}

type compositionEnvelope struct {
	apiStatus
	Result *compositionResult `json:"result"`
}

type compositionResult struct {
	BoundaryYear int              `json:"boundaryYear"`
	Data         *[]labeledSeries `json:"data"`
}

type labeledSeries struct {
	Label *string      `json:"label"`
	Data  *[]yearValue `json:"data"`
}

type yearValue struct {
	Year  *int     `json:"year"`
	Value *float64 `json:"value"`
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, stats.ErrMalformedResponse)...)
}

func decode(data []byte, v interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var status string
		if err := json.Unmarshal(trimmed, &status); err == nil {
			return fmt.Errorf("api status %s: %w", status, stats.ErrNetworkFailure)
		}
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return malformed("decode: %v", err)
	}
	return nil
}

func parseRegions(data []byte) ([]stats.Region, error) {
	var env regionsEnvelope
	if err := decode(data, &env); err != nil {
		return nil, err
	}
	if err := env.err(env.Result != nil); err != nil {
		return nil, err
	}
	if env.Result == nil {
		return nil, malformed("prefectures: missing result")
	}

	regions := make([]stats.Region, 0, len(*env.Result))
	for i, p := range *env.Result {
		if p.PrefCode == nil || p.PrefName == nil {
			return nil, malformed("prefectures: entry %d: missing prefCode or prefName", i)
		}
		regions = append(regions, stats.Region{Code: *p.PrefCode, Name: *p.PrefName})
	}
	return regions, nil
}

func parseComposition(data []byte) (stats.Composition, error) {
	var env compositionEnvelope
	if err := decode(data, &env); err != nil {
		return stats.Composition{}, err
	}
	if err := env.err(env.Result != nil); err != nil {
		return stats.Composition{}, err
	}
	if env.Result == nil || env.Result.Data == nil {
		return stats.Composition{}, malformed("composition: missing result.data")
	}

	comp := stats.Composition{BoundaryYear: env.Result.BoundaryYear}
	for i, ls := range *env.Result.Data {
		if ls.Label == nil || ls.Data == nil {
			return stats.Composition{}, malformed("composition: series %d: missing label or data", i)
		}
		s := stats.Series{Label: *ls.Label, Points: make([]stats.Point, 0, len(*ls.Data))}
		for j, yv := range *ls.Data {
			if yv.Year == nil || yv.Value == nil {
				return stats.Composition{}, malformed("composition: %s: point %d: missing year or value", s.Label, j)
			}
			s.Points = append(s.Points, stats.Point{Year: *yv.Year, Value: *yv.Value})
		}
		comp.Series = append(comp.Series, s)
	}
	return comp, nil
}
