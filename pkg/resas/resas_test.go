package resas

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/anrid/japan-population/pkg/stats"
)

const prefecturesJSON = `{
  "message": null,
  "result": [
    {"prefCode": 1, "prefName": "北海道"},
    {"prefCode": 2, "prefName": "青森県"}
  ]
}`

const compositionJSON = `{
  "message": null,
  "result": {
    "boundaryYear": 2020,
    "data": [
      {"label": "総人口", "data": [{"year": 1960, "value": 5039206}, {"year": 1965, "value": 5171800}]},
      {"label": "年少人口", "data": [{"year": 1960, "value": 1681479, "rate": 33.37}]}
    ]
  }
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "test-key", 5*time.Second)
}

func TestFetchRegions(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != prefecturesPath {
			t.Errorf("path = %q; want %q", r.URL.Path, prefecturesPath)
		}
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Errorf("X-API-KEY = %q; want test-key", got)
		}
		w.Write([]byte(prefecturesJSON))
	})

	regions, err := c.FetchRegions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []stats.Region{{Code: 1, Name: "北海道"}, {Code: 2, Name: "青森県"}}
	if !reflect.DeepEqual(regions, want) {
		t.Errorf("regions = %v; want %v", regions, want)
	}
}

func TestFetchComposition(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != compositionPath {
			t.Errorf("path = %q; want %q", r.URL.Path, compositionPath)
		}
		if got := r.URL.Query().Get("prefCode"); got != "13" {
			t.Errorf("prefCode = %q; want 13", got)
		}
		w.Write([]byte(compositionJSON))
	})

	comp, err := c.FetchComposition(context.Background(), 13)
	if err != nil {
		t.Fatal(err)
	}
	if comp.Region != 13 || comp.BoundaryYear != 2020 || len(comp.Series) != 2 {
		t.Fatalf("composition = %+v", comp)
	}
	total, ok := comp.Find(stats.MetricTotal)
	if !ok {
		t.Fatalf("no total series")
	}
	if want := []stats.Point{{Year: 1960, Value: 5039206}, {Year: 1965, Value: 5171800}}; !reflect.DeepEqual(total.Points, want) {
		t.Errorf("total = %v; want %v", total.Points, want)
	}
	if _, ok := comp.Find(stats.MetricElderly); ok {
		t.Errorf("found elderly series; want none")
	}
}

func TestFetch_Errors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"http 500", http.StatusInternalServerError, `oops`, stats.ErrNetworkFailure},
		{"forbidden body", http.StatusOK, `{"statusCode":"403","message":"Forbidden.","description":""}`, stats.ErrNetworkFailure},
		{"bare status", http.StatusOK, `"400"`, stats.ErrNetworkFailure},
		{"not json", http.StatusOK, `<html>`, stats.ErrMalformedResponse},
		{"no result", http.StatusOK, `{"foo": 1}`, stats.ErrMalformedResponse},
		{"no data", http.StatusOK, `{"message": null, "result": {"boundaryYear": 2020}}`, stats.ErrMalformedResponse},
		{"no label", http.StatusOK, `{"result": {"data": [{"data": []}]}}`, stats.ErrMalformedResponse},
		{"no value", http.StatusOK, `{"result": {"data": [{"label": "総人口", "data": [{"year": 1960}]}]}}`, stats.ErrMalformedResponse},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := c.FetchComposition(context.Background(), 1)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestFetchRegions_Malformed(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [{"prefCode": 1}]}`))
	})
	if _, err := c.FetchRegions(context.Background()); !errors.Is(err, stats.ErrMalformedResponse) {
		t.Errorf("err = %v; want ErrMalformedResponse", err)
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, "k", time.Second)
	if _, err := c.FetchRegions(context.Background()); !errors.Is(err, stats.ErrNetworkFailure) {
		t.Errorf("err = %v; want ErrNetworkFailure", err)
	}
}

func TestFetch_Cancelled(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchComposition(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
}
