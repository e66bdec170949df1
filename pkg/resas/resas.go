// Package resas is a client for the population endpoints of the RESAS
// (Regional Economy Society Analyzing System) API.
//
// See: https://opendata.resas-portal.go.jp/docs/api/v1/index.html
package resas

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anrid/japan-population/pkg/stats"
)

const DefaultBaseURL = "https://opendata.resas-portal.go.jp"

const (
	prefecturesPath = "/api/v1/prefectures"
	compositionPath = "/api/v1/population/composition/perYear"
)

// Client fetches reference and composition data. BaseURL may point at a
// development proxy instead of the RESAS origin.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Verbose    bool
}

var _ stats.Fetcher = (*Client)(nil)

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    trimSlash(baseURL),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// FetchRegions returns the list of prefectures in the order the API lists
// them.
func (c *Client) FetchRegions(ctx context.Context) ([]stats.Region, error) {
	data, err := c.get(ctx, prefecturesPath, nil)
	if err != nil {
		return nil, err
	}
	return parseRegions(data)
}

// FetchComposition returns the population composition per year of one
// prefecture.
func (c *Client) FetchComposition(ctx context.Context, code int) (stats.Composition, error) {
	q := url.Values{}
	q.Set("prefCode", strconv.Itoa(code))
	q.Set("cityCode", "-")

	data, err := c.get(ctx, compositionPath, q)
	if err != nil {
		return stats.Composition{}, err
	}
	comp, err := parseComposition(data)
	if err != nil {
		return stats.Composition{}, err
	}
	comp.Region = code
	return comp, nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
