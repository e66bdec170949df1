package resas

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/anrid/japan-population/pkg/stats"
)

// maxBody caps how much of a response is read; RESAS documents are small.
const maxBody = 4 << 20

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	if c.Verbose {
		log.Printf("Download: '%s'", u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %v: %w", path, err, stats.ErrNetworkFailure)
	}
	req.Header.Set("X-API-KEY", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("GET %s: %v: %w", path, err, stats.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %v: %w", path, err, stats.ErrNetworkFailure)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s: %w", path, resp.Status, stats.ErrNetworkFailure)
	}
	return data, nil
}
