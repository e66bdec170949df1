package stats

import (
	"errors"
	"fmt"
)

var (
	ErrNetworkFailure    = errors.New("network failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnknownRegion     = errors.New("unknown region")
	ErrInvalidMetric     = errors.New("invalid metric")
)

// RegionError is a failed composition fetch for a single region.
type RegionError struct {
	Code int
	Name string
	Err  error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("%s (%d): %v", e.Name, e.Code, e.Err)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}
