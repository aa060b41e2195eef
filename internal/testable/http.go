package testable

import (
	"net/http"
	"time"
)

// HTTPDoer is the subset of *http.Client used for remote sources and
// route lookups.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPClient returns an *http.Client with the given timeout.
func DefaultHTTPClient(timeout time.Duration) HTTPDoer {
	return &http.Client{Timeout: timeout}
}

// HTTPDoerFunc adapts a function to HTTPDoer.
type HTTPDoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f HTTPDoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
