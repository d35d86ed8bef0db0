package github

import (
	"fmt"
	"net/http"
	"strings"
)

// originGuard refuses any request that is not a GET to the configured HTTPS
// origin. It runs for every hop, so a redirect to another origin is refused
// as well.
type originGuard struct {
	host string
	base http.RoundTripper
}

func newOriginGuard(host string, base http.RoundTripper) *originGuard {
	if base == nil {
		base = http.DefaultTransport
	}
	return &originGuard{host: host, base: base}
}

func (g *originGuard) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := g.check(req); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	return g.base.RoundTrip(req)
}

func (g *originGuard) check(req *http.Request) error {
	if req.Method != http.MethodGet {
		return fmt.Errorf("%w: method %s not allowed", ErrForeignOrigin, req.Method)
	}
	if req.URL == nil || req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", ErrForeignOrigin, req.URL)
	}
	if !strings.EqualFold(req.URL.Host, g.host) {
		return fmt.Errorf("%w: host %q", ErrForeignOrigin, req.URL.Host)
	}
	return nil
}
