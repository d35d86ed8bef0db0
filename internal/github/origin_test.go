package github

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	calls int
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("ok")),
		Request:    req,
	}, nil
}

func TestOriginGuard(t *testing.T) {
	t.Parallel()

	newRequest := func(t *testing.T, method, rawURL string) *http.Request {
		t.Helper()
		req, err := http.NewRequest(method, rawURL, nil)
		require.NoError(t, err)
		return req
	}

	t.Run("passes GET requests to the API origin", func(t *testing.T) {
		base := &recordingTransport{}
		guard := newOriginGuard("api.github.com", base)

		resp, err := guard.RoundTrip(newRequest(t, http.MethodGet, "https://api.github.com/repos/a/b/commits/main"))
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, 1, base.calls)
	})

	t.Run("refuses plain http", func(t *testing.T) {
		base := &recordingTransport{}
		guard := newOriginGuard("api.github.com", base)

		_, err := guard.RoundTrip(newRequest(t, http.MethodGet, "http://api.github.com/repos/a/b/commits/main"))
		require.ErrorIs(t, err, ErrForeignOrigin)
		require.Zero(t, base.calls)
	})

	t.Run("refuses another host", func(t *testing.T) {
		base := &recordingTransport{}
		guard := newOriginGuard("api.github.com", base)

		_, err := guard.RoundTrip(newRequest(t, http.MethodGet, "https://evil.example/repos/a/b/commits/main"))
		require.ErrorIs(t, err, ErrForeignOrigin)
		require.Zero(t, base.calls)
	})

	t.Run("refuses non-GET methods", func(t *testing.T) {
		base := &recordingTransport{}
		guard := newOriginGuard("api.github.com", base)

		_, err := guard.RoundTrip(newRequest(t, http.MethodPost, "https://api.github.com/repos/a/b/git/refs"))
		require.ErrorIs(t, err, ErrForeignOrigin)
		require.Zero(t, base.calls)
	})
}
