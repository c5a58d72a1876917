package clockify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testKey = "AbCdEf0123456789AbCdEf0123456789"

type staticKey struct {
	key string
	err error
}

func (s staticKey) Get() (string, bool, error) { return s.key, s.key != "", s.err }

// fakeClock advances only when the pacer sleeps.
type fakeClock struct {
	mu    sync.Mutex
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
	return nil
}

func newFakePacer(interval time.Duration) (*Pacer, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)}
	p := NewPacer(interval)
	p.now = clk.Now
	p.sleep = clk.Sleep
	return p, clk
}

type recorded struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// fakeService records every request and answers with handler.
type fakeService struct {
	mu       sync.Mutex
	requests []recorded
}

func (f *fakeService) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func newFakeService(t *testing.T, handler http.HandlerFunc) (*fakeService, *httptest.Server) {
	t.Helper()
	fs := &fakeService{}
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		fs.requests = append(fs.requests, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   string(b),
		})
		fs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(hs.Close)
	return fs, hs
}

func newTestClient(t *testing.T, baseURL string, key string, opts ...Option) *Client {
	t.Helper()
	p, _ := newFakePacer(DefaultMinInterval)
	opts = append([]Option{WithPacer(p)}, opts...)
	c, err := NewClient(baseURL, staticKey{key: key}, slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
