package clockify

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Version is sent in the User-Agent header.
var Version = "dev"

// KeySource yields the API key for each request. A missing key is not an
// error: the request goes out unauthenticated and the service rejects it.
type KeySource interface {
	Get() (key string, ok bool, err error)
}

// Client implements ports.Tracker using the Clockify REST API v1.
type Client struct {
	baseURL   string
	keys      KeySource
	http      *http.Client
	pacer     *Pacer
	userAgent string
	now       func() time.Time
	log       *slog.Logger
	maxPages  int
}

// Option mutates the Client during NewClient.
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithPacer replaces the default pacer. Share one Pacer per process.
func WithPacer(p *Pacer) Option {
	return func(c *Client) error {
		if p == nil {
			return errors.New("nil pacer")
		}
		c.pacer = p
		return nil
	}
}

// WithClock overrides the clock used for "now" timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		c.now = now
		return nil
	}
}

// DefaultMinInterval keeps the client well under the service's rate limit.
const DefaultMinInterval = 100 * time.Millisecond

func NewClient(baseURL string, keys KeySource, log *slog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = "https://api.clockify.me/api/v1"
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keys:      keys,
		http:      &http.Client{Timeout: 30 * time.Second},
		pacer:     NewPacer(DefaultMinInterval),
		userAgent: "clockify-cli/" + Version,
		now:       time.Now,
		log:       log,
		maxPages:  entriesMaxPages,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
