package clockify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"clockify-cli/internal/credentials"
	"clockify-cli/internal/domain"
)

const maxServiceMessage = 200

// do runs one request through the pipeline: key pre-flight, pacing,
// transport and classification. Every failure it returns is a *domain.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	key, hasKey, err := c.keys.Get()
	if err != nil {
		return domain.NewError(domain.KindGeneric, "could not read the stored API key", err)
	}
	if hasKey {
		if err := credentials.ValidateKey(key); err != nil {
			return err
		}
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return domain.NewError(domain.KindGeneric, "could not encode the request", err)
		}
		payload = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return domain.NewError(domain.KindGeneric, "could not build the request", err)
	}
	if hasKey {
		req.Header.Set("X-Api-Key", key)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	dispatched, err := c.pacer.Wait(ctx)
	if err != nil {
		return classifyTransport(err)
	}
	reqID := uuid.NewString()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("request_id", reqID),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return classifyTransport(err)
	}
	defer resp.Body.Close()
	c.log.Debug("request completed",
		slog.String("request_id", reqID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Bool("authenticated", hasKey),
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(dispatched)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return classifyStatus(resp.StatusCode, raw)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewError(domain.KindGeneric, "unexpected response from the service", err)
	}
	return nil
}

// classifyTransport maps failures that happen before a response arrives.
func classifyTransport(err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return domain.NewError(domain.KindGeneric, "the request timed out", err)
	case errors.Is(err, context.Canceled):
		return domain.NewError(domain.KindGeneric, "the request was cancelled", err)
	}
	return domain.NewError(domain.KindGeneric, "could not reach the service", err)
}

// classifyStatus maps a non-2xx response to exactly one error kind.
func classifyStatus(status int, body []byte) error {
	cause := fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
	switch {
	case status == http.StatusUnauthorized:
		return domain.NewError(domain.KindAuthenticationFailed, domain.ErrAuthenticationFailed.Message, cause)
	case status == http.StatusForbidden:
		return domain.NewError(domain.KindAccessDenied, domain.ErrAccessDenied.Message, cause)
	case status == http.StatusNotFound:
		return domain.NewError(domain.KindNotFound, domain.ErrNotFound.Message, cause)
	case status == http.StatusTooManyRequests:
		return domain.NewError(domain.KindRateLimited, domain.ErrRateLimited.Message, cause)
	case status >= 500:
		return domain.NewError(domain.KindServerError, domain.ErrServerError.Message, cause)
	}
	msg := fmt.Sprintf("request rejected by the service (HTTP %d)", status)
	if m := serviceMessage(body); m != "" {
		msg += ": " + m
	}
	return domain.NewError(domain.KindGeneric, msg, cause)
}

// serviceMessage extracts the "message" field of an error body, bounded and
// stripped of anything that is not printable.
func serviceMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	m := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, strings.TrimSpace(e.Message))
	if utf8.RuneCountInString(m) > maxServiceMessage {
		m = string([]rune(m)[:maxServiceMessage]) + "..."
	}
	return m
}
