// Package checker performs remote availability lookups.
package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/verte-zerg/namehunt/internal/model"
)

const requestTimeout = 10 * time.Second

// Client checks candidate availability against a remote endpoint via
// GET <base-url>/<candidate>.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sink       model.EventSink
}

// New returns a Client for the given base URL. Transport failures and
// unexpected status codes are reported through the sink.
func New(baseURL string, sink model.EventSink) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		sink:       sink,
	}
}

// Check classifies the remote status of a candidate:
// 404 is available, 2xx is taken, 403/429 is throttled, cancellation is
// aborted, and everything else is a transient error.
func (c *Client) Check(ctx context.Context, candidate string) model.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(candidate), nil)
	if err != nil {
		c.emitErr(fmt.Sprintf("failed to build request for %q: %v", candidate, err))
		return model.OutcomeTransient
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return model.OutcomeAborted
		}
		c.emitErr(fmt.Sprintf("check failed for %q: %v", candidate, err))
		return model.OutcomeTransient
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if ctx.Err() != nil {
		return model.OutcomeAborted
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.OutcomeAvailable
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return model.OutcomeTaken
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return model.OutcomeThrottled
	default:
		c.emitErr(fmt.Sprintf("unexpected status %d for %q", resp.StatusCode, candidate))
		return model.OutcomeTransient
	}
}

func (c *Client) emitErr(text string) {
	c.sink.Emit(model.Event{Level: model.LevelError, Text: text, At: time.Now()})
}
