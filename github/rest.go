package github

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/flowtask/ghlib/logging"
	"github.com/flowtask/ghlib/metrics"
	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
)

const acceptJSON = "application/vnd.github+json"

// Request is one logical REST call. The body is an opaque byte payload plus
// a content type; encoding (base64 file contents, raw asset bytes) is the
// caller's concern.
type Request struct {
	Method      string
	URL         string
	Credential  Credential
	Body        []byte
	ContentType string
	Accept      string

	RetryLimit   int
	RetryBackoff time.Duration
}

// Client executes REST calls against the GitHub API with bounded retries.
// Attempts within one call are strictly serial; each must observe the prior
// attempt's outcome before the policy can decide.
type Client struct {
	transport  *http.Client
	logger     logging.Logger
	scope      tally.Scope
	apiVersion string
}

func NewClient(transport *http.Client, logger logging.Logger, scope tally.Scope, apiVersion string) *Client {
	if transport == nil {
		transport = http.DefaultClient
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{
		transport:  transport,
		logger:     logger,
		scope:      scope.SubScope(metrics.RestSubScope),
		apiVersion: apiVersion,
	}
}

// Do runs the attempt loop for one call: issue, await, classify, then either
// sleep and reissue or return. Terminal non-2xx responses surface as
// RequestFailedError; retryable conditions that persist past the limit
// surface as RetryExhaustedError. Both the request wait and the backoff
// sleep honor ctx cancellation.
//
// The outcome is returned alongside a failure whenever a response was
// received, so rate-limit headers stay observable even on errors.
func (c *Client) Do(ctx context.Context, req Request) (*Outcome, error) {
	if req.RetryLimit == 0 {
		req.RetryLimit = DefaultRetryLimit
	}
	if req.RetryBackoff == 0 {
		req.RetryBackoff = DefaultRetryBackoff
	}

	timer := c.scope.Timer(metrics.RequestLatencyMetric).Start()
	defer timer.Stop()
	c.scope.Counter(metrics.RequestMetric).Inc(1)

	var lastErr error
	var lastOutcome *Outcome
	for attempt := 1; ; attempt++ {
		status, body, header, err := c.attempt(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &CancelledError{Err: ctx.Err()}
			}
			lastErr = &TransportError{Err: err}
			lastOutcome = nil
			c.logger.WarnContext(ctx, "transport error", map[string]interface{}{
				"method":  req.Method,
				"url":     req.URL,
				"attempt": attempt,
				"error":   err.Error(),
			})
		} else {
			lastOutcome = newOutcome(status, body, header, attempt)
			if status < 300 {
				return lastOutcome, nil
			}
			lastErr = &RequestFailedError{Status: status, Body: body}
		}

		decision := Decide(attempt, statusOf(lastErr), header, req.RetryLimit, req.RetryBackoff)
		if !decision.Retry {
			if decision.Reason == ReasonRetryLimitExceeded {
				c.scope.Counter(metrics.RequestExhaustedMetric).Inc(1)
				return lastOutcome, &RetryExhaustedError{Attempts: attempt, LastErr: lastErr}
			}
			c.scope.Counter(metrics.RequestFailureMetric).Inc(1)
			return lastOutcome, lastErr
		}

		if decision.Reason == ReasonRateLimited || decision.Reason == ReasonRetryAfter {
			c.scope.Counter(metrics.RequestRateLimitedMetric).Inc(1)
		}
		c.scope.Counter(metrics.RequestRetryMetric).Inc(1)
		c.logger.WarnContext(ctx, "retrying request", map[string]interface{}{
			"method":  req.Method,
			"url":     req.URL,
			"attempt": attempt,
			"status":  statusOf(lastErr),
			"reason":  decision.Reason,
			"wait":    decision.Wait.String(),
		})
		if err := sleep(ctx, decision.Wait); err != nil {
			return nil, err
		}
	}
}

func (c *Client) attempt(ctx context.Context, req Request) (int, []byte, http.Header, error) {
	var payload io.Reader
	if req.Body != nil {
		payload = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, payload)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "building request")
	}

	httpReq.Header.Set("Authorization", req.Credential.header())
	httpReq.Header.Set("X-GitHub-Api-Version", c.apiVersion)
	accept := req.Accept
	if accept == "" {
		accept = acceptJSON
	}
	httpReq.Header.Set("Accept", accept)
	if req.Body != nil && req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	resp, err := c.transport.Do(httpReq)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "reading response body")
	}
	return resp.StatusCode, body, resp.Header, nil
}

// sleep waits for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return &CancelledError{Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}

func statusOf(err error) int {
	var failed *RequestFailedError
	if errors.As(err, &failed) {
		return failed.Status
	}
	return 0
}
