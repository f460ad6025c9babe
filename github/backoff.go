package github

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

const (
	ReasonRetryLimitExceeded = "retry_limit_exceeded"
	ReasonRetryAfter         = "retry_after"
	ReasonRateLimited        = "rate_limited"
	ReasonServerError        = "server_error"
	ReasonTransportError     = "transport_error"
	ReasonTerminalStatus     = "terminal_status"
)

// Decision is the outcome of one backoff-policy evaluation. Pure value,
// recomputed per attempt.
type Decision struct {
	Retry  bool
	Wait   time.Duration
	Reason string
}

// Decide classifies one attempt's result and computes the wait before the
// next attempt. status 0 means the request never produced a response
// (connection-level failure), which is always retryable up to the limit.
//
// Retryable statuses are 429, 403 carrying a rate-limit-exhausted signal, and
// 5xx. A Retry-After header on a retryable response sets the wait exactly;
// otherwise the wait is base * 2^(attempt-1) plus a jitter in [0, base) so
// concurrent callers don't retry in lockstep.
func Decide(attempt int, status int, header http.Header, retryLimit int, baseBackoff time.Duration) Decision {
	if baseBackoff <= 0 {
		baseBackoff = DefaultRetryBackoff
	}
	reason, retryable := classify(status, header)
	if !retryable {
		return Decision{Reason: ReasonTerminalStatus}
	}
	if attempt >= retryLimit {
		return Decision{Reason: ReasonRetryLimitExceeded}
	}
	if secs, ok := retryAfter(header); ok {
		return Decision{Retry: true, Wait: secs, Reason: ReasonRetryAfter}
	}
	wait := baseBackoff*(1<<(attempt-1)) + time.Duration(rand.Int63n(int64(baseBackoff)))
	return Decision{Retry: true, Wait: wait, Reason: reason}
}

func classify(status int, header http.Header) (string, bool) {
	switch {
	case status == 0:
		return ReasonTransportError, true
	case status == http.StatusTooManyRequests:
		return ReasonRateLimited, true
	case status == http.StatusForbidden && rateLimitExhausted(header):
		return ReasonRateLimited, true
	case status >= 500:
		return ReasonServerError, true
	}
	return ReasonTerminalStatus, false
}

// A plain 403 is an authorization failure; it only means "rate limited" when
// the response says so. See the GitHub rate-limit documentation for the
// secondary-limit signals checked here.
func rateLimitExhausted(header http.Header) bool {
	if header.Get("Retry-After") != "" {
		return true
	}
	return header.Get("X-RateLimit-Remaining") == "0"
}

func retryAfter(header http.Header) (time.Duration, bool) {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
