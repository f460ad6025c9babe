package github_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/flowtask/ghlib/github"
	"github.com/stretchr/testify/assert"
)

func TestDecide_RetryableStatuses(t *testing.T) {
	cases := []struct {
		description string
		status      int
		header      http.Header
	}{
		{
			description: "too many requests",
			status:      http.StatusTooManyRequests,
		},
		{
			description: "forbidden with exhausted rate limit",
			status:      http.StatusForbidden,
			header:      http.Header{"X-Ratelimit-Remaining": []string{"0"}},
		},
		{
			description: "forbidden with retry after",
			status:      http.StatusForbidden,
			header:      http.Header{"Retry-After": []string{"1"}},
		},
		{
			description: "internal server error",
			status:      http.StatusInternalServerError,
		},
		{
			description: "bad gateway",
			status:      http.StatusBadGateway,
		},
		{
			description: "transport failure",
			status:      0,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			for attempt := 1; attempt < 3; attempt++ {
				decision := github.Decide(attempt, c.status, c.header, 3, 100*time.Millisecond)
				assert.True(t, decision.Retry)
				assert.GreaterOrEqual(t, decision.Wait, time.Duration(0))
			}

			decision := github.Decide(3, c.status, c.header, 3, 100*time.Millisecond)
			assert.False(t, decision.Retry)
			assert.Equal(t, github.ReasonRetryLimitExceeded, decision.Reason)
		})
	}
}

func TestDecide_TerminalStatuses(t *testing.T) {
	cases := []struct {
		description string
		status      int
	}{
		{description: "bad request", status: http.StatusBadRequest},
		{description: "unauthorized", status: http.StatusUnauthorized},
		{description: "plain forbidden", status: http.StatusForbidden},
		{description: "not found", status: http.StatusNotFound},
		{description: "unprocessable entity", status: http.StatusUnprocessableEntity},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			decision := github.Decide(1, c.status, http.Header{}, 3, 100*time.Millisecond)
			assert.False(t, decision.Retry)
			assert.Equal(t, github.ReasonTerminalStatus, decision.Reason)
		})
	}
}

func TestDecide_RetryAfterWinsOverBackoff(t *testing.T) {
	header := http.Header{"Retry-After": []string{"7"}}

	for _, base := range []time.Duration{time.Millisecond, time.Second, time.Minute} {
		decision := github.Decide(1, http.StatusTooManyRequests, header, 3, base)
		assert.True(t, decision.Retry)
		assert.Equal(t, 7*time.Second, decision.Wait)
		assert.Equal(t, github.ReasonRetryAfter, decision.Reason)
	}
}

func TestDecide_ExponentialWaitWithJitter(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 1; attempt <= 4; attempt++ {
		lower := base * (1 << (attempt - 1))
		upper := lower + base

		// Jitter is random; sample enough to catch an out-of-range wait.
		for i := 0; i < 50; i++ {
			decision := github.Decide(attempt, http.StatusInternalServerError, http.Header{}, 10, base)
			assert.True(t, decision.Retry)
			assert.GreaterOrEqual(t, decision.Wait, lower)
			assert.Less(t, decision.Wait, upper)
		}
	}
}

func TestDecide_LimitBeatsRetryAfter(t *testing.T) {
	header := http.Header{"Retry-After": []string{"2"}}

	decision := github.Decide(3, http.StatusTooManyRequests, header, 3, time.Second)
	assert.False(t, decision.Retry)
	assert.Equal(t, github.ReasonRetryLimitExceeded, decision.Reason)
}
