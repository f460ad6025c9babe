package github

import (
	"fmt"
	"strings"
)

// UnauthenticatedError is returned when no credential could be resolved from
// an explicit parameter, an upstream auth item, or the environment.
type UnauthenticatedError struct{}

func (e UnauthenticatedError) Error() string {
	return "no github token found: set " + TokenEnvVar + " or supply a token parameter"
}

// MissingTargetError is returned when a required identifier is absent from
// both the explicit parameters and any inbound reference.
type MissingTargetError struct {
	Field string
}

func (e MissingTargetError) Error() string {
	return fmt.Sprintf("missing required field %q: not set as a parameter and not carried by any input", e.Field)
}

// TransportError is a connection-level failure: the request never produced
// an HTTP response. Retryable up to the limit like a 5xx.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestFailedError is a terminal non-2xx REST response. The executor never
// retries these; the raw response body is carried for the caller.
type RequestFailedError struct {
	Status int
	Body   []byte
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("github api error %d: %s", e.Status, string(e.Body))
}

// RetryExhaustedError is returned when a retryable condition persisted past
// the retry limit. LastErr holds the final attempt's failure.
type RetryExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	if e.LastErr != nil {
		return fmt.Sprintf("request failed after %d attempts: %s", e.Attempts, e.LastErr.Error())
	}
	return fmt.Sprintf("request failed after %d attempts", e.Attempts)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.LastErr
}

// CancelledError is returned when the surrounding run is cancelled while a
// request or a backoff sleep is in flight.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return "request cancelled: " + e.Err.Error()
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

// GraphQLErrorResponse is an HTTP 200 response whose errors array is
// non-empty. Semantic failures are terminal and never retried.
type GraphQLErrorResponse struct {
	Errors []GraphQLProblem
}

// GraphQLProblem is a single entry of a GraphQL errors array.
type GraphQLProblem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *GraphQLErrorResponse) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, p := range e.Errors {
		msgs = append(msgs, p.Message)
	}
	return "graphql error: " + strings.Join(msgs, "; ")
}
