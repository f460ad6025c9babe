package github

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

// Outcome is the result of one logical call after all attempts: the final
// status, the raw body, the response headers of interest, and how many
// attempts it took. It lives only for the duration of one call's processing.
type Outcome struct {
	Status   int
	Body     []byte
	Header   http.Header
	Attempts int

	// Extracted for observability, populated on success and failure alike.
	ETag               string
	RateLimitRemaining int
	RateLimitReset     int64
}

func newOutcome(status int, body []byte, header http.Header, attempts int) *Outcome {
	o := &Outcome{
		Status:             status,
		Body:               body,
		Header:             header,
		Attempts:           attempts,
		ETag:               header.Get("ETag"),
		RateLimitRemaining: -1,
	}
	if raw := header.Get("X-RateLimit-Remaining"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			o.RateLimitRemaining = n
		}
	}
	if raw := header.Get("X-RateLimit-Reset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			o.RateLimitReset = n
		}
	}
	return o
}

// Decode unmarshals the body into v. The core performs no schema-specific
// parsing; callers own the shape.
func (o *Outcome) Decode(v interface{}) error {
	if err := json.Unmarshal(o.Body, v); err != nil {
		return errors.Wrap(err, "decoding response body")
	}
	return nil
}

// Fields decodes the body as a generic JSON object.
func (o *Outcome) Fields() (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := o.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
