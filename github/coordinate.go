package github

import "time"

const (
	DefaultAPIBase    = "https://api.github.com"
	DefaultAPIVersion = "2022-11-28"

	DefaultRetryLimit   = 3
	DefaultRetryBackoff = 500 * time.Millisecond
)

// RepoCoordinate scopes repo-level calls: which repository to act on, which
// API host to talk to, and how persistent to be about it. Built once per run
// and threaded read-only into every repo-scoped call.
type RepoCoordinate struct {
	Owner        string
	Repo         string
	APIBase      string
	APIVersion   string
	RetryLimit   int
	RetryBackoff time.Duration
}

// WithDefaults fills the zero-valued fields of c.
func (c RepoCoordinate) WithDefaults() RepoCoordinate {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.RetryLimit == 0 {
		c.RetryLimit = DefaultRetryLimit
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	return c
}

// Resolve picks one field of a call's target: the explicit parameter when
// present, the inbound reference's value otherwise. Neither present is a
// MissingTargetError naming the field. Applied independently per field, so a
// task can override one coordinate while inheriting the rest.
func Resolve[T comparable](explicit, inbound T, field string) (T, error) {
	var zero T
	if explicit != zero {
		return explicit, nil
	}
	if inbound != zero {
		return inbound, nil
	}
	return zero, MissingTargetError{Field: field}
}

// ResolveOptional is Resolve without the requirement: the zero value is
// returned when both sides are absent.
func ResolveOptional[T comparable](explicit, inbound T) T {
	var zero T
	if explicit != zero {
		return explicit
	}
	return inbound
}
