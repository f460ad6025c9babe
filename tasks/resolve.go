package tasks

import (
	"time"

	"github.com/flowtask/ghlib/github"
)

// FindCredential returns the credential carried by an upstream auth item,
// or nil when no such item is present.
func FindCredential(items []Item) *github.Credential {
	for _, it := range items {
		if auth, ok := it.(Auth); ok && auth.Credential.Token != "" {
			cred := auth.Credential
			return &cred
		}
	}
	return nil
}

// ResolveAuth produces the effective credential for a task: explicit token
// parameter, then upstream auth item, then the environment default.
func ResolveAuth(params Params, items []Item, env func(string) string) (github.Credential, error) {
	return github.ResolveCredential(params.String("token"), FindCredential(items), env)
}

// FindRepo returns the repo coordinate carried by an upstream repo item.
func FindRepo(items []Item) (github.RepoCoordinate, bool) {
	for _, it := range items {
		if ref, ok := it.(RepoRef); ok {
			return ref.Coordinate, true
		}
	}
	return github.RepoCoordinate{}, false
}

// ResolveRepo reconciles explicit owner/repo parameters against an inbound
// repo item field by field; explicit always wins. Non-repo-scoped callers
// get defaulted coordinates when neither side supplies anything.
func ResolveRepo(params Params, items []Item, required bool) (github.RepoCoordinate, error) {
	inbound, found := FindRepo(items)

	coord := inbound
	coord.Owner = github.ResolveOptional(params.String("owner"), inbound.Owner)
	coord.Repo = github.ResolveOptional(params.String("repo"), inbound.Repo)
	coord.APIBase = github.ResolveOptional(params.String("api_base"), inbound.APIBase)
	coord.APIVersion = github.ResolveOptional(params.String("api_version"), inbound.APIVersion)
	if n := params.Int("retry_limit"); n != 0 {
		coord.RetryLimit = n
	}
	if ms := params.Int("retry_backoff_ms"); ms != 0 {
		coord.RetryBackoff = time.Duration(ms) * time.Millisecond
	}

	if required && !found && (coord.Owner == "" || coord.Repo == "") {
		if coord.Owner == "" {
			return github.RepoCoordinate{}, github.MissingTargetError{Field: "owner"}
		}
		return github.RepoCoordinate{}, github.MissingTargetError{Field: "repo"}
	}
	return coord.WithDefaults(), nil
}

// resolveField applies the per-field precedence rule for one identifier:
// the explicit parameter when present, otherwise the first inbound item
// contributing that field.
func resolveField(params Params, items []Item, field string, required bool) (string, error) {
	if v := params.String(field); v != "" {
		return v, nil
	}
	for _, it := range items {
		if v := it.Placeholders()[field]; v != "" {
			return v, nil
		}
	}
	if required {
		return "", github.MissingTargetError{Field: field}
	}
	return "", nil
}
