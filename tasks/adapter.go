package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/flowtask/ghlib/github"
	"github.com/flowtask/ghlib/logging"
	"github.com/flowtask/ghlib/metrics"
	"github.com/flowtask/ghlib/runctx"
	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
)

// Adapter is the single execution path behind every task in the catalog: it
// resolves the credential and target, routes the call through the REST or
// GraphQL executor, and projects the outcome into output items.
type Adapter struct {
	rest    *github.Client
	graphql *github.GraphQLClient
	logger  logging.Logger
	scope   tally.Scope
	env     func(string) string
}

func NewAdapter(rest *github.Client, graphql *github.GraphQLClient, logger logging.Logger, scope tally.Scope, env func(string) string) *Adapter {
	return &Adapter{
		rest:    rest,
		graphql: graphql,
		logger:  logger,
		scope:   scope.SubScope(metrics.TaskSubScope),
		env:     env,
	}
}

// Execute runs one task invocation. Failures from the request core pass
// through untouched; callers see the typed error of the failing step.
func (a *Adapter) Execute(ctx context.Context, name string, params Params, inputs []Item) ([]Item, error) {
	spec, ok := Catalog[name]
	if !ok {
		return nil, errors.Errorf("unknown task %q", name)
	}
	ctx = runctx.WithValue(ctx, runctx.TaskNameKey, name)
	taskScope := a.scope.Tagged(map[string]string{metrics.TaskNameTag: name})

	timer := taskScope.Timer(metrics.TaskExecutionLatency).Start()
	defer timer.Stop()

	output, err := a.execute(ctx, spec, params, inputs)
	if err != nil {
		taskScope.Counter(metrics.TaskExecutionFailure).Inc(1)
		return nil, err
	}
	taskScope.Counter(metrics.TaskExecutionSuccess).Inc(1)
	return output, nil
}

func (a *Adapter) execute(ctx context.Context, spec Spec, params Params, inputs []Item) ([]Item, error) {
	if spec.Route == RouteLocal {
		return a.executeLocal(spec, params)
	}

	cred, err := ResolveAuth(params, inputs, a.env)
	if err != nil {
		return nil, err
	}
	coord, err := ResolveRepo(params, inputs, spec.RepoScoped)
	if err != nil {
		return nil, err
	}
	ctx = runctx.WithValue(ctx, runctx.RepoKey, coord.Owner+"/"+coord.Repo)

	resolved, err := a.resolveFields(spec, params, inputs, coord)
	if err != nil {
		return nil, err
	}

	var outcome *github.Outcome
	switch spec.Route {
	case RouteREST:
		outcome, err = a.executeREST(ctx, spec, params, cred, coord, resolved)
	case RouteGraphQL:
		outcome, err = a.executeGraphQL(ctx, spec, params, inputs, cred, coord, resolved)
	default:
		return nil, errors.Errorf("task %q has unsupported route %q", spec.Name, spec.Route)
	}
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "task completed", map[string]interface{}{
		"task":     spec.Name,
		"status":   outcome.Status,
		"attempts": outcome.Attempts,
	})
	return buildOutput(spec, outcome, coord, resolved)
}

// executeLocal covers the two producer tasks that start a chain without a
// network call.
func (a *Adapter) executeLocal(spec Spec, params Params) ([]Item, error) {
	switch spec.Name {
	case "Auth":
		cred, err := github.ResolveCredential(params.String("token"), nil, a.env)
		if err != nil {
			return nil, err
		}
		return []Item{Auth{Credential: cred}}, nil
	case "Repo":
		if params.String("owner") == "" {
			return nil, github.MissingTargetError{Field: "owner"}
		}
		if params.String("repo") == "" {
			return nil, github.MissingTargetError{Field: "repo"}
		}
		coord := github.RepoCoordinate{
			Owner:      params.String("owner"),
			Repo:       params.String("repo"),
			APIBase:    params.String("api_base"),
			APIVersion: params.String("api_version"),
			RetryLimit: params.Int("retry_limit"),
		}
		if ms := params.Int("retry_backoff_ms"); ms != 0 {
			coord.RetryBackoff = msToDuration(ms)
		}
		return []Item{RepoRef{Coordinate: coord.WithDefaults()}}, nil
	}
	return nil, errors.Errorf("unknown local task %q", spec.Name)
}

// resolveFields settles every identifier the spec needs: path placeholders
// and declared required fields, each via the explicit-over-inherited rule.
func (a *Adapter) resolveFields(spec Spec, params Params, inputs []Item, coord github.RepoCoordinate) (map[string]string, error) {
	resolved := map[string]string{
		"owner": coord.Owner,
		"repo":  coord.Repo,
	}
	need := append(spec.placeholders(), spec.Required...)
	if spec.URLField != "" {
		need = append(need, spec.URLField)
	}
	for _, field := range need {
		if resolved[field] != "" {
			continue
		}
		value, err := resolveField(params, inputs, field, true)
		if err != nil {
			return nil, err
		}
		resolved[field] = value
	}
	for _, field := range spec.QueryFields {
		if resolved[field] != "" {
			continue
		}
		value, err := resolveField(params, inputs, field, false)
		if err != nil {
			return nil, err
		}
		if value != "" {
			resolved[field] = value
		}
	}
	return resolved, nil
}

func (a *Adapter) executeREST(ctx context.Context, spec Spec, params Params, cred github.Credential, coord github.RepoCoordinate, resolved map[string]string) (*github.Outcome, error) {
	method := spec.Method
	path := spec.Path
	if spec.Dynamic {
		if method = params.String("method"); method == "" {
			method = "GET"
		}
		path = resolved["path"]
	}

	target, err := a.buildURL(spec, path, coord, resolved)
	if err != nil {
		return nil, err
	}

	body, contentType, err := a.buildBody(spec, params)
	if err != nil {
		return nil, err
	}

	return a.rest.Do(ctx, github.Request{
		Method:       method,
		URL:          target,
		Credential:   cred,
		Body:         body,
		ContentType:  contentType,
		Accept:       spec.Accept,
		RetryLimit:   coord.RetryLimit,
		RetryBackoff: coord.RetryBackoff,
	})
}

func (a *Adapter) buildURL(spec Spec, path string, coord github.RepoCoordinate, resolved map[string]string) (string, error) {
	var target string
	if spec.URLField != "" {
		base := resolved[spec.URLField]
		if base == "" {
			return "", github.MissingTargetError{Field: spec.URLField}
		}
		// Strip the {?name,label} template suffix the server appends.
		if i := strings.IndexByte(base, '{'); i >= 0 {
			base = base[:i]
		}
		target = base
	} else {
		substituted := placeholderPattern.ReplaceAllStringFunc(path, func(match string) string {
			return resolved[strings.Trim(match, "{}")]
		})
		target = strings.TrimRight(coord.APIBase, "/") + "/" + strings.TrimLeft(substituted, "/")
	}

	query := url.Values{}
	for _, field := range spec.QueryFields {
		if v := resolved[field]; v != "" {
			query.Set(field, v)
		}
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target, nil
}

func (a *Adapter) buildBody(spec Spec, params Params) ([]byte, string, error) {
	if spec.RawBody != "" {
		contentType := params.String("content_type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return params.Bytes(spec.RawBody), contentType, nil
	}

	body := map[string]interface{}{}
	for key, value := range spec.Fixed {
		body[key] = value
	}
	for _, field := range spec.Body {
		if value, ok := params.Value(field); ok {
			body[field] = normalize(value)
		}
	}
	if spec.Dynamic {
		if value, ok := params.Value("body"); ok {
			dyn, ok := normalize(value).(map[string]interface{})
			if !ok {
				return nil, "", errors.Errorf("task %q: 'body' must be a mapping", spec.Name)
			}
			body = dyn
		}
	}
	if len(body) == 0 {
		return nil, "", nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", errors.Wrap(err, "encoding request body")
	}
	return payload, "application/json", nil
}

func (a *Adapter) executeGraphQL(ctx context.Context, spec Spec, params Params, inputs []Item, cred github.Credential, coord github.RepoCoordinate, resolved map[string]string) (*github.Outcome, error) {
	query := spec.Query
	variables := map[string]interface{}{}

	if spec.Dynamic {
		query = resolved["query"]
		if value, ok := params.Value("variables"); ok {
			vars, ok := normalize(value).(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("task %q: 'variables' must be a mapping", spec.Name)
			}
			variables = vars
		}
	} else {
		for variable, field := range spec.Vars {
			if value, ok := params.Value(field); ok {
				variables[variable] = normalize(value)
				continue
			}
			if v := resolved[field]; v != "" {
				variables[variable] = v
				continue
			}
			if v, err := resolveField(params, inputs, field, false); err == nil && v != "" {
				variables[variable] = v
				continue
			}
			if fallback, ok := spec.Defaults[field]; ok {
				variables[variable] = fallback
			}
		}
	}

	return a.graphql.Execute(ctx, query, variables, cred, coord.RetryLimit, coord.RetryBackoff)
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// normalize rewrites yaml.v2's map[interface{}]interface{} values into
// JSON-encodable maps.
func normalize(value interface{}) interface{} {
	switch t := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			out[fmt.Sprintf("%v", k)] = normalize(v)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			out[k] = normalize(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, v := range t {
			out[i] = normalize(v)
		}
		return out
	}
	return value
}
