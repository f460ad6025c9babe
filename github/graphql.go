package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// GraphQLClient executes GraphQL queries and mutations through the REST
// client's transport and retry policy. Discussions and other GraphQL-only
// surfaces route through here.
type GraphQLClient struct {
	rest    *Client
	apiBase string
}

func NewGraphQLClient(rest *Client, apiBase string) *GraphQLClient {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &GraphQLClient{rest: rest, apiBase: apiBase}
}

type graphQLEnvelope struct {
	Data   json.RawMessage  `json:"data"`
	Errors []GraphQLProblem `json:"errors"`
}

// Execute posts {query, variables} to the GraphQL endpoint. Transport and
// rate-limit conditions retry exactly as REST calls do; an HTTP 200 carrying
// a non-empty errors array is a terminal GraphQLErrorResponse with no retry.
// On success the outcome body holds the response's data object.
func (c *GraphQLClient) Execute(ctx context.Context, query string, variables map[string]interface{}, cred Credential, retryLimit int, retryBackoff time.Duration) (*Outcome, error) {
	payload := map[string]interface{}{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encoding graphql payload")
	}

	outcome, err := c.rest.Do(ctx, Request{
		Method:       http.MethodPost,
		URL:          strings.TrimRight(c.apiBase, "/") + "/graphql",
		Credential:   cred,
		Body:         body,
		ContentType:  "application/json",
		RetryLimit:   retryLimit,
		RetryBackoff: retryBackoff,
	})
	if err != nil {
		return outcome, err
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(outcome.Body, &envelope); err != nil {
		return nil, errors.Wrap(err, "decoding graphql response")
	}
	if len(envelope.Errors) > 0 {
		return nil, &GraphQLErrorResponse{Errors: envelope.Errors}
	}
	outcome.Body = envelope.Data
	return outcome, nil
}
