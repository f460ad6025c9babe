// Package runctx threads run-scoped identifiers through context.Context so
// every log line emitted by the request core carries them.
package runctx

import (
	"context"

	"github.com/google/uuid"
)

type key string

const (
	RunIDKey    key = "run_id"
	TaskNameKey key = "task"
	RepoKey     key = "repo"
)

var fieldKeys = []key{RunIDKey, TaskNameKey, RepoKey}

// NewRunContext stamps ctx with a fresh run ID.
func NewRunContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, RunIDKey, uuid.New().String())
}

// WithValue adds a single field to ctx.
func WithValue(ctx context.Context, k key, v string) context.Context {
	return context.WithValue(ctx, k, v)
}

// ExtractFields pulls the known fields out of ctx for the logger's context
// extractor. Unset fields are omitted.
func ExtractFields(ctx context.Context) map[string]interface{} {
	fields := make(map[string]interface{})
	for _, k := range fieldKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			fields[string(k)] = v
		}
	}
	return fields
}
