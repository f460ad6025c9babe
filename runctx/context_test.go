package runctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunContext(t *testing.T) {
	ctx := NewRunContext(context.Background())

	runID, ok := ctx.Value(RunIDKey).(string)
	require.True(t, ok)
	_, err := uuid.Parse(runID)
	assert.NoError(t, err)

	// Two runs never share an ID.
	other := NewRunContext(context.Background())
	assert.NotEqual(t, runID, other.Value(RunIDKey))
}

func TestExtractFields(t *testing.T) {
	ctx := NewRunContext(context.Background())
	ctx = WithValue(ctx, TaskNameKey, "issues.Create")
	ctx = WithValue(ctx, RepoKey, "octo/hello")

	fields := ExtractFields(ctx)
	assert.Equal(t, "issues.Create", fields["task"])
	assert.Equal(t, "octo/hello", fields["repo"])
	assert.Contains(t, fields, "run_id")
}

func TestExtractFields_UnsetFieldsOmitted(t *testing.T) {
	fields := ExtractFields(context.Background())
	assert.Empty(t, fields)

	ctx := WithValue(context.Background(), RepoKey, "octo/hello")
	assert.Equal(t, map[string]interface{}{"repo": "octo/hello"}, ExtractFields(ctx))
}
