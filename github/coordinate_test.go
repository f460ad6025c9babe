package github_test

import (
	"testing"
	"time"

	"github.com/flowtask/ghlib/github"
	"github.com/stretchr/testify/assert"
)

func TestResolve_ExplicitWins(t *testing.T) {
	number, err := github.Resolve(42, 7, "number")
	assert.NoError(t, err)
	assert.Equal(t, 42, number)
}

func TestResolve_InboundWhenNoExplicit(t *testing.T) {
	number, err := github.Resolve(0, 7, "number")
	assert.NoError(t, err)
	assert.Equal(t, 7, number)
}

func TestResolve_NeitherPresent(t *testing.T) {
	_, err := github.Resolve(0, 0, "number")
	assert.Equal(t, github.MissingTargetError{Field: "number"}, err)
	assert.Contains(t, err.Error(), "number")
}

func TestResolve_PerFieldIndependence(t *testing.T) {
	// A task may override one field while inheriting another.
	state, err := github.Resolve("closed", "open", "state")
	assert.NoError(t, err)
	assert.Equal(t, "closed", state)

	number, err := github.Resolve(0, 7, "number")
	assert.NoError(t, err)
	assert.Equal(t, 7, number)
}

func TestRepoCoordinate_WithDefaults(t *testing.T) {
	coord := github.RepoCoordinate{Owner: "octo", Repo: "hello"}.WithDefaults()

	assert.Equal(t, github.DefaultAPIBase, coord.APIBase)
	assert.Equal(t, github.DefaultAPIVersion, coord.APIVersion)
	assert.Equal(t, 3, coord.RetryLimit)
	assert.Equal(t, 500*time.Millisecond, coord.RetryBackoff)
}

func TestRepoCoordinate_WithDefaultsKeepsExplicit(t *testing.T) {
	coord := github.RepoCoordinate{
		Owner:        "octo",
		Repo:         "hello",
		APIBase:      "https://ghe.example.com/api/v3",
		RetryLimit:   5,
		RetryBackoff: time.Second,
	}.WithDefaults()

	assert.Equal(t, "https://ghe.example.com/api/v3", coord.APIBase)
	assert.Equal(t, 5, coord.RetryLimit)
	assert.Equal(t, time.Second, coord.RetryBackoff)
}
