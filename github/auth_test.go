package github_test

import (
	"encoding/json"
	"testing"

	"github.com/flowtask/ghlib/github"
	"github.com/stretchr/testify/assert"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestResolveCredential_Precedence(t *testing.T) {
	inbound := &github.Credential{Token: "inbound-token", Scheme: "Bearer"}
	defaultEnv := env(map[string]string{github.TokenEnvVar: "env-token"})

	cases := []struct {
		description string
		explicit    string
		inbound     *github.Credential
		env         func(string) string
		expected    string
	}{
		{
			description: "explicit parameter beats everything",
			explicit:    "param-token",
			inbound:     inbound,
			env:         defaultEnv,
			expected:    "param-token",
		},
		{
			description: "inbound credential beats environment",
			inbound:     inbound,
			env:         defaultEnv,
			expected:    "inbound-token",
		},
		{
			description: "environment default as last resort",
			env:         defaultEnv,
			expected:    "env-token",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			cred, err := github.ResolveCredential(c.explicit, c.inbound, c.env)
			assert.NoError(t, err)
			assert.Equal(t, c.expected, cred.Token)
			assert.Equal(t, github.DefaultScheme, cred.Scheme)
		})
	}
}

func TestResolveCredential_NothingResolvable(t *testing.T) {
	_, err := github.ResolveCredential("", nil, env(nil))
	assert.IsType(t, github.UnauthenticatedError{}, err)
}

func TestResolveCredential_KeepsInboundScheme(t *testing.T) {
	cred, err := github.ResolveCredential("", &github.Credential{Token: "abc", Scheme: "token"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "token", cred.Scheme)
}

func TestCredential_NeverLeaksToken(t *testing.T) {
	cred := github.Credential{Token: "ghp_secret", Scheme: "Bearer"}

	assert.NotContains(t, cred.String(), "ghp_secret")

	serialized, err := json.Marshal(cred)
	assert.NoError(t, err)
	assert.NotContains(t, string(serialized), "ghp_secret")
}
