package raw_test

import (
	"testing"
	"time"

	"github.com/flowtask/ghlib/config/raw"
	"github.com/flowtask/ghlib/config/valid"
	"github.com/flowtask/ghlib/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestFlow_Unmarshal(t *testing.T) {
	contents := `
defaults:
  api_base: https://ghe.example.com/api/v3
  retry_limit: 5
  retry_backoff_ms: 250
  log_level: debug
tasks:
  - name: open-issue
    uses: issues.Create
    with:
      title: broken build
  - uses: issues.Close
    needs: [open-issue]
`
	var flow raw.Flow
	require.NoError(t, yaml.UnmarshalStrict([]byte(contents), &flow))

	assert.Equal(t, raw.Flow{
		Defaults: raw.Defaults{
			APIBase:        "https://ghe.example.com/api/v3",
			RetryLimit:     5,
			RetryBackoffMs: 250,
			LogLevel:       "debug",
		},
		Tasks: []raw.Task{
			{
				Name: "open-issue",
				Uses: "issues.Create",
				With: map[string]interface{}{"title": "broken build"},
			},
			{
				Uses:  "issues.Close",
				Needs: []string{"open-issue"},
			},
		},
	}, flow)
}

func TestFlow_UnmarshalStrictRejectsUnknownKeys(t *testing.T) {
	contents := `
tasks:
  - uses: issues.Create
    uzes: typo
`
	var flow raw.Flow
	assert.Error(t, yaml.UnmarshalStrict([]byte(contents), &flow))
}

func TestFlow_Validate(t *testing.T) {
	cases := []struct {
		description string
		subject     raw.Flow
		expErr      string
	}{
		{
			description: "valid flow",
			subject: raw.Flow{
				Tasks: []raw.Task{{Uses: "issues.Create"}},
			},
		},
		{
			description: "no tasks",
			subject:     raw.Flow{},
			expErr:      "tasks: cannot be blank.",
		},
		{
			description: "unknown task",
			subject: raw.Flow{
				Tasks: []raw.Task{{Uses: "issues.Frobnicate"}},
			},
			expErr: `tasks: (0: (uses: unknown task "issues.Frobnicate".).).`,
		},
		{
			description: "missing uses",
			subject: raw.Flow{
				Tasks: []raw.Task{{Name: "anonymous"}},
			},
			expErr: "tasks: (0: (uses: cannot be blank.).).",
		},
		{
			description: "negative retry limit",
			subject: raw.Flow{
				Defaults: raw.Defaults{RetryLimit: -1},
				Tasks:    []raw.Task{{Uses: "issues.Create"}},
			},
			expErr: "defaults: (retry_limit: must be no less than 0.).",
		},
		{
			description: "bogus log level",
			subject: raw.Flow{
				Defaults: raw.Defaults{LogLevel: "loud"},
				Tasks:    []raw.Task{{Uses: "issues.Create"}},
			},
			expErr: "defaults: (log_level: must be a valid value.).",
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := c.subject.Validate()
			if c.expErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, c.expErr)
		})
	}
}

func TestFlow_ToValid(t *testing.T) {
	cases := []struct {
		description string
		subject     raw.Flow
		exp         valid.Flow
	}{
		{
			description: "defaults filled in",
			subject: raw.Flow{
				Tasks: []raw.Task{{Uses: "repos.Get"}},
			},
			exp: valid.Flow{
				Defaults: valid.Defaults{
					APIBase:      github.DefaultAPIBase,
					APIVersion:   github.DefaultAPIVersion,
					RetryLimit:   github.DefaultRetryLimit,
					RetryBackoff: github.DefaultRetryBackoff,
					LogLevel:     "info",
				},
				Tasks: []valid.Task{{Name: "repos.Get", Uses: "repos.Get"}},
			},
		},
		{
			description: "explicit values kept",
			subject: raw.Flow{
				Defaults: raw.Defaults{
					APIBase:        "https://ghe.example.com/api/v3",
					RetryLimit:     5,
					RetryBackoffMs: 250,
					StatsdAddr:     "127.0.0.1:8125",
					LogLevel:       "debug",
				},
				Tasks: []raw.Task{
					{Name: "open", Uses: "issues.Create", With: map[string]interface{}{"title": "x"}},
				},
			},
			exp: valid.Flow{
				Defaults: valid.Defaults{
					APIBase:      "https://ghe.example.com/api/v3",
					APIVersion:   github.DefaultAPIVersion,
					RetryLimit:   5,
					RetryBackoff: 250 * time.Millisecond,
					StatsdAddr:   "127.0.0.1:8125",
					LogLevel:     "debug",
				},
				Tasks: []valid.Task{
					{Name: "open", Uses: "issues.Create", With: map[string]interface{}{"title": "x"}},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			assert.Equal(t, c.exp, c.subject.ToValid())
		})
	}
}

func TestParseFlow(t *testing.T) {
	flow, err := raw.ParseFlow([]byte(`
tasks:
  - uses: Auth
  - uses: repos.Get
    with:
      owner: octo
      repo: hello
`))
	require.NoError(t, err)
	require.Len(t, flow.Tasks, 2)
	assert.Equal(t, "repos.Get", flow.Tasks[1].Uses)
	assert.Equal(t, github.DefaultAPIBase, flow.Defaults.APIBase)

	_, err = raw.ParseFlow([]byte(`tasks: []`))
	assert.ErrorContains(t, err, "validating flow file")
}
