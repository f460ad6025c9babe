package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
)

type captureReporter struct {
	tally.StatsReporter

	names []string
}

func (r *captureReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.names = append(r.names, name)
}

func (r *captureReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.names = append(r.names, name)
}

func TestPointTagReporter_TaggedName(t *testing.T) {
	reporter := &pointTagReporter{separator: ","}

	cases := []struct {
		description string
		name        string
		tags        map[string]string
		exp         string
	}{
		{
			description: "no tags",
			name:        "request",
			exp:         "request",
		},
		{
			description: "tag appended after separator",
			name:        "execution_success",
			tags:        map[string]string{"task": "repos_get"},
			exp:         "execution_success,task=repos_get",
		},
		{
			description: "statsd delimiters replaced in tag values",
			name:        "execution_success",
			tags:        map[string]string{"task": "issues.Create"},
			exp:         "execution_success,task=issues_Create",
		},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			assert.Equal(t, c.exp, reporter.taggedName(c.name, c.tags))
		})
	}
}

func TestPointTagReporter_TagsFoldedIntoReportedName(t *testing.T) {
	capture := &captureReporter{}
	reporter := &pointTagReporter{StatsReporter: capture, separator: ","}

	reporter.ReportCounter("request", map[string]string{"task": "repos.Get"}, 1)
	reporter.ReportTimer("request_latency", nil, time.Millisecond)

	assert.Equal(t, []string{
		"request,task=repos_Get",
		"request_latency",
	}, capture.names)
}

func TestReplaceChars(t *testing.T) {
	assert.Equal(t, "issues_Create", replaceChars("issues.Create"))
	assert.Equal(t, "127_0_0_1_8125", replaceChars("127.0.0.1:8125"))
	assert.Equal(t, "a_b_c_d_e", replaceChars("a.b:c|d-e"))
	assert.Equal(t, "plain", replaceChars("plain"))
}

func TestNewScope_NoAddressIsReporterless(t *testing.T) {
	scope, closer, err := NewScope("ghlib", "")
	require.NoError(t, err)
	require.NotNil(t, scope)

	// Safe to record against; nothing is shipped anywhere.
	scope.Counter(RequestMetric).Inc(1)
	assert.NoError(t, closer.Close())
}
