// Package raw contains the unvalidated flow-file records as they arrive
// from yaml/json, each with a Validate and a ToValid.
package raw

import (
	"time"

	"github.com/flowtask/ghlib/config/valid"
	"github.com/flowtask/ghlib/github"
	"github.com/flowtask/ghlib/tasks"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Flow struct {
	Defaults Defaults `yaml:"defaults" json:"defaults"`
	Tasks    []Task   `yaml:"tasks" json:"tasks"`
}

func (f *Flow) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Defaults),
		validation.Field(&f.Tasks, validation.Required))
}

func (f *Flow) ToValid() valid.Flow {
	validTasks := make([]valid.Task, 0, len(f.Tasks))
	for _, t := range f.Tasks {
		validTasks = append(validTasks, t.ToValid())
	}
	return valid.Flow{
		Defaults: f.Defaults.ToValid(),
		Tasks:    validTasks,
	}
}

type Defaults struct {
	APIBase        string `yaml:"api_base" json:"api_base"`
	APIVersion     string `yaml:"api_version" json:"api_version"`
	RetryLimit     int    `yaml:"retry_limit" json:"retry_limit"`
	RetryBackoffMs int    `yaml:"retry_backoff_ms" json:"retry_backoff_ms"`
	StatsdAddr     string `yaml:"statsd_addr" json:"statsd_addr"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

func (d Defaults) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.RetryLimit, validation.Min(0)),
		validation.Field(&d.RetryBackoffMs, validation.Min(0)),
		validation.Field(&d.LogLevel, validation.In("", "debug", "info", "warn", "error")))
}

func (d Defaults) ToValid() valid.Defaults {
	out := valid.Defaults{
		APIBase:      d.APIBase,
		APIVersion:   d.APIVersion,
		RetryLimit:   d.RetryLimit,
		RetryBackoff: github.DefaultRetryBackoff,
		StatsdAddr:   d.StatsdAddr,
		LogLevel:     d.LogLevel,
	}
	if out.APIBase == "" {
		out.APIBase = github.DefaultAPIBase
	}
	if out.APIVersion == "" {
		out.APIVersion = github.DefaultAPIVersion
	}
	if out.RetryLimit == 0 {
		out.RetryLimit = github.DefaultRetryLimit
	}
	if d.RetryBackoffMs != 0 {
		out.RetryBackoff = time.Duration(d.RetryBackoffMs) * time.Millisecond
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	return out
}

type Task struct {
	Name  string                 `yaml:"name" json:"name"`
	Uses  string                 `yaml:"uses" json:"uses"`
	With  map[string]interface{} `yaml:"with" json:"with"`
	Needs []string               `yaml:"needs" json:"needs"`
}

func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Uses, validation.Required, validation.By(knownTask)))
}

func (t Task) ToValid() valid.Task {
	name := t.Name
	if name == "" {
		name = t.Uses
	}
	return valid.Task{
		Name:  name,
		Uses:  t.Uses,
		With:  t.With,
		Needs: t.Needs,
	}
}

func knownTask(value interface{}) error {
	uses, _ := value.(string)
	if _, ok := tasks.Catalog[uses]; !ok {
		return errors.Errorf("unknown task %q", uses)
	}
	return nil
}

// ParseFlow decodes and validates a flow file.
func ParseFlow(contents []byte) (valid.Flow, error) {
	var flow Flow
	if err := yaml.UnmarshalStrict(contents, &flow); err != nil {
		return valid.Flow{}, errors.Wrap(err, "parsing flow file")
	}
	if err := flow.Validate(); err != nil {
		return valid.Flow{}, errors.Wrap(err, "validating flow file")
	}
	return flow.ToValid(), nil
}
