// Package valid holds the checked forms of flow-file records. Anything in
// here already passed raw validation and carries its defaults.
package valid

import "time"

// Defaults are flow-level settings every task in the flow inherits unless a
// repo item or explicit parameter overrides them.
type Defaults struct {
	APIBase      string
	APIVersion   string
	RetryLimit   int
	RetryBackoff time.Duration
	StatsdAddr   string
	LogLevel     string
}

// Task is one validated task invocation.
type Task struct {
	Name  string
	Uses  string
	With  map[string]interface{}
	Needs []string
}

// Flow is a validated flow file: defaults plus an ordered task list. The
// orchestration runtime owns scheduling; this is only the declarative shape.
type Flow struct {
	Defaults Defaults
	Tasks    []Task
}
