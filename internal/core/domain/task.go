// Package domain holds the core types shared by the resolver, the sequence builder and the runner.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// TaskType classifies a resolved task.
type TaskType string

const (
	// ExternalTask is backed by one or more files found on disk.
	ExternalTask TaskType = "ExternalTask"
	// AdaptorTask is backed by a registered adaptor and a command string.
	AdaptorTask TaskType = "Adaptor"
	// TaskGroup aggregates child tasks.
	TaskGroup TaskType = "TaskGroup"
	// InlineFunctionTask is backed by a runnable from the configuration.
	InlineFunctionTask TaskType = "InlineFunction"
)

// RunMode selects how a group's children are executed.
type RunMode string

const (
	// RunSeries executes children one after another.
	RunSeries RunMode = "series"
	// RunParallel executes children concurrently.
	RunParallel RunMode = "parallel"
)

// ParseRunMode validates a configured run mode. The empty string is allowed and means unset.
func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(s) {
	case "", RunSeries, RunParallel:
		return RunMode(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidRunMode, "unknown run mode"), "run_mode", s)
	}
}

// TaskErrorType names a resolution error kind.
type TaskErrorType string

// Task error kinds.
const (
	TaskNotFound                TaskErrorType = "TaskNotFound"
	SubtasksNotInConfig         TaskErrorType = "SubtasksNotInConfig"
	SubtaskNotProvided          TaskErrorType = "SubtaskNotProvided"
	SubtaskNotFound             TaskErrorType = "SubtaskNotFound"
	SubtaskWildcardNotAvailable TaskErrorType = "SubtaskWildcardNotAvailable"
	AdaptorNotFound             TaskErrorType = "AdaptorNotFound"
	AdaptorValidationFailed     TaskErrorType = "AdaptorValidationFailed"
	CBFlagNotProvided           TaskErrorType = "CBFlagNotProvided"
	CBFlagInvalid               TaskErrorType = "CBFlagInvalid"
	CircularReference           TaskErrorType = "CircularReference"
	FileTypeNotSupported        TaskErrorType = "FileTypeNotSupported"
)

// TaskError is a resolution failure attached to a task.
type TaskError struct {
	Type TaskErrorType
	Err  error
}

// Error implements error.
func (e TaskError) Error() string {
	return string(e.Type) + ": " + e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e TaskError) Unwrap() error {
	return e.Err
}

// ExternalPayload describes a file-backed task.
type ExternalPayload struct {
	// Path is the file or directory that matched the lookup.
	Path string
	// Units are the executable files, one per runnable. A directory yields several.
	Units []string
}

// AdaptorPayload describes an adaptor-backed task.
type AdaptorPayload struct {
	Name    string
	Command string
}

// Task is a node of the resolved task tree.
type Task struct {
	BaseTaskName string
	SubTasks     []string
	RawInput     string
	Flags        string
	Query        Options
	Description  string

	Type    TaskType
	RunMode RunMode
	Tasks   []*Task
	// Named marks groups whose children are named variants selectable by sub-task.
	Named bool

	Parents   []InternedString
	IfChanged []InternedString

	// Options is the options block configured for BaseTaskName.
	Options    Options
	HasOptions bool

	Errors []TaskError
	Valid  bool

	External *ExternalPayload
	Adaptor  *AdaptorPayload
	Function Runnable
}

// AddError attaches a resolution error.
func (t *Task) AddError(kind TaskErrorType, err error) {
	t.Errors = append(t.Errors, TaskError{Type: kind, Err: err})
}

// HasError reports whether an error of the given kind is attached.
func (t *Task) HasError(kind TaskErrorType) bool {
	for _, e := range t.Errors {
		if e.Type == kind {
			return true
		}
	}
	return false
}

// IsLeaf reports whether the task is directly executable.
func (t *Task) IsLeaf() bool {
	return t.Type != TaskGroup
}

// ChildNames returns the base names of the direct children.
func (t *Task) ChildNames() []string {
	out := make([]string, len(t.Tasks))
	for i, c := range t.Tasks {
		out[i] = c.BaseTaskName
	}
	return out
}

// Label returns the display name of the task including its sub-tasks.
func (t *Task) Label() string {
	if t.Type == AdaptorTask {
		return t.BaseTaskName
	}
	if len(t.SubTasks) == 0 {
		return t.BaseTaskName
	}
	return t.BaseTaskName + ":" + strings.Join(t.SubTasks, ":")
}

// Walk visits t and its descendants depth first.
func (t *Task) Walk(fn func(*Task)) {
	fn(t)
	for _, c := range t.Tasks {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of the task tree. Runnables and options are shared.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	out.SubTasks = append([]string(nil), t.SubTasks...)
	out.Parents = append([]InternedString(nil), t.Parents...)
	out.IfChanged = append([]InternedString(nil), t.IfChanged...)
	out.Errors = append([]TaskError(nil), t.Errors...)
	if t.Tasks != nil {
		out.Tasks = make([]*Task, len(t.Tasks))
		for i, c := range t.Tasks {
			out.Tasks[i] = c.Clone()
		}
	}
	if t.External != nil {
		ext := *t.External
		ext.Units = append([]string(nil), t.External.Units...)
		out.External = &ext
	}
	if t.Adaptor != nil {
		a := *t.Adaptor
		out.Adaptor = &a
	}
	return &out
}

// Resolution is the outcome of resolving a list of requested names.
type Resolution struct {
	All     []*Task
	Valid   []*Task
	Invalid []*Task
}

// Failure pairs a task with one of its resolution errors.
type Failure struct {
	Task  *Task
	Error TaskError
}

// Failures collects every resolution error in the given trees, depth first.
func Failures(tasks []*Task) []Failure {
	var out []Failure
	for _, root := range tasks {
		root.Walk(func(t *Task) {
			for _, e := range t.Errors {
				out = append(out, Failure{Task: t, Error: e})
			}
		})
	}
	return out
}
