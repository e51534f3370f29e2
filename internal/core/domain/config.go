package domain

import "strings"

// TaskValueKind tags the variant held by a TaskValue.
type TaskValueKind uint8

const (
	// StringRef refers to another task by name (possibly with flags, sub-tasks, or an adaptor prefix).
	StringRef TaskValueKind = iota + 1
	// InlineFunction holds a runnable supplied programmatically.
	InlineFunction
	// GroupLiteral holds an object: a task definition and/or named variants.
	GroupLiteral
	// ArrayOfTasks holds an ordered list of task values.
	ArrayOfTasks
)

// TaskValue is the closed union of forms a configured task may take.
type TaskValue struct {
	Kind  TaskValueKind
	Ref   string
	Func  Runnable
	Group *TaskDefinition
	Items []TaskValue
}

// Ref returns a StringRef value.
func Ref(name string) TaskValue {
	return TaskValue{Kind: StringRef, Ref: name}
}

// Inline returns an InlineFunction value.
func Inline(r Runnable) TaskValue {
	return TaskValue{Kind: InlineFunction, Func: r}
}

// List returns an ArrayOfTasks value.
func List(items ...TaskValue) TaskValue {
	return TaskValue{Kind: ArrayOfTasks, Items: items}
}

// Refs returns an ArrayOfTasks of StringRef values.
func Refs(names ...string) TaskValue {
	items := make([]TaskValue, len(names))
	for i, n := range names {
		items[i] = Ref(n)
	}
	return List(items...)
}

// Group returns a GroupLiteral value.
func Group(def TaskDefinition) TaskValue {
	return TaskValue{Kind: GroupLiteral, Group: &def}
}

// NamedTaskValue is a named variant inside a group literal.
type NamedTaskValue struct {
	Name  string
	Value TaskValue
}

// TaskDefinition is the object form of a task value.
type TaskDefinition struct {
	Description string
	Tasks       []TaskValue
	Named       []NamedTaskValue
	RunMode     RunMode
	IfChanged   []string
}

// TaskMap is an insertion-ordered mapping from configured task keys to values.
type TaskMap struct {
	keys   []string
	values map[string]TaskValue
}

// Set inserts or replaces key.
func (m *TaskMap) Set(key string, v TaskValue) {
	if m.values == nil {
		m.values = make(map[string]TaskValue)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Keys returns the configured keys in order.
func (m *TaskMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under the exact key.
func (m *TaskMap) Get(key string) (TaskValue, bool) {
	if m == nil {
		return TaskValue{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Lookup finds name by exact key first, then by a key of the form "name@flags".
// It returns the flags carried by the matched key.
func (m *TaskMap) Lookup(name string) (TaskValue, string, bool) {
	if m == nil {
		return TaskValue{}, "", false
	}
	if v, ok := m.values[name]; ok {
		return v, "", true
	}
	for _, k := range m.keys {
		base, flags, found := strings.Cut(k, "@")
		if found && base == name {
			return m.values[k], flags, true
		}
	}
	return TaskValue{}, "", false
}

// Settings holds run-wide configuration.
type Settings struct {
	FailOnError bool
	Parallel    bool
}

// DefaultSettings returns the settings used when the configuration omits them.
func DefaultSettings() Settings {
	return Settings{FailOnError: true}
}

// Config is the read-only configuration tree a run resolves against.
type Config struct {
	Root     string
	Path     string
	Tasks    *TaskMap
	Options  Options
	Settings Settings
}

// NewConfig returns an empty configuration rooted at root.
func NewConfig(root string) *Config {
	return &Config{
		Root:     root,
		Tasks:    &TaskMap{},
		Options:  NewOptions(),
		Settings: DefaultSettings(),
	}
}

// OptionsFor returns the options block configured for a task name.
func (c *Config) OptionsFor(name string) (Options, bool) {
	if c == nil {
		return Options{}, false
	}
	return c.Options.Block(name)
}

// Description returns the configured description of a task key, if any.
func (c *Config) Description(key string) string {
	v, ok := c.Tasks.Get(key)
	if !ok || v.Kind != GroupLiteral || v.Group == nil {
		return ""
	}
	return v.Group.Description
}
