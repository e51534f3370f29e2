package domain

import "strings"

// Reserved option keys.
const (
	// DefaultOptionsKey holds the options used when no sub-task is given.
	DefaultOptionsKey = "_default"
	// SharedOptionsKey holds options underlaid beneath every sub-task.
	SharedOptionsKey = "_shared"
	// WildcardSubTask expands to every non-reserved option key.
	WildcardSubTask = "*"
)

// Options is an insertion-ordered string-keyed mapping.
// Values are scalars, []any, or nested Options.
type Options struct {
	keys   []string
	values map[string]any
}

// NewOptions returns an empty Options.
func NewOptions() Options {
	return Options{values: make(map[string]any)}
}

// OptionsFrom builds Options from alternating key/value pairs.
// It panics when given an odd number of arguments or a non-string key.
func OptionsFrom(kv ...any) Options {
	if len(kv)%2 != 0 {
		panic("domain: OptionsFrom requires key/value pairs")
	}
	o := NewOptions()
	for i := 0; i < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1]) //nolint:forcetypeassert // documented panic
	}
	return o
}

// Set inserts or replaces key. Replacing keeps the original position.
func (o *Options) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o Options) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Block returns the nested Options stored under key.
// ok is false when the key is absent or its value is not a mapping.
func (o Options) Block(key string) (Options, bool) {
	v, ok := o.values[key]
	if !ok {
		return Options{}, false
	}
	b, ok := v.(Options)
	return b, ok
}

// Has reports whether key is present.
func (o Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o Options) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// PublicKeys returns the keys that do not start with an underscore, in order.
func (o Options) PublicKeys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if !strings.HasPrefix(k, "_") {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of keys.
func (o Options) Len() int {
	return len(o.keys)
}

// IsZero reports whether no key is set.
func (o Options) IsZero() bool {
	return len(o.keys) == 0
}

// Public returns a copy that omits keys starting with an underscore.
func (o Options) Public() Options {
	out := NewOptions()
	for _, k := range o.PublicKeys() {
		out.Set(k, o.values[k])
	}
	return out
}

// Overlay returns a copy of o with every key of top written over it.
// The merge is shallow: nested mappings are replaced, not merged.
func (o Options) Overlay(top Options) Options {
	out := o.Clone()
	for _, k := range top.keys {
		out.Set(k, top.values[k])
	}
	return out
}

// Clone returns a deep copy.
func (o Options) Clone() Options {
	out := NewOptions()
	for _, k := range o.keys {
		out.Set(k, cloneOptionValue(o.values[k]))
	}
	return out
}

// Map converts the options into a plain map, recursively.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.keys))
	for _, k := range o.keys {
		switch v := o.values[k].(type) {
		case Options:
			out[k] = v.Map()
		default:
			out[k] = v
		}
	}
	return out
}

func cloneOptionValue(v any) any {
	switch t := v.(type) {
	case Options:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneOptionValue(e)
		}
		return out
	default:
		return v
	}
}
