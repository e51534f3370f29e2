package adaptors

import (
	"fmt"
	"strings"

	"go.trai.ch/crossbow/internal/core/domain"
)

// OptionEnvPrefix prefixes every option exported to a task process.
const OptionEnvPrefix = "CB_OPT_"

// optionEnv flattens options into CB_OPT_<KEY>=<value> pairs. Nested blocks
// join their keys with an underscore; lists are comma separated.
func optionEnv(opts domain.Options) []string {
	var env []string
	flattenOptions(OptionEnvPrefix, opts, &env)
	return env
}

func flattenOptions(prefix string, opts domain.Options, env *[]string) {
	for _, key := range opts.Keys() {
		value, _ := opts.Get(key)
		name := prefix + envKey(key)

		switch v := value.(type) {
		case domain.Options:
			flattenOptions(name+"_", v, env)
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			*env = append(*env, name+"="+strings.Join(parts, ","))
		case nil:
			*env = append(*env, name+"=")
		default:
			*env = append(*env, name+"="+fmt.Sprint(v))
		}
	}
}

func envKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
}
