package resolver

import (
	"net/url"
	"strings"

	"go.trai.ch/crossbow/internal/core/domain"
)

// AdaptorSigil prefixes adaptor task strings such as "@sh make build".
const AdaptorSigil = "@"

// FlagParallel is the CB flag selecting parallel execution of a group.
const FlagParallel = 'p'

// parsedName is a task string split into its parts.
//
// The grammar is name(:sub)*(@flags)?(?query)?. Flags may also follow the
// query, and sub-tasks written after the flags ("sass@p:dev") are accepted.
type parsedName struct {
	base     string
	subTasks []string
	flags    string
	hasFlags bool
	badFlags bool
	query    domain.Options
}

func isAdaptorString(raw string) bool {
	return strings.HasPrefix(raw, AdaptorSigil)
}

// splitAdaptor splits "@name command" into its adaptor name and command.
func splitAdaptor(raw string) (name, command string) {
	name, command, _ = strings.Cut(strings.TrimPrefix(raw, AdaptorSigil), " ")
	return name, strings.TrimSpace(command)
}

func parseName(raw string) parsedName {
	var p parsedName

	head := raw
	var rawQuery string
	if i := strings.IndexByte(head, '?'); i >= 0 {
		head, rawQuery = head[:i], head[i+1:]
		if j := strings.LastIndexByte(rawQuery, '@'); j >= 0 && isFlagString(rawQuery[j+1:]) {
			rawQuery, p.flags, p.hasFlags = rawQuery[:j], rawQuery[j+1:], true
		}
	}

	if i := strings.IndexByte(head, '@'); i >= 0 {
		flags := head[i+1:]
		head = head[:i]
		if j := strings.IndexByte(flags, ':'); j >= 0 {
			head += flags[j:]
			flags = flags[:j]
		}
		p.flags, p.hasFlags = flags, true
	}
	p.badFlags = !isFlagString(p.flags)

	p.query = parseQuery(rawQuery)

	segments := strings.Split(head, ":")
	p.base = segments[0]
	if len(segments) > 1 {
		p.subTasks = segments[1:]
	}

	return p
}

// parseQuery decodes URL query syntax. Repeated keys become lists.
// Malformed pairs are dropped.
func parseQuery(raw string) domain.Options {
	opts := domain.NewOptions()
	if raw == "" {
		return opts
	}

	values, _ := url.ParseQuery(raw)
	for _, pair := range strings.Split(raw, "&") {
		key, _, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil || key == "" || opts.Has(key) {
			continue
		}
		vs, ok := values[key]
		if !ok {
			continue
		}
		if len(vs) == 1 {
			opts.Set(key, vs[0])
			continue
		}
		list := make([]any, len(vs))
		for i, v := range vs {
			list[i] = v
		}
		opts.Set(key, list)
	}
	return opts
}

func isFlagString(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func modeFromFlags(flags string) domain.RunMode {
	if strings.ContainsRune(flags, FlagParallel) {
		return domain.RunParallel
	}
	return domain.RunSeries
}
