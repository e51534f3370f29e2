package domain

import (
	"path/filepath"
	"strings"
)

// interpreters maps task file extensions to the command prefix that runs them.
// An empty prefix executes the file directly.
var interpreters = map[string][]string{
	"":      nil,
	".js":   {"node"},
	".mjs":  {"node"},
	".cjs":  {"node"},
	".sh":   {"sh"},
	".bash": {"bash"},
	".py":   {"python3"},
}

// InterpreterFor returns the command prefix used to run a task file.
// ok is false for unsupported file types.
func InterpreterFor(path string) (prefix []string, ok bool) {
	prefix, ok = interpreters[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return append([]string(nil), prefix...), true
}
