package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crossbow/internal/adapters/fs"
)

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o700))
}

func TestLocator_Locate_Order(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{name: "tasks js first", files: []string{"tasks/lint.js", "tasks/lint.sh", "lint.js"}, want: "tasks/lint.js"},
		{name: "tasks sh", files: []string{"tasks/lint.sh", "lint.sh"}, want: "tasks/lint.sh"},
		{name: "tasks bare", files: []string{"tasks/lint", "lint.js"}, want: "tasks/lint"},
		{name: "root js", files: []string{"lint.js", "lint.sh"}, want: "lint.js"},
		{name: "root sh", files: []string{"lint.sh", "node_modules/.bin/lint"}, want: "lint.sh"},
		{name: "node bin", files: []string{"node_modules/.bin/lint"}, want: "node_modules/.bin/lint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cwd := t.TempDir()
			for _, f := range tt.files {
				write(t, filepath.Join(cwd, f))
			}

			payload, ok := fs.NewLocator().Locate("lint", cwd)

			require.True(t, ok)
			assert.Equal(t, filepath.Join(cwd, tt.want), payload.Path)
			assert.Equal(t, []string{payload.Path}, payload.Units)
		})
	}
}

func TestLocator_Locate_Directory(t *testing.T) {
	cwd := t.TempDir()
	write(t, filepath.Join(cwd, "tasks", "deploy", "02-push.sh"))
	write(t, filepath.Join(cwd, "tasks", "deploy", "01-build.js"))
	write(t, filepath.Join(cwd, "tasks", "deploy", "README.md"))

	payload, ok := fs.NewLocator().Locate("deploy", cwd)

	require.True(t, ok)
	assert.Equal(t, filepath.Join(cwd, "tasks", "deploy"), payload.Path)
	assert.Equal(t, []string{
		filepath.Join(cwd, "tasks", "deploy", "01-build.js"),
		filepath.Join(cwd, "tasks", "deploy", "02-push.sh"),
	}, payload.Units)
}

func TestLocator_Locate_NotFound(t *testing.T) {
	_, ok := fs.NewLocator().Locate("missing", t.TempDir())
	assert.False(t, ok)
}

func TestLocator_Supported(t *testing.T) {
	l := fs.NewLocator()

	assert.True(t, l.Supported("tasks/a.js"))
	assert.True(t, l.Supported("tasks/a.sh"))
	assert.True(t, l.Supported("tasks/a.py"))
	assert.True(t, l.Supported("tasks/a"))
	assert.False(t, l.Supported("tasks/a.rb"))
	assert.False(t, l.Supported("tasks/a.md"))
}
