package adaptors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crossbow/internal/adapters/adaptors"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRegistry_BuiltIns(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := adaptors.NewRegistry(mocks.NewMockExecutor(ctrl))

	assert.Equal(t, []string{"bg", "npm", "sh", "shell"}, reg.Names())

	for _, name := range reg.Names() {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, name)
	}

	_, ok := reg.Lookup("docker")
	assert.False(t, ok)
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := adaptors.NewRegistry(mocks.NewMockExecutor(ctrl))
	custom := mocks.NewMockAdaptor(ctrl)

	reg.Register("docker", custom)

	got, ok := reg.Lookup("docker")
	require.True(t, ok)
	assert.Same(t, custom, got)
	assert.Contains(t, reg.Names(), "docker")
}

func TestCommandAdaptor_Validate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := adaptors.NewRegistry(mocks.NewMockExecutor(ctrl))
	shell, _ := reg.Lookup("shell")
	bg, _ := reg.Lookup("bg")

	withCommand := func(cmd string) *domain.Task {
		return &domain.Task{Type: domain.AdaptorTask, Adaptor: &domain.AdaptorPayload{Name: "shell", Command: cmd}}
	}

	assert.True(t, shell.Validate(withCommand("make"), &domain.Trigger{}))
	assert.False(t, shell.Validate(withCommand("   "), &domain.Trigger{}))
	assert.False(t, shell.Validate(&domain.Task{}, &domain.Trigger{}))
	assert.True(t, bg.Validate(withCommand("serve"), &domain.Trigger{}))
	assert.False(t, bg.Validate(withCommand(""), &domain.Trigger{}))
}
