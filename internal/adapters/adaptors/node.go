package adaptors

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/shell"
	"go.trai.ch/crossbow/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the adaptor registry Graft node.
	RegistryNodeID graft.ID = "adapter.adaptor_registry"
	// FileRunnerNodeID is the unique identifier for the task file runner Graft node.
	FileRunnerNodeID graft.ID = "adapter.file_runner"
)

func init() {
	graft.Register(graft.Node[ports.AdaptorRegistry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.AdaptorRegistry, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(executor), nil
		},
	})

	graft.Register(graft.Node[ports.FileRunner]{
		ID:        FileRunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.FileRunner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewFileRunner(executor), nil
		},
	})
}
