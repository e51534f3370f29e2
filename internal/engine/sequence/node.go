package sequence

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/adaptors"
	"go.trai.ch/crossbow/internal/core/ports"
)

// NodeID is the unique identifier for the sequence builder Graft node.
const NodeID graft.ID = "engine.sequence"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{adaptors.RegistryNodeID, adaptors.FileRunnerNodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			registry, err := graft.Dep[ports.AdaptorRegistry](ctx)
			if err != nil {
				return nil, err
			}
			files, err := graft.Dep[ports.FileRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(registry, files), nil
		},
	})
}
