package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/detector"
	"go.trai.ch/crossbow/internal/adapters/logger"
	"go.trai.ch/crossbow/internal/core/ports"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log).WithPTY(detector.Mode() == detector.ModeInteractive), nil
		},
	})
}
