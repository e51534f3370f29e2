package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/reporter"
	"go.trai.ch/crossbow/internal/adapters/telemetry"
	"go.trai.ch/crossbow/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.TracerNodeID, reporter.NodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			rep, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			return New(tracer, rep.Output), nil
		},
	})
}
