package reporter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/detector"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/crossbow/internal/ui/output"
)

// NodeID is the unique identifier for the reporter Graft node.
const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Reporter, error) {
			var opts []Option
			if detector.Mode() == detector.ModeInteractive {
				opts = append(opts, WithColorProfile(output.ColorProfile()))
			}
			return NewLinear(nil, nil, opts...), nil
		},
	})
}
