package changes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/fs"
	"go.trai.ch/crossbow/internal/adapters/history"
	"go.trai.ch/crossbow/internal/adapters/logger"
	"go.trai.ch/crossbow/internal/core/ports"
)

// NodeID is the unique identifier for the change tracker Graft node.
const NodeID graft.ID = "engine.changes"

func init() {
	graft.Register(graft.Node[*Tracker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, history.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Tracker, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.HistoryStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTracker(hasher, store, log), nil
		},
	})
}
