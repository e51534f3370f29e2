package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crossbow/internal/adapters/adaptors" //nolint:depguard // Wired in app layer
	"go.trai.ch/crossbow/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crossbow/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/crossbow/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crossbow/internal/adapters/reporter" //nolint:depguard // Wired in app layer
	"go.trai.ch/crossbow/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/crossbow/internal/engine/changes"
	"go.trai.ch/crossbow/internal/engine/runner"
	"go.trai.ch/crossbow/internal/engine/sequence"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			adaptors.RegistryNodeID,
			fs.LocatorNodeID,
			sequence.NodeID,
			changes.NodeID,
			runner.NodeID,
			reporter.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[ports.AdaptorRegistry](ctx)
	if err != nil {
		return nil, err
	}
	locator, err := graft.Dep[ports.TaskLocator](ctx)
	if err != nil {
		return nil, err
	}
	builder, err := graft.Dep[*sequence.Builder](ctx)
	if err != nil {
		return nil, err
	}
	tracker, err := graft.Dep[*changes.Tracker](ctx)
	if err != nil {
		return nil, err
	}
	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}
	rep, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, registry, locator, builder, tracker, run, rep, executor, log), nil
}
