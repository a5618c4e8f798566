package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/delta/internal/adapters/cache"  //nolint:depguard // Wired in app layer
	"go.trai.ch/delta/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/delta/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/delta/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/delta/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/delta/internal/adapters/state"  //nolint:depguard // Wired in app layer
	"go.trai.ch/delta/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			state.BaselineNodeID,
			state.TestMapNodeID,
			state.MetricsNodeID,
			cache.NodeID,
			shell.ExecutorNodeID,
			shell.RunnerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(application, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.ContentHasher](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.FileResolver](ctx)
	if err != nil {
		return nil, err
	}

	baselines, err := graft.Dep[ports.BaselineStore](ctx)
	if err != nil {
		return nil, err
	}

	testmaps, err := graft.Dep[ports.TestMapStore](ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := graft.Dep[ports.BuildMetrics](ctx)
	if err != nil {
		return nil, err
	}

	cacheFactory, err := graft.Dep[ports.CacheFactory](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.BuildExecutor](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.TestRunner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, hasher, resolver, baselines, testmaps, metrics, cacheFactory, executor, runner, log), nil
}
