package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/delta/internal/adapters/logger"
	"go.trai.ch/delta/internal/core/ports"
)

const (
	// ExecutorNodeID is the unique identifier for the build executor Graft node.
	ExecutorNodeID graft.ID = "adapter.build_executor"
	// RunnerNodeID is the unique identifier for the test runner Graft node.
	RunnerNodeID graft.ID = "adapter.test_runner"
)

func init() {
	graft.Register(graft.Node[ports.BuildExecutor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildExecutor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[ports.TestRunner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TestRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
