package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/delta/internal/adapters/logger"
	"go.trai.ch/delta/internal/core/ports"
)

const (
	// BaselineNodeID is the unique identifier for the baseline store Graft node.
	BaselineNodeID graft.ID = "adapter.baseline_store"
	// TestMapNodeID is the unique identifier for the testmap store Graft node.
	TestMapNodeID graft.ID = "adapter.testmap_store"
	// MetricsNodeID is the unique identifier for the metrics store Graft node.
	MetricsNodeID graft.ID = "adapter.metrics_store"
)

func init() {
	graft.Register(graft.Node[ports.BaselineStore]{
		ID:        BaselineNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BaselineStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBaselineStore(log), nil
		},
	})

	graft.Register(graft.Node[ports.TestMapStore]{
		ID:        TestMapNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.TestMapStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTestMapStore(log), nil
		},
	})

	graft.Register(graft.Node[ports.BuildMetrics]{
		ID:        MetricsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildMetrics, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewMetricsStore(log), nil
		},
	})
}
