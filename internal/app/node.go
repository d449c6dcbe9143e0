package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/adapters/actions"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/archive"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/github"    //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/parsers"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/source"    //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/depsub/internal/core/ports"
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
			source.NodeID,
			parsers.NodeID,
			actions.NodeID,
			github.NodeID,
			archive.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
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
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	src, err := graft.Dep[ports.ListingSource](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.ListingParser](ctx)
	if err != nil {
		return nil, err
	}

	env, err := graft.Dep[ports.EnvironmentProvider](ctx)
	if err != nil {
		return nil, err
	}

	submitter, err := graft.Dep[ports.Submitter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, src, parser, env, submitter, store, tracer, m, log), nil
}
