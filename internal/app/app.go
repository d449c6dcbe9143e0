// Package app implements the application layer for depsub.
package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/depsub/internal/core/ports"
	"go.trai.ch/depsub/internal/ui/summary"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Output formats accepted by Print.
const (
	FormatJSON    = "json"
	FormatSummary = "summary"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	source       ports.ListingSource
	parser       ports.ListingParser
	environment  ports.EnvironmentProvider
	submitter    ports.Submitter
	store        ports.SnapshotStore
	tracer       ports.Tracer
	metrics      ports.Metrics
	logger       ports.Logger
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	source ports.ListingSource,
	parser ports.ListingParser,
	environment ports.EnvironmentProvider,
	submitter ports.Submitter,
	store ports.SnapshotStore,
	tracer ports.Tracer,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		source:       source,
		parser:       parser,
		environment:  environment,
		submitter:    submitter,
		store:        store,
		tracer:       tracer,
		metrics:      metrics,
		logger:       log,
		now:          time.Now,
	}
}

// WithClock replaces the clock used for the scan timestamp.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// DetectOptions configures how a snapshot is built.
type DetectOptions struct {
	// Cwd is where the configuration search starts.
	Cwd string
	// ConfigPath is an explicit configuration file, relative to Cwd.
	ConfigPath string
	// SHA and Ref override the commit derived from the run environment.
	SHA string
	Ref string
	// Concurrency bounds parallel listing acquisition. Zero means one per CPU.
	Concurrency int
	// MetricsFile, when set, receives the run metrics in textfile format.
	MetricsFile string
}

// SubmitOptions configuration for the Submit method.
type SubmitOptions struct {
	DetectOptions
	// Archive keeps a copy of the submitted document below the config root.
	Archive bool
	// FailOnReject turns a snapshot the endpoint did not accept into an
	// error. Otherwise the rejection is only logged.
	FailOnReject bool
}

// PrintOptions configuration for the Print method.
type PrintOptions struct {
	DetectOptions
	Format string
}

// Detection is the outcome of a detection run.
type Detection struct {
	Config      *domain.Config
	Environment domain.RunEnvironment
	Snapshot    *domain.Snapshot
}

// Detect loads the configuration, reads every listing and builds the snapshot.
func (a *App) Detect(ctx context.Context, opts DetectOptions) (*Detection, error) {
	cfg, env, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}
	snapshot, err := a.build(ctx, cfg, env, opts)
	if err != nil {
		return nil, err
	}
	return &Detection{Config: cfg, Environment: env, Snapshot: snapshot}, nil
}

// Submit builds the snapshot and submits it. A snapshot that the endpoint does
// not accept is logged, and returned as ErrSubmissionRejected when
// opts.FailOnReject is set.
func (a *App) Submit(ctx context.Context, opts SubmitOptions) (err error) {
	defer a.flushMetrics(opts.MetricsFile, &err)

	cfg, env, err := a.prepare(opts.DetectOptions)
	if err != nil {
		return err
	}
	target, err := env.Target()
	if err != nil {
		return err
	}

	snapshot, err := a.build(ctx, cfg, env, opts.DetectOptions)
	if err != nil {
		return err
	}
	if snapshot.SHA() == "" {
		return zerr.With(domain.ErrMissingCommitSha, "event", env.Context.EventName)
	}

	if opts.Archive {
		digest, err := a.store.Put(cfg.Root, snapshot)
		if err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("archived snapshot %s", digest))
	}

	ctx, span := a.tracer.Start(ctx, "submit", ports.WithAttributes(map[string]any{
		"repository": target.Owner + "/" + target.Repo,
		"sha":        snapshot.SHA(),
	}))
	defer span.End()

	result, err := a.submitter.Submit(ctx, target, snapshot)
	if err != nil {
		span.RecordError(err)
		return err
	}
	a.metrics.ObserveSubmission(result)
	span.SetAttribute("status", result.StatusCode)

	if !result.Accepted() {
		rejected := zerr.With(domain.ErrSubmissionRejected, "status", result.StatusCode)
		rejected = zerr.With(rejected, "result", result.Result)
		rejected = zerr.With(rejected, "message", result.Message)
		span.RecordError(rejected)
		if opts.FailOnReject {
			return rejected
		}
		a.logger.Error(rejected)
		return nil
	}

	a.logger.Info(fmt.Sprintf("snapshot %d submitted for %s: %s",
		result.ID, snapshot.SHA(), result.Result))
	if result.Message != "" {
		a.logger.Info(result.Message)
	}
	return nil
}

// Print builds the snapshot and writes it to w without submitting it.
func (a *App) Print(ctx context.Context, w io.Writer, opts PrintOptions) (err error) {
	defer a.flushMetrics(opts.MetricsFile, &err)

	d, err := a.Detect(ctx, opts.DetectOptions)
	if err != nil {
		return err
	}

	switch opts.Format {
	case FormatSummary:
		return summary.Write(w, d.Snapshot)
	case FormatJSON, "":
		data, err := d.Snapshot.PrettyJSON()
		if err != nil {
			return zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return zerr.With(zerr.New("unknown output format"), "format", opts.Format)
	}
}

// Show writes an archived snapshot to w.
func (a *App) Show(w io.Writer, opts DetectOptions, digest string) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	data, err := a.store.Get(cfg.Root, digest)
	if err != nil {
		return err
	}
	if data == nil {
		return zerr.With(zerr.New("snapshot not found in archive"), "digest", digest)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func (a *App) loadConfig(opts DetectOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.Cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) prepare(opts DetectOptions) (*domain.Config, domain.RunEnvironment, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, domain.RunEnvironment{}, err
	}
	env, err := a.environment.Environment(cfg.Root)
	if err != nil {
		return nil, domain.RunEnvironment{}, err
	}
	return cfg, env, nil
}

func (a *App) build(
	ctx context.Context,
	cfg *domain.Config,
	env domain.RunEnvironment,
	opts DetectOptions,
) (*domain.Snapshot, error) {
	ctx, span := a.tracer.Start(ctx, "detect", ports.WithAttributes(map[string]any{
		"manifests": len(cfg.Manifests),
	}))
	defer span.End()

	listings, err := a.acquire(ctx, cfg, opts.Concurrency)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrDetectionFailed.Error())
	}

	snapshotOpts := []domain.SnapshotOption{
		domain.WithContext(env.Context),
		domain.WithScanned(a.now()),
		domain.WithSnapshotMetadata(cfg.Metadata),
	}
	if opts.SHA != "" || opts.Ref != "" {
		sha, ref := opts.SHA, opts.Ref
		if sha == "" {
			sha = domain.ResolveCommitSha(env.Context)
		}
		if ref == "" {
			ref = env.Context.Ref
		}
		snapshotOpts = append(snapshotOpts, domain.WithCommit(sha, ref))
	}
	snapshot := domain.NewSnapshot(cfg.Detector, snapshotOpts...)

	packages := 0
	for i, spec := range cfg.Manifests {
		n, err := a.record(ctx, snapshot, spec, listings[i])
		if err != nil {
			span.RecordError(err)
			return nil, zerr.Wrap(zerr.With(err, "manifest", spec.Name), domain.ErrDetectionFailed.Error())
		}
		packages += n
	}
	span.SetAttribute("packages", packages)
	return snapshot, nil
}

// acquire reads every listing concurrently. Results are indexed like
// cfg.Manifests.
func (a *App) acquire(ctx context.Context, cfg *domain.Config, limit int) ([][]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	listings := make([][]byte, len(cfg.Manifests))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, spec := range cfg.Manifests {
		g.Go(func() error {
			ctx, span := a.tracer.Start(ctx, "acquire", ports.WithAttributes(map[string]any{
				"manifest": spec.Name,
			}))
			defer span.End()

			data, err := a.source.Acquire(ctx, cfg.Root, spec)
			if err != nil {
				span.RecordError(err)
				return zerr.With(err, "manifest", spec.Name)
			}
			listings[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}

// record parses one listing into its own package graph and adds its
// manifest. It returns the number of packages in that graph.
func (a *App) record(
	ctx context.Context,
	snapshot *domain.Snapshot,
	spec domain.ManifestSpec,
	listing []byte,
) (int, error) {
	_, span := a.tracer.Start(ctx, "parse", ports.WithAttributes(map[string]any{
		"manifest": spec.Name,
		"parser":   spec.Parser,
	}))
	defer span.End()

	roots, err := a.parser.Parse(spec.Parser, spec.Ecosystem, listing)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	// Listings may disagree on the children of one package@version, so
	// manifests never share adjacency.
	cache := domain.NewPackageCache()
	tops, err := domain.BuildTree(cache, roots)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	opts := []domain.ManifestOption{domain.WithManifestMetadata(spec.Metadata)}
	if spec.SourceLocation != "" {
		opts = append(opts, domain.WithSourceLocation(spec.SourceLocation))
	}

	var m *domain.Manifest
	if spec.BuildTarget {
		bt := domain.NewBuildTarget(spec.Name, opts...)
		for _, pkg := range tops {
			bt.AddBuildDependencyClosure(pkg)
		}
		snapshot.AddBuildTarget(bt)
		m = bt.Manifest
	} else {
		m = domain.NewManifest(spec.Name, opts...)
		domain.RecordTree(m, tops, spec.Scope)
		snapshot.AddManifest(m)
	}

	direct, indirect := len(m.DirectDependencies()), len(m.IndirectDependencies())
	a.metrics.ObserveManifest(spec.Name, direct, indirect)
	span.SetAttribute("direct", direct)
	span.SetAttribute("indirect", indirect)
	a.logger.Info(fmt.Sprintf("%s: %d direct, %d indirect", spec.Name, direct, indirect))
	return cache.CountPackages(), nil
}

func (a *App) flushMetrics(path string, errp *error) {
	if path == "" {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		if *errp == nil {
			*errp = err
			return
		}
		a.logger.Warn(fmt.Sprintf("could not write metrics to %s", path))
	}
}
