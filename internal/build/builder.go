package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"github.com/handiism/maplebgm-data/internal/config"
	"github.com/handiism/maplebgm-data/internal/extract"
	ioutils "github.com/handiism/maplebgm-data/internal/io"
	"github.com/handiism/maplebgm-data/internal/merge"
	"github.com/handiism/maplebgm-data/internal/model"
	"github.com/handiism/maplebgm-data/internal/wz"
	"golang.org/x/sync/errgroup"
)

// Feeds supplies the two remote inputs. *feed.Client implements it.
type Feeds interface {
	Downloadable(ctx context.Context) (model.KeySet, error)
	Catalog(ctx context.Context) ([]model.Track, error)
}

// Deps are the collaborators of a Builder.
type Deps struct {
	Archive wz.Opener
	Feeds   Feeds
	Output  billy.Filesystem

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Summary describes a finished build.
type Summary struct {
	RunID        string
	Tracks       int
	Downloadable int
	Maps         int
	AssignedMaps int
	Orphans      []merge.Orphan
	OutputPath   string
	Duration     time.Duration
}

// Builder coordinates a dataset build.
type Builder struct {
	dist       string
	outputPath string
	locations  *extract.LocationExtractor
	assignment *extract.AssignmentExtractor

	archive wz.Opener
	feeds   Feeds
	output  billy.Filesystem
	logger  *slog.Logger

	onProgress func(ProgressEvent)
}

// NewBuilder creates a new Builder.
func NewBuilder(settings *config.Settings, deps Deps, onProgress func(ProgressEvent)) *Builder {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		dist:       settings.Paths.Dist,
		outputPath: settings.OutputPath(),
		locations:  extract.NewLocationExtractor(settings.ToLocationConfig()),
		assignment: extract.NewAssignmentExtractor(settings.ToAssignmentConfig()),
		archive:    deps.Archive,
		feeds:      deps.Feeds,
		output:     deps.Output,
		logger:     logger,
		onProgress: onProgress,
	}
}

// inputs are the four independent sources of a build.
type inputs struct {
	downloadable model.KeySet
	catalog      []model.Track
	assignments  model.Assignments
	locations    model.Locations
}

// Run performs one build.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := b.logger.With("run_id", runID)
	outputPath := b.outputPath

	logger.Info("build started", "dist", b.dist)
	b.progress(ProgressEvent{Message: fmt.Sprintf("Resetting %s", b.dist), Level: LevelVerbose})
	if err := ioutils.ResetDir(b.output, b.dist); err != nil {
		return nil, b.fail(logger, err)
	}

	in, err := b.gather(ctx, logger)
	if err != nil {
		return nil, b.fail(logger, err)
	}

	b.progress(ProgressEvent{Message: "Merging", Level: LevelInfo})
	records := merge.Merge(in.locations, in.assignments, in.catalog, in.downloadable)
	orphans := merge.Orphans(in.assignments, in.catalog)
	for _, o := range orphans {
		logger.Warn("map plays a track missing from the catalog", "map_id", o.ID, "track", o.Key)
		b.progress(ProgressEvent{Message: fmt.Sprintf("Map %s plays %s, which is not in the catalog", o.ID, o.Key), Level: LevelWarning})
	}

	if err := ioutils.WriteJSON(b.output, outputPath, records); err != nil {
		return nil, b.fail(logger, err)
	}

	summary := &Summary{
		RunID:      runID,
		Tracks:     len(records),
		Maps:       len(in.assignments),
		Orphans:    orphans,
		OutputPath: outputPath,
		Duration:   time.Since(start),
	}
	for _, rec := range records {
		if rec.Downloadable {
			summary.Downloadable++
		}
		summary.AssignedMaps += len(rec.Maps)
	}

	logger.Info("build complete",
		"tracks", summary.Tracks,
		"downloadable", summary.Downloadable,
		"assigned_maps", summary.AssignedMaps,
		"orphaned_maps", len(summary.Orphans),
		"output", summary.OutputPath,
		"duration", summary.Duration,
	)
	b.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %d tracks to %s", summary.Tracks, summary.OutputPath), Level: LevelSuccess})
	return summary, nil
}

// gather resolves the four inputs concurrently. The first failure cancels
// the rest.
func (b *Builder) gather(ctx context.Context, logger *slog.Logger) (*inputs, error) {
	var in inputs
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.progress(ProgressEvent{Message: "Fetching downloadable list", Level: LevelInfo})
		set, err := b.feeds.Downloadable(ctx)
		if err != nil {
			return fmt.Errorf("fetch downloadable list: %w", err)
		}
		in.downloadable = set
		logger.Debug("downloadable list fetched", "tracks", len(set))
		b.progress(ProgressEvent{Message: fmt.Sprintf("Found %d downloadable tracks", len(set)), Level: LevelVerbose})
		return nil
	})

	g.Go(func() error {
		b.progress(ProgressEvent{Message: "Fetching catalog", Level: LevelInfo})
		tracks, err := b.feeds.Catalog(ctx)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		in.catalog = tracks
		logger.Debug("catalog fetched", "tracks", len(tracks))
		b.progress(ProgressEvent{Message: fmt.Sprintf("Found %d catalog tracks", len(tracks)), Level: LevelVerbose})
		return nil
	})

	g.Go(func() error {
		b.progress(ProgressEvent{Message: "Extracting map music", Level: LevelInfo})
		assignments, err := b.assignment.Extract(ctx, b.archive)
		if err != nil {
			return fmt.Errorf("extract map music: %w", err)
		}
		in.assignments = assignments
		logger.Debug("map music extracted", "maps", len(assignments))
		b.progress(ProgressEvent{Message: fmt.Sprintf("Found music for %d maps", len(assignments)), Level: LevelVerbose})
		return nil
	})

	g.Go(func() error {
		b.progress(ProgressEvent{Message: "Extracting map names", Level: LevelInfo})
		locations, err := b.locations.Extract(ctx, b.archive)
		if err != nil {
			return fmt.Errorf("extract map names: %w", err)
		}
		in.locations = locations
		logger.Debug("map names extracted", "maps", len(locations))
		b.progress(ProgressEvent{Message: fmt.Sprintf("Found names for %d maps", len(locations)), Level: LevelVerbose})
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (b *Builder) fail(logger *slog.Logger, err error) error {
	logger.Error("build failed", "error", err)
	b.progress(ProgressEvent{Message: fmt.Sprintf("Build failed: %v", err), Level: LevelError})
	return err
}

func (b *Builder) progress(event ProgressEvent) {
	if b.onProgress != nil {
		b.onProgress(event)
	}
}
