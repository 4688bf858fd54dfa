package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/handiism/maplebgm-data/internal/build"
	"github.com/handiism/maplebgm-data/internal/config"
	"github.com/handiism/maplebgm-data/internal/feed"
	"github.com/handiism/maplebgm-data/internal/logging"
	"github.com/handiism/maplebgm-data/internal/tui"
	"github.com/handiism/maplebgm-data/internal/wz/dump"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	wz      string
	dist    string
	verbose bool
	plain   bool
}

func newBuildCommand(configFlag *string) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Extract the archives, fetch the feeds and write the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(*configFlag)
			if err != nil {
				return err
			}
			applyBuildFlags(settings, flags)

			interactive := !flags.plain && isTerminal(os.Stdout)
			return runBuild(cmd.Context(), cmd.OutOrStdout(), settings, flags.verbose, interactive)
		},
	}

	cmd.Flags().StringVar(&flags.wz, "wz", "", "Directory holding the exported archives (overrides config)")
	cmd.Flags().StringVar(&flags.dist, "dist", "", "Output directory, removed and recreated on every run (overrides config)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show verbose output")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "Print progress lines instead of the spinner")

	return cmd
}

func loadSettings(path string) (*config.Settings, error) {
	if strings.TrimSpace(path) == "" {
		path = config.DefaultPath
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return settings, nil
}

func applyBuildFlags(settings *config.Settings, flags buildFlags) {
	if flags.wz != "" {
		settings.Paths.WZ = flags.wz
	}
	if flags.dist != "" {
		settings.Paths.Dist = flags.dist
	}
	if flags.verbose && strings.EqualFold(strings.TrimSpace(settings.Log.Level), "info") {
		settings.Log.Level = "debug"
	}
}

func runBuild(ctx context.Context, out io.Writer, settings *config.Settings, verbose, interactive bool) error {
	dist, err := filepath.Abs(settings.Paths.Dist)
	if err != nil {
		return fmt.Errorf("resolve dist: %w", err)
	}
	if err := checkDist(dist, settings.Paths.WZ); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(settings, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	// The output filesystem is rooted at the parent of dist so that absolute
	// and relative dist paths both work.
	outRoot := filepath.Dir(dist)
	settings.Paths.Dist = filepath.Base(dist)

	deps := build.Deps{
		Archive: dump.NewOS(settings.Paths.WZ),
		Feeds:   feed.NewClient(settings.ToFeedConfig()),
		Output:  osfs.New(outRoot),
		Logger:  logger,
	}
	run := func(ctx context.Context, onProgress func(build.ProgressEvent)) (*build.Summary, error) {
		return build.NewBuilder(settings, deps, onProgress).Run(ctx)
	}

	var summary *build.Summary
	if interactive {
		summary, err = tui.Run(ctx, run, verbose)
	} else {
		fmt.Fprintln(out, "♪ maplebgm-data")
		summary, err = run(ctx, newPlainPrinter(out, verbose))
	}
	if err != nil {
		return err
	}

	summary.OutputPath = filepath.Join(outRoot, filepath.FromSlash(summary.OutputPath))
	fmt.Fprintln(out, renderSummary(summary))
	if verbose && len(summary.Orphans) > 0 {
		fmt.Fprintln(out, renderOrphans(summary.Orphans))
	}
	return nil
}

var errUnsafeDist = errors.New("refusing to reset dist")

// checkDist rejects a dist whose reset would remove the filesystem root, the
// working directory or the archive dump.
func checkDist(dist, wzDir string) error {
	if filepath.Dir(dist) == dist {
		return fmt.Errorf("%w %s: filesystem root", errUnsafeDist, dist)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	if within(cwd, dist) {
		return fmt.Errorf("%w %s: contains the working directory", errUnsafeDist, dist)
	}

	wzAbs, err := filepath.Abs(wzDir)
	if err != nil {
		return fmt.Errorf("resolve wz: %w", err)
	}
	if within(wzAbs, dist) {
		return fmt.Errorf("%w %s: contains the archive directory %s", errUnsafeDist, dist, wzAbs)
	}
	return nil
}

// within reports whether target is dir or lies below it. Both paths are
// absolute.
func within(target, dir string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// newLogger builds the run logger. With the spinner on screen, logs go only
// to the configured file.
func newLogger(settings *config.Settings, interactive bool) (*slog.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if path := strings.TrimSpace(settings.Log.File); path != "" {
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		w = f
		if !interactive {
			w = io.MultiWriter(os.Stderr, f)
		}
		closeFn = func() { _ = f.Close() }
	} else if interactive {
		return logging.NewNop(), closeFn, nil
	}

	logger, err := logging.New(logging.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		Output: w,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

// newPlainPrinter prints progress events as lines. Events may arrive from
// several goroutines.
func newPlainPrinter(out io.Writer, verbose bool) func(build.ProgressEvent) {
	var mu sync.Mutex
	return func(event build.ProgressEvent) {
		if event.Level == build.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case build.LevelError:
			prefix = "✗ "
		case build.LevelWarning:
			prefix = "! "
		case build.LevelSuccess:
			prefix = "✓ "
		case build.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, prefix+event.Message)
	}
}
