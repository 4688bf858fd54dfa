package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/handiism/maplebgm-data/internal/fanout"
	"github.com/handiism/maplebgm-data/internal/model"
	"github.com/handiism/maplebgm-data/internal/wz"
)

// AssignmentConfig locates the per-map info nodes inside the map archive.
type AssignmentConfig struct {
	// Archive is the archive holding map images, e.g. "Map002.wz".
	Archive string

	// MapDir is the top-level directory of map images.
	MapDir string

	// DirPrefix selects the bucket directories inside MapDir ("Map0" … "Map9").
	DirPrefix string

	// Suffix is stripped from file entry names to get the map id.
	Suffix string

	// InfoNode is the child of a map image holding its properties.
	InfoNode string

	// BgmNode is the child of InfoNode naming the track.
	BgmNode string

	// Dirs bounds how many bucket directories are read at once.
	Dirs fanout.Policy

	// Files bounds how many images of one directory are parsed at once.
	Files fanout.Policy
}

// DefaultAssignmentConfig returns the layout of the game client. Buckets are
// read one after another, files inside a bucket in parallel.
func DefaultAssignmentConfig() AssignmentConfig {
	return AssignmentConfig{
		Archive:   "Map002.wz",
		MapDir:    "Map",
		DirPrefix: "Map",
		Suffix:    ".img",
		InfoNode:  "info",
		BgmNode:   "bgm",
		Dirs:      fanout.Sequential,
		Files:     fanout.Unbounded,
	}
}

// AssignmentExtractor builds the MapID → TrackKey table.
type AssignmentExtractor struct {
	cfg AssignmentConfig
}

// NewAssignmentExtractor creates an AssignmentExtractor.
func NewAssignmentExtractor(cfg AssignmentConfig) *AssignmentExtractor {
	return &AssignmentExtractor{cfg: cfg}
}

// Extract reads every map image below the bucket directories and returns the
// bgm of each. A map without bgm is assigned the empty key.
//
// Returns an error if:
//   - The archive or map directory cannot be opened
//   - A map image fails to decode or has no info node
//   - A file name is not a map id (model.ErrInvalidMapID)
func (e *AssignmentExtractor) Extract(ctx context.Context, opener wz.Opener) (model.Assignments, error) {
	root, err := opener.Open(ctx, e.cfg.Archive)
	if err != nil {
		return nil, err
	}
	mapDir, err := root.Dir(e.cfg.MapDir)
	if err != nil {
		return nil, err
	}

	var buckets []*wz.Directory
	for _, d := range mapDir.Dirs() {
		if strings.HasPrefix(d.Name(), e.cfg.DirPrefix) {
			buckets = append(buckets, d)
		}
	}

	groups, err := fanout.Map(ctx, e.cfg.Dirs, buckets, e.bucket)
	if err != nil {
		return nil, err
	}
	return flatten(groups), nil
}

func (e *AssignmentExtractor) bucket(ctx context.Context, dir *wz.Directory) ([]entry[model.TrackKey], error) {
	rows, err := fanout.Map(ctx, e.cfg.Files, dir.Files(), e.file)
	if err != nil {
		return nil, fmt.Errorf("directory %q: %w", dir.Name(), err)
	}
	return rows, nil
}

func (e *AssignmentExtractor) file(ctx context.Context, f *wz.File) (entry[model.TrackKey], error) {
	id, err := model.NormalizeMapID(strings.TrimSuffix(f.Name(), e.cfg.Suffix))
	if err != nil {
		return entry[model.TrackKey]{}, err
	}

	img, err := f.Image(ctx)
	if err != nil {
		return entry[model.TrackKey]{}, err
	}
	info, ok := img.Child(e.cfg.InfoNode)
	if !ok {
		return entry[model.TrackKey]{}, fmt.Errorf("%s: %q: %w", f.Name(), e.cfg.InfoNode, wz.ErrNotFound)
	}
	fields, err := resolveChildren(ctx, info)
	if err != nil {
		return entry[model.TrackKey]{}, fmt.Errorf("%s: %w", f.Name(), err)
	}

	bgm := childText(fields, e.cfg.BgmNode).OrElse("")
	return entry[model.TrackKey]{id: id, value: model.TrackKey(bgm)}, nil
}
