package extract

import (
	"context"
	"fmt"

	"github.com/handiism/maplebgm-data/internal/fanout"
	"github.com/handiism/maplebgm-data/internal/model"
	"github.com/handiism/maplebgm-data/internal/wz"
)

// LocationConfig locates the map names inside the string archive.
type LocationConfig struct {
	// Archive is the archive holding the string tables, e.g. "String.wz".
	Archive string

	// Image is the entry holding map names, e.g. "Map.img".
	Image string

	// Regions bounds how many region images are expanded at once.
	Regions fanout.Policy

	// Maps bounds how many map records of one region are expanded at once.
	Maps fanout.Policy
}

// DefaultLocationConfig returns the layout of the game client, with every
// level fully parallel.
func DefaultLocationConfig() LocationConfig {
	return LocationConfig{
		Archive: "String.wz",
		Image:   "Map.img",
		Regions: fanout.Unbounded,
		Maps:    fanout.Unbounded,
	}
}

// LocationExtractor builds the MapID → names table.
type LocationExtractor struct {
	cfg LocationConfig
}

// NewLocationExtractor creates a LocationExtractor. Start from
// DefaultLocationConfig and override only what differs.
func NewLocationExtractor(cfg LocationConfig) *LocationExtractor {
	return &LocationExtractor{cfg: cfg}
}

// Extract walks Image: its children are encoded region images, whose children
// are encoded map records. Each record holds the street name at index 0 and
// the map name at index 1; a missing one reads as "".
//
// Regions and records fan out according to cfg.Regions and cfg.Maps. When
// two regions declare the same map, the later region wins.
//
// Returns an error if:
//   - The archive or image cannot be opened
//   - A region or record fails to decode
//   - A record name is not a map id (model.ErrInvalidMapID)
//
// Example:
//
//	locations, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
//	henesys := locations.Lookup("100000000")
func (e *LocationExtractor) Extract(ctx context.Context, opener wz.Opener) (model.Locations, error) {
	root, err := opener.Open(ctx, e.cfg.Archive)
	if err != nil {
		return nil, err
	}
	file, err := root.File(e.cfg.Image)
	if err != nil {
		return nil, err
	}
	img, err := file.Image(ctx)
	if err != nil {
		return nil, err
	}
	regions, err := img.Children()
	if err != nil {
		return nil, err
	}

	groups, err := fanout.Map(ctx, e.cfg.Regions, regions, e.region)
	if err != nil {
		return nil, err
	}
	return flatten(groups), nil
}

func (e *LocationExtractor) region(ctx context.Context, region wz.Node) ([]entry[model.MapString], error) {
	records, err := resolveChildren(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("region %q: %w", region.Name(), err)
	}
	return fanout.Map(ctx, e.cfg.Maps, records, func(ctx context.Context, rec wz.Node) (entry[model.MapString], error) {
		row, err := e.record(ctx, rec)
		if err != nil {
			return row, fmt.Errorf("region %q: %w", region.Name(), err)
		}
		return row, nil
	})
}

func (e *LocationExtractor) record(ctx context.Context, rec wz.Node) (entry[model.MapString], error) {
	id, err := model.NormalizeMapID(rec.Name())
	if err != nil {
		return entry[model.MapString]{}, err
	}
	fields, err := resolveChildren(ctx, rec)
	if err != nil {
		return entry[model.MapString]{}, fmt.Errorf("map %s: %w", id, err)
	}

	return entry[model.MapString]{
		id: id,
		value: model.MapString{
			Street: textAt(fields, 0).OrElse(""),
			Map:    textAt(fields, 1).OrElse(""),
		},
	}, nil
}
