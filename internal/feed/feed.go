package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/maplebgm-data/internal/model"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// ErrDecode is returned when a feed body does not have the expected shape.
var ErrDecode = errors.New("decode feed")

var (
	structurePath = jp.MustParseString("$.source.structure")
	filenamePath  = jp.MustParseString("$.filename")
)

type buildManifest struct {
	DoneIDs []string `json:"doneIds"`
}

// Downloadable returns the keys of every deployed track, read from the
// "doneIds" array of the build manifest.
//
// Returns an error if:
//   - The request fails or the status is not 200 OK (ErrStatus)
//   - The body is not a JSON object with a string array (ErrDecode)
func (c *Client) Downloadable(ctx context.Context) (model.KeySet, error) {
	body, err := c.get(ctx, c.cfg.BuildURL)
	if err != nil {
		return nil, err
	}

	var manifest buildManifest
	if err := json.Unmarshal(body, &manifest); err != nil {
		return nil, fmt.Errorf("%w: build: %w", ErrDecode, err)
	}
	return model.NewKeySet(manifest.DoneIDs...), nil
}

// Catalog returns every catalog track in feed order. See ParseCatalog for
// the accepted body.
func (c *Client) Catalog(ctx context.Context) ([]model.Track, error) {
	body, err := c.get(ctx, c.cfg.CatalogURL)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(body)
}

// ParseCatalog decodes a catalog body. Every element must be an object.
func ParseCatalog(data []byte) ([]model.Track, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %w", ErrDecode, err)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: catalog: want array, got %T", ErrDecode, v)
	}

	tracks := make([]model.Track, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: catalog[%d]: want object, got %T", ErrDecode, i, item)
		}
		tracks = append(tracks, model.Track{Key: TrackKey(fields), Fields: fields})
	}
	return tracks, nil
}

// TrackKey computes the key of a catalog object. A missing part renders as
// the empty string.
func TrackKey(fields map[string]any) model.TrackKey {
	return model.NewTrackKey(first(structurePath, fields), first(filenamePath, fields))
}

func first(path jp.Expr, data any) string {
	switch v := path.First(data).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
