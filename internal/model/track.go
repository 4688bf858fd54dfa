package model

import (
	"bytes"
	"encoding/json"
	"maps"
)

// TrackKey identifies a track as "<structure>/<filename>".
//
// The same key is derived from the archive (the bgm value of a map), from the
// catalog (source.structure and filename) and from the downloadable list, so
// it must match byte for byte.
type TrackKey string

// NewTrackKey builds the canonical key for a track.
func NewTrackKey(structure, filename string) TrackKey {
	return TrackKey(structure + "/" + filename)
}

// IsZero reports whether the key is empty, meaning "no track".
func (k TrackKey) IsZero() bool {
	return k == ""
}

// Track is a catalog entry.
//
// Fields holds the decoded JSON object exactly as the catalog served it; Key
// is computed from it once when the catalog is loaded.
type Track struct {
	Key    TrackKey
	Fields map[string]any
}

// Record is a catalog entry enriched with the maps playing it and whether a
// deployable audio file exists.
type Record struct {
	Track
	Maps         []MapRef
	Downloadable bool
}

// MarshalJSON writes the original catalog fields plus "maps" and
// "downloadable". Maps is always an array, never null.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+2)
	maps.Copy(out, r.Fields)

	refs := r.Maps
	if refs == nil {
		refs = []MapRef{}
	}
	out["maps"] = refs
	out["downloadable"] = r.Downloadable

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// KeySet is a set of track keys.
type KeySet map[TrackKey]struct{}

// NewKeySet builds a set from raw key strings.
func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[TrackKey(k)] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set.
func (s KeySet) Has(key TrackKey) bool {
	_, ok := s[key]
	return ok
}
