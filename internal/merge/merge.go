package merge

import (
	"slices"

	"github.com/handiism/maplebgm-data/internal/model"
)

// group inverts assignments into TrackKey → MapIDs. Maps inside a group are
// in numeric order and maps without a track are skipped.
func group(assignments model.Assignments) *model.MultiMap[model.TrackKey, model.MapID] {
	ids := slices.DeleteFunc(assignments.IDs(), func(id model.MapID) bool {
		return assignments[id].IsZero()
	})
	return model.GroupBy(ids, func(id model.MapID) model.TrackKey {
		return assignments[id]
	})
}

// Merge returns one record per catalog track, in catalog order, carrying
// every map assigned to it and whether it is downloadable.
//
// Maps within a record are in numeric id order and take their names from
// locations, or "" when a map has none. Maps assigned to a track outside the
// catalog are left out; Orphans lists them. Merge never fails and calling it
// twice on the same input gives equal records.
//
// Example:
//
//	records := Merge(locations, assignments, catalog, downloadable)
//	err := ioutils.WriteJSON(fs, "dist/bgm.json", records)
func Merge(locations model.Locations, assignments model.Assignments, catalog []model.Track, downloadable model.KeySet) []model.Record {
	groups := group(assignments)

	records := make([]model.Record, 0, len(catalog))
	for _, track := range catalog {
		ids := groups.Get(track.Key)
		refs := make([]model.MapRef, 0, len(ids))
		for _, id := range ids {
			refs = append(refs, model.NewMapRef(id, locations.Lookup(id)))
		}

		records = append(records, model.Record{
			Track:        track,
			Maps:         refs,
			Downloadable: downloadable.Has(track.Key),
		})
	}
	return records
}

// Orphan is a map assigned to a track the catalog does not know.
type Orphan struct {
	ID  model.MapID
	Key model.TrackKey
}

// Orphans lists the maps that Merge drops, in numeric map order.
func Orphans(assignments model.Assignments, catalog []model.Track) []Orphan {
	known := make(model.KeySet, len(catalog))
	for _, track := range catalog {
		known[track.Key] = struct{}{}
	}

	groups := group(assignments)

	var orphans []Orphan
	for _, key := range groups.Keys() {
		if known.Has(key) {
			continue
		}
		for _, id := range groups.Get(key) {
			orphans = append(orphans, Orphan{ID: id, Key: key})
		}
	}
	slices.SortFunc(orphans, func(a, b Orphan) int {
		return model.CompareMapIDs(a.ID, b.ID)
	})
	return orphans
}
