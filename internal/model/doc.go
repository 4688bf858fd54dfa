// Package model defines the core data structures shared by the extractors,
// the merge engine and the build driver.
//
// # Identifiers
//
// MapID identifies an in-game map. It is always the normalized decimal form
// of a numeric asset name:
//
//	id, err := model.NormalizeMapID("000100000") // "100000"
//
// TrackKey identifies a music track across every data source using the
// canonical "<structure>/<filename>" shape:
//
//	key := model.NewTrackKey("Bgm00", "GoPicnic") // "Bgm00/GoPicnic"
//
// # Tables
//
// Locations maps MapID to its display names, Assignments maps MapID to the
// TrackKey it plays. Both are plain maps; lookups that may miss return
// documented defaults instead of failing.
//
// # Records
//
// Track is one entry of the remote catalog, kept as an opaque JSON object so
// every field of the feed survives into the output. Record is a Track plus
// the maps that play it and its download availability.
//
// # Helpers
//
// Optional carries a value that may be absent, and MultiMap groups values
// under a key while keeping insertion order.
package model
