// Package merge joins the extracted tables with the remote feeds.
//
// Merge is a pure function: the same inputs always give the same records in
// the same order, so the serialized output is byte-identical across runs.
//
//	records := merge.Merge(locations, assignments, catalog, downloadable)
//
// Output has one record per catalog track, in catalog order. A map whose
// track is not in the catalog does not appear in any record; Orphans lists
// those maps so callers can report them.
package merge
