// Package extract walks the asset archive and recovers the two lookup tables
// the merge needs.
//
// LocationExtractor reads the string archive and returns the display names of
// every map:
//
//	locs, err := extract.NewLocationExtractor(extract.DefaultLocationConfig()).Extract(ctx, opener)
//	fmt.Println(locs["100000000"].Map) // "Henesys"
//
// AssignmentExtractor reads the map archive and returns the track each map
// plays:
//
//	assign, err := extract.NewAssignmentExtractor(extract.DefaultAssignmentConfig()).Extract(ctx, opener)
//	fmt.Println(assign["100000000"]) // "Bgm00/FloralLife"
//
// # Concurrency
//
// Every traversal level fans out under its own fanout.Policy. The defaults
// expand all regions and all maps of the string archive at once, while the
// map archive is read one directory at a time with every file of that
// directory in parallel.
//
// # Failures
//
// Structural problems (missing archive, missing image, missing info node,
// a non-numeric map name) abort the extraction. Missing optional values
// (street name, map name, bgm) fall back to the empty string.
package extract
