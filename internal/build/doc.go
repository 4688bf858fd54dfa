// Package build runs one dataset build from start to finish.
//
// # Builder
//
// The Builder coordinates the whole process:
//
//  1. Reset the output directory
//  2. Fetch the downloadable list and the catalog, and extract the map
//     assignments and map names, all at once
//  3. Merge the four inputs and report orphaned maps
//  4. Write the records as indented JSON
//
// # Basic Usage
//
//	builder := build.NewBuilder(settings, build.Deps{
//	    Archive: dump.NewOS(settings.Paths.WZ),
//	    Feeds:   feed.NewClient(settings.ToFeedConfig()),
//	    Output:  osfs.New("."),
//	    Logger:  logger,
//	}, func(event build.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := builder.Run(ctx)
//
// # Failures
//
// Any failing input cancels the others and aborts the run before anything is
// written; the output directory is left empty.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// The callback may be invoked from several goroutines at once.
package build
