// Package feed fetches the two remote JSON feeds the build merges with the
// archive.
//
// The build feed lists the tracks whose audio has been deployed:
//
//	{"doneIds": ["Bgm00/FloralLife", "Bgm04/Orbis"]}
//
// The catalog feed is an array of track objects. Each object is kept as
// parsed so every field reaches the output; only its key is computed:
//
//	[{"filename": "FloralLife", "source": {"structure": "Bgm00"}, "description": "..."}]
//
// Example usage:
//
//	client := feed.NewClient(feed.DefaultConfig())
//	done, err := client.Downloadable(ctx)
//	tracks, err := client.Catalog(ctx)
//
// Requests are plain GETs with a User-Agent header and a timeout. There is
// no retry, no cache and no authentication.
package feed
