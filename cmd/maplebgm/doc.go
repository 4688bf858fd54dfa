// Command maplebgm builds the background music dataset.
//
// Usage:
//
//	maplebgm build [--config maplebgm.toml] [--wz DIR] [--dist DIR] [--verbose] [--plain]
//	maplebgm config init [--overwrite]
//	maplebgm config show
//
// The build command reads exported archives from the wz directory, fetches
// the music catalog and the downloadable list, and writes dist/bgm.json. On
// a terminal it shows a spinner; with --plain or when stdout is redirected it
// prints one line per progress event.
//
// Exit status is 1 on failure and 130 when interrupted.
package main
