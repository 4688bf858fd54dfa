// Package logging builds the slog loggers used by the command.
//
// Two formats are supported: "console" writes slog's text format and "json"
// writes one object per line with ts, level and msg keys. Debug level adds
// the source location to every line.
package logging
