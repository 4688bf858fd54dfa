// Package ioutils provides the output side of the build on a billy.Filesystem.
//
// This package contains functions for:
//   - Resetting the output directory
//   - Writing files and pretty-printed JSON
//
// Callers pass osfs for real runs and memfs in tests:
//
//	fs := osfs.New(".")
//	if err := ioutils.ResetDir(fs, "dist"); err != nil {
//	    return err
//	}
//	err := ioutils.WriteJSON(fs, "dist/bgm.json", records)
package ioutils
