package ioutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// ResetDir removes dir with everything below it and creates it again empty.
//
// A missing dir is not an error.
func ResetDir(fs billy.Filesystem, dir string) error {
	if err := util.RemoveAll(fs, dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return EnsureDir(fs, dir)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(fs billy.Filesystem, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// WriteFile writes data to name, creating its directory if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(fs billy.Filesystem, name string, data []byte) error {
	if dir := path.Dir(name); dir != "." {
		if err := EnsureDir(fs, dir); err != nil {
			return err
		}
	}
	if err := util.WriteFile(fs, name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// WriteJSON writes v as JSON indented by two spaces, without a trailing
// newline. HTML characters are written as-is.
//
// Map keys are written in sorted order, so equal values give equal bytes.
func WriteJSON(fs billy.Filesystem, name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return WriteFile(fs, name, bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
