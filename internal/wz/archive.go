package wz

import (
	"context"
	"fmt"
)

// Opener opens an archive by name into its root directory.
type Opener interface {
	Open(ctx context.Context, name string) (*Directory, error)
}

// Directory is a directory inside an archive.
type Directory struct {
	name  string
	dirs  []*Directory
	files []*File
}

// NewDirectory creates a directory holding dirs and files in declaration order.
func NewDirectory(name string, dirs []*Directory, files []*File) *Directory {
	return &Directory{name: name, dirs: dirs, files: files}
}

// Name returns the directory name.
func (d *Directory) Name() string { return d.name }

// Dirs returns the child directories in declaration order.
func (d *Directory) Dirs() []*Directory { return d.dirs }

// Files returns the file entries in declaration order.
func (d *Directory) Files() []*File { return d.files }

// Dir returns the child directory called name.
func (d *Directory) Dir(name string) (*Directory, error) {
	for _, sub := range d.dirs {
		if sub.name == name {
			return sub, nil
		}
	}
	return nil, fmt.Errorf("directory %q in %q: %w", name, d.name, ErrNotFound)
}

// File returns the file entry called name.
func (d *Directory) File(name string) (*File, error) {
	for _, f := range d.files {
		if f.name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("file %q in %q: %w", name, d.name, ErrNotFound)
}

// Loader parses a file entry into its image root.
type Loader func(ctx context.Context) (Node, error)

// File is an image entry inside a directory.
type File struct {
	name string
	load Loader
}

// NewFile creates a file entry parsed by load.
func NewFile(name string, load Loader) *File {
	return &File{name: name, load: load}
}

// Name returns the entry name, e.g. "Map.img".
func (f *File) Name() string { return f.name }

// Image parses the entry and resolves its root node.
func (f *File) Image(ctx context.Context) (Node, error) {
	if f.load == nil {
		return Node{}, fmt.Errorf("parse %q: no loader", f.name)
	}
	root, err := f.load(ctx)
	if err != nil {
		return Node{}, fmt.Errorf("parse %q: %w", f.name, err)
	}
	return root.Resolve(ctx)
}

// Archives is an in-memory Opener keyed by archive name.
type Archives map[string]*Directory

// Open implements Opener.
func (a Archives) Open(ctx context.Context, name string) (*Directory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("archive %q: %w", name, ErrNotFound)
	}
	return root, nil
}
