package dump

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/handiism/maplebgm-data/internal/wz"
)

// Extension is the suffix of exported image files.
const Extension = ".json"

// ErrMalformed is returned when an image file does not follow the dump format.
var ErrMalformed = errors.New("malformed dump")

// Archive opens exported archives stored under the root of a filesystem.
type Archive struct {
	fs billy.Filesystem
}

// New creates an Archive reading from fs.
func New(fs billy.Filesystem) *Archive {
	return &Archive{fs: fs}
}

// NewOS creates an Archive reading from a directory on disk.
func NewOS(dir string) *Archive {
	return New(osfs.New(dir))
}

// Open implements wz.Opener. The directory tree is listed eagerly; image files
// are only read when their entry is parsed.
func (a *Archive) Open(ctx context.Context, name string) (*wz.Directory, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("archive %q: %w", name, wz.ErrNotFound)
		}
		return nil, fmt.Errorf("archive %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive %q is not a directory: %w", name, ErrMalformed)
	}
	return a.readDir(ctx, name, name)
}

func (a *Archive) readDir(ctx context.Context, path, name string) (*wz.Directory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := a.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	slices.SortFunc(entries, func(x, y os.FileInfo) int {
		return strings.Compare(x.Name(), y.Name())
	})

	var (
		dirs  []*wz.Directory
		files []*wz.File
	)
	for _, entry := range entries {
		full := a.fs.Join(path, entry.Name())
		switch {
		case entry.IsDir():
			sub, err := a.readDir(ctx, full, entry.Name())
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, sub)
		case strings.HasSuffix(entry.Name(), Extension):
			entryName := strings.TrimSuffix(entry.Name(), Extension)
			files = append(files, wz.NewFile(entryName, a.loader(full, entryName)))
		}
	}

	return wz.NewDirectory(name, dirs, files), nil
}

func (a *Archive) loader(path, entryName string) wz.Loader {
	return func(ctx context.Context) (wz.Node, error) {
		if err := ctx.Err(); err != nil {
			return wz.Node{}, err
		}
		data, err := util.ReadFile(a.fs, path)
		if err != nil {
			return wz.Node{}, err
		}
		return Parse(data, entryName)
	}
}
