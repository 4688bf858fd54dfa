// Package wz models the hierarchical asset archive as a tree of typed nodes.
//
// An archive opens into a Directory. Directories hold child directories and
// file entries; a file entry parses into an image, whose root is a Node.
//
// # Nodes
//
// Node is a tagged union with three kinds:
//
//   - KindLeaf carries a scalar value (string, number, nil, ...)
//   - KindContainer carries an ordered list of named children
//   - KindImage is an encoded sub-image whose children are only visible
//     after it has been expanded
//
// Traversal always resolves before it looks at children:
//
//	info, ok := root.Child("info")
//	if !ok {
//	    return wz.ErrNotFound
//	}
//	info, err := info.Resolve(ctx) // expands KindImage, no-op otherwise
//	bgm, ok := info.Child("bgm")
//
// # Adapters
//
// Opener is the seam to a concrete archive reader. Archives is an in-memory
// Opener; package dump reads exported archive dumps from a filesystem.
package wz
