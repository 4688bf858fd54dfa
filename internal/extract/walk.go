package extract

import (
	"context"

	"github.com/handiism/maplebgm-data/internal/model"
	"github.com/handiism/maplebgm-data/internal/wz"
)

// entry is one extracted row before it is folded into a table.
type entry[V any] struct {
	id    model.MapID
	value V
}

// resolveChildren expands n if needed and returns its children.
func resolveChildren(ctx context.Context, n wz.Node) ([]wz.Node, error) {
	resolved, err := n.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return resolved.Children()
}

// textAt returns the text of the i-th node, if there is one.
func textAt(nodes []wz.Node, i int) model.Optional[string] {
	if i < 0 || i >= len(nodes) {
		return model.None[string]()
	}
	return text(nodes[i])
}

// childText returns the text of the first node called name, if there is one.
func childText(nodes []wz.Node, name string) model.Optional[string] {
	for _, n := range nodes {
		if n.Name() == name {
			return text(n)
		}
	}
	return model.None[string]()
}

func text(n wz.Node) model.Optional[string] {
	if s, ok := n.Text(); ok {
		return model.Some(s)
	}
	return model.None[string]()
}

// flatten folds grouped rows into one table. Rows are applied in order, so a
// duplicate id keeps the value seen last.
func flatten[V any](groups [][]entry[V]) map[model.MapID]V {
	size := 0
	for _, g := range groups {
		size += len(g)
	}
	out := make(map[model.MapID]V, size)
	for _, g := range groups {
		for _, e := range g {
			out[e.id] = e.value
		}
	}
	return out
}
