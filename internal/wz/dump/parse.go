package dump

import (
	"context"
	"fmt"

	"github.com/handiism/maplebgm-data/internal/wz"
	"github.com/ohler55/ojg/oj"
)

// Node types that hold children. Any object with a "children" array is
// treated the same way regardless of its type.
var containerTypes = map[string]bool{
	"property": true,
	"image":    true,
}

// Parse decodes one exported image. The root takes defaultName when the file
// does not declare a name of its own.
func Parse(data []byte, defaultName string) (wz.Node, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return wz.Node{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return wz.Node{}, fmt.Errorf("%w: root is %T, want object", ErrMalformed, v)
	}
	if _, named := obj["name"].(string); !named {
		obj["name"] = defaultName
	}
	return decode(obj)
}

func decode(obj map[string]any) (wz.Node, error) {
	name, ok := obj["name"].(string)
	if !ok {
		return wz.Node{}, fmt.Errorf("%w: node without name", ErrMalformed)
	}

	raw, hasChildren := obj["children"]
	kind, _ := obj["type"].(string)
	if !hasChildren && !containerTypes[kind] {
		return wz.Leaf(name, obj["value"]), nil
	}

	var children []any
	if raw != nil {
		children, ok = raw.([]any)
		if !ok {
			return wz.Node{}, fmt.Errorf("%w: children of %q is %T, want array", ErrMalformed, name, raw)
		}
	}

	return wz.Image(name, wz.ExpanderFunc(func(ctx context.Context) ([]wz.Node, error) {
		return decodeChildren(name, children)
	})), nil
}

func decodeChildren(parent string, raw []any) ([]wz.Node, error) {
	nodes := make([]wz.Node, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: child %d of %q is %T, want object", ErrMalformed, i, parent, item)
		}
		node, err := decode(obj)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
