package wz

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a named directory, file or node is missing.
	ErrNotFound = errors.New("node not found")

	// ErrNotContainer is returned when children are requested from a leaf.
	ErrNotContainer = errors.New("node is not a container")
)

// Kind tells which variant a Node holds.
type Kind uint8

const (
	// KindLeaf holds a scalar value.
	KindLeaf Kind = iota

	// KindContainer holds named children.
	KindContainer

	// KindImage holds an encoded sub-image that must be expanded first.
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	case KindImage:
		return "image"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Expander decodes an encoded image into its children.
type Expander interface {
	Expand(ctx context.Context) ([]Node, error)
}

// ExpanderFunc adapts a function to Expander.
type ExpanderFunc func(ctx context.Context) ([]Node, error)

// Expand implements Expander.
func (f ExpanderFunc) Expand(ctx context.Context) ([]Node, error) {
	return f(ctx)
}

// Node is one entry of an image tree. The zero Node is an unnamed leaf with a
// nil value.
type Node struct {
	name     string
	kind     Kind
	value    any
	children []Node
	image    Expander
}

// Leaf creates a leaf node.
func Leaf(name string, value any) Node {
	return Node{name: name, kind: KindLeaf, value: value}
}

// Container creates a container node with the given children, in order.
func Container(name string, children ...Node) Node {
	return Node{name: name, kind: KindContainer, children: children}
}

// Image creates an encoded node that e expands on Resolve.
func Image(name string, e Expander) Node {
	return Node{name: name, kind: KindImage, image: e}
}

// Name returns the declared name of the node.
func (n Node) Name() string { return n.name }

// Kind returns the variant of the node.
func (n Node) Kind() Kind { return n.kind }

// Value returns the scalar of a leaf, or nil for other kinds.
func (n Node) Value() any {
	if n.kind != KindLeaf {
		return nil
	}
	return n.value
}

// Resolve expands an image into a container carrying the same name. Leaves
// and containers are returned unchanged.
func (n Node) Resolve(ctx context.Context) (Node, error) {
	if n.kind != KindImage {
		return n, nil
	}
	if n.image == nil {
		return Node{}, fmt.Errorf("expand %q: no decoder", n.name)
	}
	if err := ctx.Err(); err != nil {
		return Node{}, err
	}

	children, err := n.image.Expand(ctx)
	if err != nil {
		return Node{}, fmt.Errorf("expand %q: %w", n.name, err)
	}
	return Container(n.name, children...), nil
}

// Children returns the children of a container. Leaves and unexpanded
// images report ErrNotContainer.
func (n Node) Children() ([]Node, error) {
	if n.kind != KindContainer {
		return nil, fmt.Errorf("%q is a %s: %w", n.name, n.kind, ErrNotContainer)
	}
	return n.children, nil
}

// Child returns the first child called name. It reports false for leaves,
// unexpanded images and missing names.
func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return Node{}, false
}

// ChildAt returns the i-th child of a container.
func (n Node) ChildAt(i int) (Node, bool) {
	if i < 0 || i >= len(n.children) {
		return Node{}, false
	}
	return n.children[i], true
}

// Text returns the value of a leaf as a string. Non-string scalars are
// formatted with fmt; nil values and non-leaf nodes report false.
func (n Node) Text() (string, bool) {
	if n.kind != KindLeaf || n.value == nil {
		return "", false
	}
	if s, ok := n.value.(string); ok {
		return s, true
	}
	return fmt.Sprint(n.value), true
}
