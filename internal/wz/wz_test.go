package wz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("image expands into container", func(t *testing.T) {
		calls := 0
		img := Image("info", ExpanderFunc(func(context.Context) ([]Node, error) {
			calls++
			return []Node{Leaf("bgm", "Bgm00/GoPicnic"), Leaf("town", int64(1))}, nil
		}))

		_, ok := img.Child("bgm")
		assert.False(t, ok, "children of an unexpanded image are not visible")

		got, err := img.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, KindContainer, got.Kind())
		assert.Equal(t, "info", got.Name())

		bgm, ok := got.Child("bgm")
		require.True(t, ok)
		text, ok := bgm.Text()
		require.True(t, ok)
		assert.Equal(t, "Bgm00/GoPicnic", text)
	})

	t.Run("leaf and container are unchanged", func(t *testing.T) {
		leaf := Leaf("x", "y")
		got, err := leaf.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, leaf, got)

		c := Container("c", leaf)
		got, err = c.Resolve(ctx)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("expand error carries node name", func(t *testing.T) {
		boom := errors.New("corrupt")
		img := Image("victoria", ExpanderFunc(func(context.Context) ([]Node, error) {
			return nil, boom
		}))
		_, err := img.Resolve(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "victoria")
	})

	t.Run("nil decoder fails", func(t *testing.T) {
		_, err := Image("broken", nil).Resolve(ctx)
		assert.Error(t, err)
	})

	t.Run("cancelled context stops expansion", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		img := Image("x", ExpanderFunc(func(context.Context) ([]Node, error) {
			t.Fatal("expander should not run")
			return nil, nil
		}))
		_, err := img.Resolve(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNode_Children(t *testing.T) {
	c := Container("map", Leaf("streetName", "Victoria Road"), Leaf("mapName", "Henesys"))

	children, err := c.Children()
	require.NoError(t, err)
	assert.Len(t, children, 2)

	first, ok := c.ChildAt(0)
	require.True(t, ok)
	assert.Equal(t, "streetName", first.Name())

	_, ok = c.ChildAt(2)
	assert.False(t, ok)
	_, ok = c.ChildAt(-1)
	assert.False(t, ok)

	_, err = Leaf("x", 1).Children()
	assert.ErrorIs(t, err, ErrNotContainer)

	_, err = Image("x", nil).Children()
	assert.ErrorIs(t, err, ErrNotContainer)
}

func TestNode_Text(t *testing.T) {
	tests := []struct {
		name   string
		node   Node
		want   string
		wantOK bool
	}{
		{"string leaf", Leaf("a", "Henesys"), "Henesys", true},
		{"empty string leaf", Leaf("a", ""), "", true},
		{"integer leaf", Leaf("a", int64(100)), "100", true},
		{"nil leaf", Leaf("a", nil), "", false},
		{"container", Container("a"), "", false},
		{"zero node", Node{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.node.Text()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectory_Lookup(t *testing.T) {
	file := NewFile("Map.img", func(context.Context) (Node, error) {
		return Container("Map.img"), nil
	})
	sub := NewDirectory("Map", nil, nil)
	root := NewDirectory("String.wz", []*Directory{sub}, []*File{file})

	got, err := root.Dir("Map")
	require.NoError(t, err)
	assert.Same(t, sub, got)

	f, err := root.File("Map.img")
	require.NoError(t, err)
	assert.Equal(t, "Map.img", f.Name())

	_, err = root.Dir("Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = root.File("Missing.img")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFile_Image(t *testing.T) {
	ctx := context.Background()

	t.Run("root image is resolved", func(t *testing.T) {
		f := NewFile("100000000.img", func(context.Context) (Node, error) {
			return Image("100000000.img", ExpanderFunc(func(context.Context) ([]Node, error) {
				return []Node{Container("info")}, nil
			})), nil
		})
		root, err := f.Image(ctx)
		require.NoError(t, err)
		_, ok := root.Child("info")
		assert.True(t, ok)
	})

	t.Run("load error is wrapped", func(t *testing.T) {
		f := NewFile("bad.img", func(context.Context) (Node, error) {
			return Node{}, errors.New("truncated")
		})
		_, err := f.Image(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.img")
	})
}

func TestArchives_Open(t *testing.T) {
	root := NewDirectory("String.wz", nil, nil)
	archives := Archives{"String.wz": root}

	got, err := archives.Open(context.Background(), "String.wz")
	require.NoError(t, err)
	assert.Same(t, root, got)

	_, err = archives.Open(context.Background(), "Map002.wz")
	assert.ErrorIs(t, err, ErrNotFound)
}
