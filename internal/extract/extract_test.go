package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/handiism/maplebgm-data/internal/fanout"
	"github.com/handiism/maplebgm-data/internal/model"
	"github.com/handiism/maplebgm-data/internal/wz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoded(name string, children ...wz.Node) wz.Node {
	return wz.Image(name, wz.ExpanderFunc(func(context.Context) ([]wz.Node, error) {
		return children, nil
	}))
}

func imageFile(name string, children ...wz.Node) *wz.File {
	return wz.NewFile(name, func(context.Context) (wz.Node, error) {
		return encoded(name, children...), nil
	})
}

func stringArchive(regions ...wz.Node) wz.Archives {
	return wz.Archives{
		"String.wz": wz.NewDirectory("String.wz", nil, []*wz.File{imageFile("Map.img", regions...)}),
	}
}

func mapArchive(buckets ...*wz.Directory) wz.Archives {
	return wz.Archives{
		"Map002.wz": wz.NewDirectory("Map002.wz", []*wz.Directory{wz.NewDirectory("Map", buckets, nil)}, nil),
	}
}

func mapImage(name string, info ...wz.Node) *wz.File {
	return imageFile(name, encoded("info", info...))
}

func TestLocationExtractor(t *testing.T) {
	ctx := context.Background()

	t.Run("names come from the first two leaves", func(t *testing.T) {
		archives := stringArchive(
			encoded("victoria",
				encoded("100000000", wz.Leaf("streetName", "Victoria Road"), wz.Leaf("mapName", "Henesys")),
				encoded("000100000", wz.Leaf("streetName", "Maple Road"), wz.Leaf("mapName", "Mushroom Town")),
			),
			encoded("ossyria",
				encoded("200000000", wz.Leaf("streetName", "Orbis"), wz.Leaf("mapName", "Orbis Park"), wz.Leaf("extra", "x")),
			),
		)

		got, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		assert.Equal(t, model.Locations{
			"100000000": {Street: "Victoria Road", Map: "Henesys"},
			"100000":    {Street: "Maple Road", Map: "Mushroom Town"},
			"200000000": {Street: "Orbis", Map: "Orbis Park"},
		}, got)
	})

	t.Run("missing leaves default to empty", func(t *testing.T) {
		archives := stringArchive(
			encoded("etc",
				encoded("1", wz.Leaf("streetName", "Only Street")),
				encoded("2"),
			),
		)

		got, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		assert.Equal(t, model.MapString{Street: "Only Street"}, got["1"])
		assert.Equal(t, model.MapString{}, got["2"])
		assert.Contains(t, got, model.MapID("2"))
	})

	t.Run("later region wins on duplicate ids", func(t *testing.T) {
		archives := stringArchive(
			encoded("a", encoded("7", wz.Leaf("s", "First"), wz.Leaf("m", "First"))),
			encoded("b", encoded("007", wz.Leaf("s", "Second"), wz.Leaf("m", "Second"))),
		)

		got, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		assert.Equal(t, model.MapString{Street: "Second", Map: "Second"}, got["7"])
	})

	t.Run("non-numeric map name is fatal", func(t *testing.T) {
		archives := stringArchive(encoded("victoria", encoded("henesys", wz.Leaf("s", "x"))))

		_, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		assert.ErrorIs(t, err, model.ErrInvalidMapID)
		assert.Contains(t, err.Error(), "victoria")
	})

	t.Run("missing image is fatal", func(t *testing.T) {
		archives := wz.Archives{"String.wz": wz.NewDirectory("String.wz", nil, nil)}

		_, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		assert.ErrorIs(t, err, wz.ErrNotFound)
	})

	t.Run("decode failure is fatal", func(t *testing.T) {
		boom := errors.New("corrupt region")
		archives := stringArchive(wz.Image("broken", wz.ExpanderFunc(func(context.Context) ([]wz.Node, error) {
			return nil, boom
		})))

		_, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("sequential policy gives the same table", func(t *testing.T) {
		archives := stringArchive(
			encoded("a", encoded("1", wz.Leaf("s", "A"), wz.Leaf("m", "A"))),
			encoded("b", encoded("2", wz.Leaf("s", "B"), wz.Leaf("m", "B"))),
		)
		cfg := DefaultLocationConfig()
		cfg.Regions = fanout.Sequential
		cfg.Maps = fanout.Sequential

		seq, err := NewLocationExtractor(cfg).Extract(ctx, archives)
		require.NoError(t, err)
		par, err := NewLocationExtractor(DefaultLocationConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		assert.Equal(t, par, seq)
	})
}

func TestAssignmentExtractor(t *testing.T) {
	ctx := context.Background()

	t.Run("bgm of every map in prefixed buckets", func(t *testing.T) {
		archives := mapArchive(
			wz.NewDirectory("Map0", nil, []*wz.File{
				mapImage("000010000.img", wz.Leaf("version", int64(10)), wz.Leaf("bgm", "Bgm00/GoPicnic")),
			}),
			wz.NewDirectory("Map1", nil, []*wz.File{
				mapImage("100000000.img", wz.Leaf("bgm", "Bgm00/FloralLife")),
				mapImage("100000001.img", wz.Leaf("bgm", "Bgm00/FloralLife")),
			}),
			wz.NewDirectory("Obj", nil, []*wz.File{
				mapImage("999.img", wz.Leaf("bgm", "Bgm99/Ignored")),
			}),
		)

		got, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		assert.Equal(t, model.Assignments{
			"10000":     "Bgm00/GoPicnic",
			"100000000": "Bgm00/FloralLife",
			"100000001": "Bgm00/FloralLife",
		}, got)
	})

	t.Run("missing bgm is the empty key", func(t *testing.T) {
		archives := mapArchive(wz.NewDirectory("Map9", nil, []*wz.File{
			mapImage("900000000.img", wz.Leaf("returnMap", int64(999999999))),
		}))

		got, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		require.Contains(t, got, model.MapID("900000000"))
		assert.True(t, got["900000000"].IsZero())
	})

	t.Run("missing info is fatal", func(t *testing.T) {
		archives := mapArchive(wz.NewDirectory("Map1", nil, []*wz.File{
			imageFile("100000000.img", encoded("life")),
		}))

		_, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, archives)
		assert.ErrorIs(t, err, wz.ErrNotFound)
		assert.Contains(t, err.Error(), "100000000.img")
	})

	t.Run("non-numeric file name is fatal", func(t *testing.T) {
		archives := mapArchive(wz.NewDirectory("Map1", nil, []*wz.File{
			mapImage("Henesys.img", wz.Leaf("bgm", "Bgm00/FloralLife")),
		}))

		_, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, archives)
		assert.ErrorIs(t, err, model.ErrInvalidMapID)
	})

	t.Run("missing map directory is fatal", func(t *testing.T) {
		archives := wz.Archives{"Map002.wz": wz.NewDirectory("Map002.wz", nil, nil)}

		_, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, archives)
		assert.ErrorIs(t, err, wz.ErrNotFound)
	})

	t.Run("missing archive is fatal", func(t *testing.T) {
		_, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, wz.Archives{})
		assert.ErrorIs(t, err, wz.ErrNotFound)
	})

	t.Run("later bucket wins on duplicate ids", func(t *testing.T) {
		archives := mapArchive(
			wz.NewDirectory("Map0", nil, []*wz.File{mapImage("5.img", wz.Leaf("bgm", "Bgm00/Old"))}),
			wz.NewDirectory("Map1", nil, []*wz.File{mapImage("5.img", wz.Leaf("bgm", "Bgm00/New"))}),
		)

		got, err := NewAssignmentExtractor(DefaultAssignmentConfig()).Extract(ctx, archives)
		require.NoError(t, err)
		assert.Equal(t, model.TrackKey("Bgm00/New"), got["5"])
	})
}

func TestTextAt(t *testing.T) {
	nodes := []wz.Node{wz.Leaf("a", "x"), wz.Container("b")}

	assert.Equal(t, "x", textAt(nodes, 0).OrElse("?"))
	assert.False(t, textAt(nodes, 1).IsSet(), "containers carry no text")
	assert.False(t, textAt(nodes, 2).IsSet())
	assert.False(t, textAt(nil, 0).IsSet())
}
