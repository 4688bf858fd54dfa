package ioutils

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetDir(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "dist/old/stale.json", []byte("{}"), 0o644))
	require.NoError(t, util.WriteFile(fs, "dist/bgm.json", []byte("[]"), 0o644))

	require.NoError(t, ResetDir(fs, "dist"))

	entries, err := fs.ReadDir("dist")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResetDir_Missing(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, ResetDir(fs, "dist"))

	info, err := fs.Stat("dist")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteJSON(t *testing.T) {
	fs := memfs.New()
	v := []map[string]any{{"filename": "A", "maps": []string{}, "downloadable": true}}

	require.NoError(t, WriteJSON(fs, "dist/bgm.json", v))

	data, err := util.ReadFile(fs, "dist/bgm.json")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"downloadable\": true,\n    \"filename\": \"A\",\n    \"maps\": []\n  }\n]", string(data))
}

func TestWriteJSON_KeepsHTMLCharacters(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, WriteJSON(fs, "bgm.json", map[string]string{"description": "Rock & Roll <live>"}))

	data, err := util.ReadFile(fs, "bgm.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"description\": \"Rock & Roll <live>\"\n}", string(data))
}

func TestWriteFile_Truncates(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, WriteFile(fs, "out.txt", []byte("a much longer first version")))
	require.NoError(t, WriteFile(fs, "out.txt", []byte("short")))

	data, err := util.ReadFile(fs, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestWriteJSON_Unencodable(t *testing.T) {
	fs := memfs.New()
	err := WriteJSON(fs, "x.json", map[string]any{"ch": make(chan int)})
	assert.Error(t, err)

	_, statErr := fs.Stat("x.json")
	assert.Error(t, statErr)
}
