package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sortmarks/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	cfg := config.SplitConfig{
		Dictionary: writeFile(t, dir, "dictionary.txt", "Draw\ning\ndrawing\n\nbook\nmarks\n"),
		Input:      writeFile(t, dir, "repos.txt", "DrawIng\n\nbookmarks\nxyz\n"),
		Separator:  "_",
	}

	res, err := Split(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"draw", "ing", "drawing", "book", "marks"}, res.Dictionary)
	assert.Equal(t, []string{"DrawIng,draw_ing", "bookmarks,book_marks"}, res.Lines())
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "xyz", res.Failures[0].Remainder)
}

func TestSplit_ArgsAndLongestFirst(t *testing.T) {
	dir := t.TempDir()
	cfg := config.SplitConfig{
		Dictionary:   writeFile(t, dir, "dictionary.txt", "draw\ning\ndrawing\n"),
		Input:        filepath.Join(dir, "unused.txt"),
		Separator:    "-",
		LongestFirst: true,
	}

	res, err := Split(cfg, []string{"drawing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"drawing,drawing"}, res.Lines())
}

func TestSplit_MissingDictionary(t *testing.T) {
	_, err := Split(config.SplitConfig{Dictionary: filepath.Join(t.TempDir(), "none.txt")}, []string{"a"})
	assert.Error(t, err)
}

func TestSplit_ByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	cfg := config.SplitConfig{
		Dictionary: writeFile(t, dir, "dictionary.txt", "\ufeffdraw\ning\n"),
		Input:      writeFile(t, dir, "repos.txt", "\ufeffdrawing\n"),
		Separator:  "_",
	}

	res, err := Split(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"draw", "ing"}, res.Dictionary)
	assert.Equal(t, []string{"drawing,draw_ing"}, res.Lines())
	assert.Empty(t, res.Failures)
}
