package fileingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFfoo\r\n  bar  \n\nit\u2019s\n"), 0o600))

	lines, err := ReadLines(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar", "", "it's"}, lines)
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing.txt"))

	assert.Error(t, err)
}

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteLines(path, nil, []string{"a,b", "c,d"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\nc,d\n", string(data))

	var stdout bytes.Buffer
	require.NoError(t, WriteLines(StdStream, &stdout, []string{"x"}))
	assert.Equal(t, "x\n", stdout.String())
}

func TestExtractFileMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte("<a>"), 0o600))

	meta, err := ExtractFileMeta(path)

	require.NoError(t, err)
	assert.Equal(t, "bookmarks.html", meta.Name)
	assert.Equal(t, int64(3), meta.Size)
}

func TestReadText_Stdin(t *testing.T) {
	orig := stdin
	defer func() { stdin = orig }()
	stdin = strings.NewReader("\xEF\xBB\xBFdrawing\nbookmarks\n")

	lines, err := ReadLines(StdStream)

	require.NoError(t, err)
	assert.Equal(t, []string{"drawing", "bookmarks"}, lines)
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	path := filepath.Join(t.TempDir(), "repos.txt")
	require.NoError(t, os.WriteFile(path, []byte("short\n"+long+"\n"), 0o600))

	lines, err := ReadLines(path)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, long, lines[1])
}
