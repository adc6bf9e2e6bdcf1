package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "123456 - 2024-01-02 03-04-05.txt")

	var sink Sink = &FileWriter{Path: path}
	require.NoError(t, sink.WriteDocument([]byte("first")))
	require.NoError(t, sink.WriteDocument([]byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileWriterMissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "out.txt")}
	assert.Error(t, w.WriteDocument([]byte("x")))
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	src := []byte("abc")
	require.NoError(t, w.WriteDocument(src))
	src[0] = 'z'
	assert.Equal(t, "abc", string(w.Buf))
}
