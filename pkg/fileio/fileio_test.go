package fileio

import (
	"io/fs"
	"strings"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte{0, 1, 0xff}, 0o644))

	data, err := ReadBinary(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1, 0xff}, data)
}

func TestReadBinaryMissing(t *testing.T) {
	_, err := ReadBinary(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadTextLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	// "café" in ISO-8859-1
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9}, 0o644))

	text, err := ReadText(path)
	require.NoError(t, err)
	require.Equal(t, "café", text)
}

func TestWriteTextLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, WriteText(path, "café"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{'c', 'a', 'f', 0xe9}, data)

	text, err := ReadText(path)
	require.NoError(t, err)
	require.Equal(t, "café", text)
}

func TestWriteTextUnrepresentable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	err := WriteText(path, "日本")
	require.ErrorContains(t, err, "latin-1")
	require.False(t, IsFile(path))
}

func TestReadAll(t *testing.T) {
	data, err := ReadAll(strings.NewReader("from stdin"))
	require.NoError(t, err)
	require.Equal(t, "from stdin", string(data))

	text, err := Latin1([]byte{0xfc})
	require.NoError(t, err)
	require.Equal(t, "ü", text)
}

func TestReadSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enc")
	require.NoError(t, os.WriteFile(path, []byte("❌✔"), 0o644))

	s, err := ReadSymbols(path)
	require.NoError(t, err)
	require.Equal(t, "❌✔", s)
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteFile(path, []byte("first, longer")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out"), []byte("x"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.True(t, IsFile(path))
	require.False(t, IsFile(dir))
	require.False(t, IsFile(filepath.Join(dir, "hello world")))
}

func TestOutputNames(t *testing.T) {
	require.Equal(t, "encoded-msg.txt", EncodedName("msg.txt"))
	require.Equal(t, filepath.Join("data", "decoded-msg.txt"), DecodedName(filepath.Join("data", "msg.txt")))
}
