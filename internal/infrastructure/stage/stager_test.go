package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndFinalize(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	stager, err := New(Config{Root: root})
	require.NoError(t, err)

	f, err := stager.Open(7, "mods/cool mod.zip")
	require.NoError(t, err)

	n, err := f.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = f.Write([]byte("world"))
	require.NoError(t, err)

	staged, err := f.Finalize()
	require.NoError(t, err)

	assert.Equal(t, "7/mods/cool mod.zip", staged.Key)
	assert.Equal(t, int64(11), staged.Size)
	assert.Equal(t, filepath.Join(root, "7", "mods", "cool mod.zip"), staged.Path)

	content, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	assert.Equal(t, staged.Path, stager.Path(staged.Key))
}

func TestOpenRejectsUnsafeFilenames(t *testing.T) {
	t.Parallel()

	stager, err := New(Config{Root: t.TempDir()})
	require.NoError(t, err)

	tests := []struct {
		name     string
		filename string
	}{
		{"empty", ""},
		{"absolute", "/etc/passwd"},
		{"parent escape", "../outside.zip"},
		{"nested parent escape", "mods/../../outside.zip"},
		{"bare parent", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := stager.Open(1, tt.filename)
			require.Error(t, err)
			assert.True(t, ErrUnsafePath.Has(err), "expected unsafe path error, got %v", err)
		})
	}
}

func TestOpenAllowsInternalDotSegments(t *testing.T) {
	t.Parallel()

	stager, err := New(Config{Root: t.TempDir()})
	require.NoError(t, err)

	f, err := stager.Open(1, "mods/./a/../b.zip")
	require.NoError(t, err)

	staged, err := f.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "1/mods/b.zip", staged.Key)
}

func TestDiscardLeavesPartialFileClosed(t *testing.T) {
	t.Parallel()

	stager, err := New(Config{Root: t.TempDir()})
	require.NoError(t, err)

	f, err := stager.Open(2, "partial.bin")
	require.NoError(t, err)
	_, err = f.Write([]byte("abc"))
	require.NoError(t, err)

	require.NoError(t, f.Discard())

	_, err = f.Write([]byte("more"))
	assert.Error(t, err, "writes after discard must fail")
}
