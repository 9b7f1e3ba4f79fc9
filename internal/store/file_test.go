package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.Load("example.com.")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "zones"))

	content := "$ORIGIN example.com.\n$TTL 3600\n@ IN SOA ns1.example.com. root.example.com. 7 3600 600 86400 1800\n"

	require.NoError(t, s.Save("example.com.", 7, content))

	got, err := s.Load("example.com.")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// The trailing dot is dropped from the filename.
	_, err = os.Stat(filepath.Join(dir, "zones", "example.com.zone"))
	assert.NoError(t, err)
}

func TestFileStore_Overwrite(t *testing.T) {
	s := NewFileStore(t.TempDir())

	require.NoError(t, s.Save("example.com.", 1, "first\n"))
	require.NoError(t, s.Save("example.com.", 2, "second\n"))

	got, err := s.Load("example.com.")
	require.NoError(t, err)
	assert.Equal(t, "second\n", got)
}
