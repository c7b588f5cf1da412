package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c, ok := <-w.Changes():
		require.True(t, ok, "watcher closed early")
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return Change{}
	}
}

func TestWatcherReportsCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, func(name string) bool { return strings.HasPrefix(name, "skip") })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip-me"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), nil, 0644))

	c := nextChange(t, w)
	assert.Equal(t, "new.txt", c.Name)
	assert.Equal(t, "created", c.Op)
	assert.Equal(t, "created new.txt", c.String())
}

func TestWatcherClose(t *testing.T) {
	w, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "closing twice is harmless")

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel not closed")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}
