package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldRefreshDebounce(t *testing.T) {
	w := New(nil)
	base := time.Now()

	assert.True(t, w.ShouldRefresh(base, 600*time.Millisecond), "first event always refreshes")
	assert.False(t, w.ShouldRefresh(base.Add(100*time.Millisecond), 600*time.Millisecond))
	assert.False(t, w.ShouldRefresh(base.Add(599*time.Millisecond), 600*time.Millisecond))
	assert.True(t, w.ShouldRefresh(base.Add(600*time.Millisecond), 600*time.Millisecond))
}

func TestShouldRefreshZeroDebounce(t *testing.T) {
	w := New(nil)
	now := time.Now()
	assert.True(t, w.ShouldRefresh(now, 0))
	assert.True(t, w.ShouldRefresh(now, 0))
}

func TestStartStop(t *testing.T) {
	repo := t.TempDir()
	common := filepath.Join(repo, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(common, "refs", "heads"), 0o755))

	w := New(t.Logf)
	require.NoError(t, w.Start(repo, common))
	defer w.Stop()

	assert.True(t, w.started)
	require.NoError(t, w.Start(repo, common), "second start is a no-op")

	w.Stop()
	assert.False(t, w.started)
	w.Stop() // idempotent
}

func TestEmitsOnRefChange(t *testing.T) {
	repo := t.TempDir()
	common := filepath.Join(repo, ".git")
	heads := filepath.Join(common, "refs", "heads")
	require.NoError(t, os.MkdirAll(heads, 0o755))

	w := New(t.Logf)
	require.NoError(t, w.Start(repo, common))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(heads, "main"), []byte("abc123\n"), 0o600))

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("expected an event after a ref write")
	}
}

func TestEventsAreCoalesced(t *testing.T) {
	repo := t.TempDir()
	common := filepath.Join(repo, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(common, "refs"), 0o755))

	w := New(nil)
	require.NoError(t, w.Start(repo, common))
	defer w.Stop()

	for range 5 {
		w.signal()
	}
	select {
	case <-w.Events():
	case <-time.After(time.Second):
		t.Fatal("expected a coalesced event")
	}
	select {
	case <-w.Events():
		t.Fatal("bursts should coalesce into a single pending event")
	default:
	}
}

func TestIsUnderRoot(t *testing.T) {
	w := &Watcher{roots: []string{filepath.Join("repo", ".git", "refs")}}

	assert.True(t, w.isUnderRoot(filepath.Join("repo", ".git", "refs")))
	assert.True(t, w.isUnderRoot(filepath.Join("repo", ".git", "refs", "heads")))
	assert.False(t, w.isUnderRoot(filepath.Join("repo", ".git", "refsandmore")))
	assert.False(t, w.isUnderRoot(filepath.Join("repo", ".git")))
	assert.False(t, w.isUnderRoot(""))
}
