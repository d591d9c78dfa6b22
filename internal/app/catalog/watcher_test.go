package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MasterToolDatabase.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"tools":[]}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := NewWatcher(zap.NewNop(), path).WithDebounce(50 * time.Millisecond).Watch(ctx)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"tools":[]}`), 0o644))
	}

	select {
	case change := <-changes:
		require.Equal(t, filepath.Clean(path), change.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case change := <-changes:
		t.Fatalf("unexpected second change: %+v", change)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-changes
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MasterToolDatabase.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := NewWatcher(nil, path).WithDebounce(20 * time.Millisecond).Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case change := <-changes:
		t.Fatalf("unexpected change: %+v", change)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	for range changes {
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "MasterToolDatabase.txt")
	_, err := NewWatcher(nil, path).Watch(context.Background())
	require.Error(t, err)

	_, err = NewWatcher(nil, "").Watch(context.Background())
	require.Error(t, err)
}

func TestShouldReload(t *testing.T) {
	w := NewWatcher(nil, "/data/MasterToolDatabase.txt")
	require.True(t, w.shouldReload(fsnotify.Event{Name: "/data/MasterToolDatabase.txt", Op: fsnotify.Write}))
	require.True(t, w.shouldReload(fsnotify.Event{Name: "/data/MasterToolDatabase.txt", Op: fsnotify.Create}))
	require.False(t, w.shouldReload(fsnotify.Event{Name: "/data/MasterToolDatabase.txt", Op: fsnotify.Chmod}))
	require.False(t, w.shouldReload(fsnotify.Event{Name: "/data/other.txt", Op: fsnotify.Write}))
	require.False(t, w.shouldReload(fsnotify.Event{}))
}

func TestTimerChan(t *testing.T) {
	require.Nil(t, timerChan(nil))
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	require.NotNil(t, timerChan(timer))
}
