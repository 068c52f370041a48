package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/watcher"
)

// startWatcher creates a ledger file in a temp dir and a watcher over it
// with a short debounce, returning the notification channel.
func startWatcher(t *testing.T) (string, <-chan struct{}) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("seed"), 0644))

	w, err := watcher.New(watcher.Config{
		DBPath:      dbPath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err)
	return dbPath, onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dbPath, onChange := startWatcher(t)

	// A burst of commits should coalesce into one notification.
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte(fmt.Sprintf("commit%d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("burst of writes produced a second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dbPath, onChange := startWatcher(t)

	// Pre-create the unrelated file so touching it later is a plain write.
	otherPath := filepath.Join(filepath.Dir(dbPath), "debug.log")
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0644))
	require.NoError(t, os.WriteFile(otherPath, []byte("log line"), 0644))

	select {
	case <-onChange:
		t.Fatal("should not notify for files other than the ledger")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WatchesWALSidecar(t *testing.T) {
	dbPath, onChange := startWatcher(t)

	// WAL-mode commits often only touch the sidecar, never the main file.
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal frames"), 0644))

	select {
	case <-onChange:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification for WAL sidecar write")
	}
}

func TestWatcher_StopDoesNotDeadlock(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("seed"), 0644))

	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/srv/arcadia/ledger.db")

	assert.Equal(t, "/srv/arcadia/ledger.db", cfg.DBPath)
	assert.Equal(t, 1*time.Second, cfg.DebounceDur)
}
