package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close() //nolint:errcheck

	// Non-level files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "w1-l1.yaml")
	if err := os.WriteFile(path, []byte("world: 1\nlevel: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("expected event for %s, got %s", path, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatcherReportsAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close() //nolint:errcheck

	path := filepath.Join(dir, "w1-l2.yaml")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	var lastWrite time.Time
	for _, part := range []string{"world: 1\n", "level: 2\n", "name: Crossfire\n"} {
		if _, err := f.WriteString(part); err != nil {
			t.Fatal(err)
		}
		lastWrite = time.Now()
		time.Sleep(debounce / 4)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("expected event for %s, got %s", path, got)
		}
		if waited := time.Since(lastWrite); waited < debounce/2 {
			t.Errorf("event %v after the last write, expected at least %v", waited, debounce/2)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	// The burst is reported once
	select {
	case got := <-w.Events:
		t.Errorf("unexpected second event for %s", got)
	case <-time.After(3 * debounce):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Events is closed once the watcher stops
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("expected Events to be closed")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Events to close")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
