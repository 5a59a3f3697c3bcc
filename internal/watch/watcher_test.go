package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWritesToTrackedFile(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "tracked.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("v1"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("v1"), 0o644))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.SetFile(tracked))
	require.NoError(t, w.Start())

	// A write to an unrelated file in the same directory is ignored.
	require.NoError(t, os.WriteFile(other, []byte("v2"), 0o644))
	// A write to the tracked file is delivered.
	require.NoError(t, os.WriteFile(tracked, []byte("v2"), 0o644))

	select {
	case mod := <-w.FileChannel():
		assert.Equal(t, tracked, mod.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for file modification event")
	}

	select {
	case mod := <-w.FileChannel():
		// Any queued event must still concern the tracked file.
		assert.Equal(t, tracked, mod.Path)
	case <-time.After(100 * time.Millisecond):
		// No event for the unrelated file: expected.
	}
}

func TestSetFileSwitchesTarget(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	a := filepath.Join(dirA, "a.txt")
	b := filepath.Join(dirB, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.SetFile(a))
	require.NoError(t, w.SetFile(b))
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(a, []byte("a2"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b2"), 0o644))

	select {
	case mod := <-w.FileChannel():
		assert.Equal(t, b, mod.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event on switched file")
	}
}

func TestStartTwiceFails(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
}

func TestSetFileEmptyStopsTracking(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.SetFile(f))
	require.NoError(t, w.SetFile(""))
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(f, []byte("y"), 0o644))
	select {
	case mod := <-w.FileChannel():
		t.Fatalf("unexpected event after tracking stopped: %v", mod)
	case <-time.After(200 * time.Millisecond):
	}
}
