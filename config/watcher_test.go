package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/plus3/backdrop/config"
)

func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "backdrop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particles:\n  count: 10\n"), 0o644))

	changes := make(chan config.File, 16)
	w, err := config.NewWatcher(path, func(f config.File) { changes <- f }, nil)
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()

	// Neighbouring files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	// A broken save keeps the previous configuration.
	require.NoError(t, os.WriteFile(path, []byte("particles: [\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("particles:\n  count: 25\n"), 0o644))

	timeout := time.After(2 * time.Second)
wait:
	for {
		select {
		case f := <-changes:
			// A reload may observe the truncated file before the final write.
			if f.Particles.Count != nil && *f.Particles.Count == 25 {
				break wait
			}
		case <-timeout:
			t.Fatal("no reload after the config file changed")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
