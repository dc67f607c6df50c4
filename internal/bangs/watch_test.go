package bangs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcher_ReloadsOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bangs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"t":"g","u":"https://google.com/search?q={{{s}}}"}]`), 0o644))

	initial, err := Load(path)
	require.NoError(t, err)

	logger := testLogger(t)
	w := NewWatcher(path, initial, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte(`[{"t":"yt","u":"https://youtube.com/results?search_query={{{s}}}"}]`), 0o644))

	require.Eventually(t, func() bool {
		hit, err := w.Lookup([]Term{PossibleBang("yt"), Word("cats")})
		return err == nil && hit != nil
	}, 2*time.Second, 10*time.Millisecond, "watcher did not pick up the new bang table")
}

func TestWatcher_KeepsPreviousTableOnMalformedReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bangs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"t":"g","u":"https://google.com/search?q={{{s}}}"}]`), 0o644))

	initial, err := Load(path)
	require.NoError(t, err)

	w := NewWatcher(path, initial, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))
	time.Sleep(50 * time.Millisecond)

	hit, err := w.Lookup([]Term{PossibleBang("g"), Word("cats")})
	require.NoError(t, err)
	require.NotNil(t, hit, "previous table should still be active after a malformed reload")
}
