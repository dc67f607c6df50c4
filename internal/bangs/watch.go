package bangs

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/Aman-CERP/rankcore/internal/config"
)

// Watcher holds a Table that is rebuilt and atomically swapped in whenever
// the backing file changes, so concurrent Lookup calls never observe a
// partially-written table.
type Watcher struct {
	table  atomic.Pointer[Table]
	path   string
	logger *slog.Logger
}

// NewWatcher returns a Watcher serving initial until the first successful
// reload replaces it.
func NewWatcher(path string, initial *Table, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{path: path, logger: logger}
	w.table.Store(initial)
	return w
}

// Table returns the currently active table.
func (w *Watcher) Table() *Table {
	return w.table.Load()
}

// Lookup delegates to the currently active table.
func (w *Watcher) Lookup(terms []Term) (*Hit, error) {
	return w.table.Load().Lookup(terms)
}

// Run blocks, reloading the table from disk on every write to the watched
// path until ctx is cancelled. A reload that fails to parse is logged and
// the previously active table is kept in place.
func (w *Watcher) Run(ctx context.Context) error {
	return config.WatchReload(ctx, w.path, func() {
		table, err := Load(w.path)
		if err != nil {
			w.logger.Warn("bang table reload failed, keeping previous table",
				slog.String("path", w.path),
				slog.String("error", err.Error()),
			)
			return
		}
		w.table.Store(table)
	})
}
