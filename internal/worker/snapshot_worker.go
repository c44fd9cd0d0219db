package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"megraja/internal/amqp"
	"megraja/internal/core"
	"megraja/internal/export"
)

// TransactionLoader reads the current ledger from persistence.
type TransactionLoader interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
}

// SnapshotWorker keeps a CSV snapshot of the ledger on disk, refreshed
// whenever a ledger event arrives. Writes within the debounce window
// are coalesced into one.
type SnapshotWorker struct {
	storage  TransactionLoader
	path     string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewSnapshotWorker(storage TransactionLoader, path string, debounce time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		storage:  storage,
		path:     path,
		debounce: debounce,
	}
}

// HandleLedgerEvent processes a single ledger event message from AMQP.
// The snapshot refresh is scheduled rather than written inline, so a
// burst of mutations produces one write.
func (w *SnapshotWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"entity", msg.Entity,
		"action", msg.Action,
		"id", msg.ID)

	if w.debounce <= 0 {
		return w.WriteSnapshot(ctx)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.WriteSnapshot(context.Background()); err != nil {
			slog.Error("Failed to write snapshot", "path", w.path, "error", err)
		}
	})
	return nil
}

// WriteSnapshot reloads the ledger and replaces the snapshot file. The
// write goes through a temp file and a rename, so readers never see a
// partial snapshot.
func (w *SnapshotWorker) WriteSnapshot(ctx context.Context) error {
	transactions, err := w.storage.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	body := export.EncodeCSV(core.SortedByDateDescending(transactions))

	dir := filepath.Dir(w.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body+"\n"), 0644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written",
		"path", w.path,
		"transactions", len(transactions))
	return nil
}

// Close cancels any pending refresh and writes a final snapshot.
func (w *SnapshotWorker) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.WriteSnapshot(ctx)
}
