package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
)

// service is the service layer interface.
type service interface {
	SweepOldest(ctx context.Context, count int) ([]credential.Credential, error)
}

// Worker periodically deletes the oldest stored credentials so the token
// store does not grow without bound.
type Worker struct {
	service     service
	interval    time.Duration
	deleteCount int
	stopCh      chan struct{}
}

// NewWorker creates a new sweep worker.
func NewWorker(service service, interval time.Duration, deleteCount int) *Worker {
	if deleteCount <= 0 {
		deleteCount = 1
	}

	return &Worker{
		service:     service,
		interval:    interval,
		deleteCount: deleteCount,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Sweep worker started", "interval", w.interval, "delete_count", w.deleteCount)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Sweep worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Sweep worker stopped")

			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) sweep(ctx context.Context) {
	deleted, err := w.service.SweepOldest(ctx, w.deleteCount)
	if err != nil {
		slog.Error("Failed to sweep oldest credentials", "error", err)

		return
	}

	if len(deleted) == 0 {
		return
	}

	slog.Info("Swept oldest credentials", "count", len(deleted))
}
