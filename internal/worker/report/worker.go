package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// service is the service layer interface.
type service interface {
	TargetDate(target string) string
	SendDailyReport(ctx context.Context, date string) error
}

// Worker sends the staff report once per day at a configured local time.
type Worker struct {
	service  service
	sendAt   string // "HH:MM" in the property timezone
	target   string // "today" or "tomorrow"
	location *time.Location
	now      func() time.Time
	stopCh   chan struct{}
}

// NewWorker creates a new report worker.
func NewWorker(service service, sendAt, target string, location *time.Location) *Worker {
	return &Worker{
		service:  service,
		sendAt:   sendAt,
		target:   target,
		location: location,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start waits for the next scheduled send time, fires the report, and
// repeats. Each day's report runs at most once.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Report worker started", "send_at", w.sendAt, "target", w.target)

	for {
		next, err := w.nextRun()
		if err != nil {
			slog.Error("Invalid report schedule, worker exiting", "send_at", w.sendAt, "error", err)

			return
		}

		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Report worker shutting down")

			return
		case <-w.stopCh:
			timer.Stop()
			slog.Info("Report worker stopped")

			return
		case <-timer.C:
			date := w.service.TargetDate(w.target)
			if err := w.service.SendDailyReport(ctx, date); err != nil {
				slog.Error("Failed to send daily report", "date", date, "error", err)
			}
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// nextRun computes the next occurrence of sendAt in the property timezone.
func (w *Worker) nextRun() (time.Time, error) {
	at, err := time.Parse("15:04", w.sendAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse send time %q: %w", w.sendAt, err)
	}

	now := w.now().In(w.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, w.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next, nil
}
