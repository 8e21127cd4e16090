package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"taskboard/internal/debounce"
	"taskboard/internal/logger"
	"taskboard/internal/models"
)

// TaskSource is what the notifier needs from the task service: the
// current overdue set and a change signal.
type TaskSource interface {
	Overdue(now time.Time) []models.Task
	Changes() <-chan struct{}
}

// NotifyFunc receives the overdue count and tasks whenever a scan finds
// any. Fire-and-forget: a missed or duplicated emission has no effect
// on task data.
type NotifyFunc func(count int, tasks []models.Task)

// OverdueNotifier periodically scans for pending tasks past their due
// date. It scans once immediately at start, then on a fixed schedule,
// and additionally after mutation bursts settle (debounced change
// signal).
type OverdueNotifier struct {
	source   TaskSource
	interval time.Duration
	debounce time.Duration
	notify   NotifyFunc
}

func NewOverdueNotifier(source TaskSource, interval, debounceDelay time.Duration, notify NotifyFunc) *OverdueNotifier {
	if interval <= 0 {
		interval = 20 * time.Minute
	}
	if debounceDelay <= 0 {
		debounceDelay = 300 * time.Millisecond
	}
	return &OverdueNotifier{
		source:   source,
		interval: interval,
		debounce: debounceDelay,
		notify:   notify,
	}
}

// Start blocks until ctx is cancelled. The cron schedule and the
// debouncer are released on every exit path.
func (w *OverdueNotifier) Start(ctx context.Context) error {
	w.Scan()

	scheduler := cron.New()
	schedule := fmt.Sprintf("@every %s", w.interval)
	if _, err := scheduler.AddFunc(schedule, w.Scan); err != nil {
		return fmt.Errorf("scheduling overdue scan: %w", err)
	}
	scheduler.Start()

	settled := debounce.New[struct{}](w.debounce)
	defer func() {
		<-scheduler.Stop().Done()
		settled.Stop()
		logger.Info("Worker: overdue notifier stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.source.Changes():
			settled.Set(struct{}{})
		case <-settled.C():
			w.Scan()
		}
	}
}

// Scan counts overdue tasks and emits a notification when any exist.
func (w *OverdueNotifier) Scan() {
	start := time.Now()

	overdue := w.source.Overdue(start)
	if len(overdue) > 0 {
		logger.Info("Worker: mock email sent",
			zap.Int("overdue", len(overdue)))
		if w.notify != nil {
			w.notify(len(overdue), overdue)
		}
	}

	logger.Info("Worker: overdue scan finished",
		zap.Duration("ms", time.Since(start)),
		zap.Int("overdue", len(overdue)))
}
