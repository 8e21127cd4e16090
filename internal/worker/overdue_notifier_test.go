package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/worker"
)

type fakeSource struct {
	mtx     sync.Mutex
	overdue []models.Task
	calls   int
	changes chan struct{}
}

func newFakeSource(overdue []models.Task) *fakeSource {
	return &fakeSource{
		overdue: overdue,
		changes: make(chan struct{}, 1),
	}
}

func (f *fakeSource) Overdue(now time.Time) []models.Task {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.calls++
	return f.overdue
}

func (f *fakeSource) Changes() <-chan struct{} {
	return f.changes
}

func (f *fakeSource) scanCount() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.calls
}

type capturedNotification struct {
	count int
	tasks []models.Task
}

func TestScan_NotifiesOnOverdueTasks(t *testing.T) {
	overdue := []models.Task{
		{ID: "t1", Status: models.StatusPending, DueDate: models.NewDate(2020, time.January, 1)},
		{ID: "t2", Status: models.StatusPending, DueDate: models.NewDate(2020, time.January, 2)},
	}
	source := newFakeSource(overdue)

	var notifications []capturedNotification
	notifier := worker.NewOverdueNotifier(source, time.Minute, time.Millisecond, func(count int, tasks []models.Task) {
		notifications = append(notifications, capturedNotification{count: count, tasks: tasks})
	})

	notifier.Scan()

	require.Len(t, notifications, 1)
	assert.Equal(t, 2, notifications[0].count)
	assert.Len(t, notifications[0].tasks, 2)
}

func TestScan_SilentWhenNothingOverdue(t *testing.T) {
	source := newFakeSource([]models.Task{})

	notified := false
	notifier := worker.NewOverdueNotifier(source, time.Minute, time.Millisecond, func(count int, tasks []models.Task) {
		notified = true
	})

	notifier.Scan()
	assert.False(t, notified)
}

// Start scans once immediately and stops cleanly on cancellation.
func TestStart_ImmediateScanAndTeardown(t *testing.T) {
	source := newFakeSource([]models.Task{})
	notifier := worker.NewOverdueNotifier(source, time.Hour, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- notifier.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return source.scanCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier did not stop after cancellation")
	}
}

// A burst of change signals settles into a single rescan.
func TestStart_RescansAfterChangesSettle(t *testing.T) {
	source := newFakeSource([]models.Task{})
	notifier := worker.NewOverdueNotifier(source, time.Hour, 50*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- notifier.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return source.scanCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	for i := 0; i < 3; i++ {
		source.changes <- struct{}{}
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return source.scanCount() == 2
	}, 2*time.Second, 10*time.Millisecond)

	// The burst settles into one rescan, not one per signal.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 2, source.scanCount())

	cancel()
	<-done
}
