package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpiryHandler struct {
	mu      sync.Mutex
	calls   atomic.Int32
	batches []int
	report  commands.ExpiryReport
	err     error
	block   chan struct{}
}

func (f *fakeExpiryHandler) Handle(ctx context.Context, cmd commands.ExpireNotificationsCommand) (commands.ExpiryReport, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.batches = append(f.batches, cmd.BatchSize())
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return commands.ExpiryReport{}, ctx.Err()
		}
	}
	return f.report, f.err
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRunOnce_PassesBatchSizeAndLogsReport(t *testing.T) {
	var buf bytes.Buffer
	handler := &fakeExpiryHandler{report: commands.ExpiryReport{Expired: 2, Raced: 1}}
	job := NewNotificationExpiryJob(handler, ExpiryJobConfig{BatchSize: 25}, testLogger(&buf))

	report, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Expired)
	assert.Equal(t, []int{25}, handler.batches)
	assert.Contains(t, buf.String(), "Notification expiry sweep finished")
}

func TestRunOnce_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	handler := &fakeExpiryHandler{report: commands.ExpiryReport{
		Failed:   1,
		Failures: []error{errors.New("route optimization failed")},
	}}
	job := NewNotificationExpiryJob(handler, ExpiryJobConfig{}, testLogger(&buf))

	_, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "route optimization failed")
	assert.Equal(t, []int{DefaultExpiryBatchSize}, handler.batches)
}

func TestRunOnce_ScanError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("db down")
	job := NewNotificationExpiryJob(&fakeExpiryHandler{err: boom}, ExpiryJobConfig{}, testLogger(&buf))

	_, err := job.RunOnce(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "db down")
}

func TestStart_InvalidSchedule(t *testing.T) {
	var buf bytes.Buffer
	job := NewNotificationExpiryJob(&fakeExpiryHandler{}, ExpiryJobConfig{Schedule: "not a schedule"}, testLogger(&buf))

	assert.Error(t, job.Start())
}

func TestJobManager_TicksUntilStopped(t *testing.T) {
	var buf bytes.Buffer
	handler := &fakeExpiryHandler{}
	manager := NewJobManager(handler, ExpiryJobConfig{Schedule: "* * * * * *"}, testLogger(&buf))

	require.NoError(t, manager.StartAll())
	assert.Eventually(t, func() bool { return handler.calls.Load() > 0 }, 3*time.Second, 20*time.Millisecond)

	manager.StopAll()
	stopped := handler.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, stopped, handler.calls.Load())
}

func TestTicks_DoNotOverlap(t *testing.T) {
	var buf bytes.Buffer
	handler := &fakeExpiryHandler{block: make(chan struct{})}
	job := NewNotificationExpiryJob(handler, ExpiryJobConfig{Schedule: "* * * * * *", TickTimeout: time.Minute}, testLogger(&buf))

	require.NoError(t, job.Start())
	assert.Eventually(t, func() bool { return handler.calls.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	time.Sleep(2200 * time.Millisecond)
	assert.Equal(t, int32(1), handler.calls.Load(), "a running tick makes later ticks skip")

	close(handler.block)
	job.Stop()
}
