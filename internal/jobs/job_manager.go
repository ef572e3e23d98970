package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationExpiryJob *NotificationExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(expiryHandler ExpiryHandler, expiryCfg ExpiryJobConfig, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationExpiryJob: NewNotificationExpiryJob(expiryHandler, expiryCfg, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	jm.notificationExpiryJob.Stop()
}
