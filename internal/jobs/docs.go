// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationExpiryJob - Runs every 60 seconds by default. Each tick times
// out confirmation pings whose deadline has passed, marks their parcels
// skipped and removes them from every route, re-planning those routes.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, jobs.ExpiryJobConfig{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// StopAll waits for a running tick before returning.
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The parser accepts an optional seconds field and descriptors such as
// "@every 60s". Ticks are wrapped in SkipIfStillRunning so a slow sweep
// delays the next one instead of overlapping it, and each tick runs under
// its own timeout.
//
// # Error Handling
//
// A failed scan is logged at error level. Entries that fail individually
// are rolled back, reported together at warn level, and retried on the
// next tick.
package jobs
