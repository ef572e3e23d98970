package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultExpirySchedule  = "@every 60s"
	DefaultExpiryBatchSize = 100
	DefaultTickTimeout     = 50 * time.Second
)

type ExpiryHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireNotificationsCommand) (commands.ExpiryReport, error)
}

type ExpiryJobConfig struct {
	// Schedule is a cron spec with an optional seconds field, or a
	// descriptor such as "@every 60s".
	Schedule    string
	BatchSize   int
	TickTimeout time.Duration
}

// NotificationExpiryJob sweeps unanswered pings on a schedule. Ticks never
// overlap: a tick that is still running when the next one is due makes the
// scheduler skip it.
type NotificationExpiryJob struct {
	handler ExpiryHandler
	cfg     ExpiryJobConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewNotificationExpiryJob(handler ExpiryHandler, cfg ExpiryJobConfig, logger *slog.Logger) *NotificationExpiryJob {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultExpirySchedule
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultExpiryBatchSize
	}
	if cfg.TickTimeout <= 0 {
		cfg.TickTimeout = DefaultTickTimeout
	}

	logger = logger.With("component", "notification_expiry_job")
	cronLogger := slogCronLogger{logger: logger}

	return &NotificationExpiryJob{
		handler: handler,
		cfg:     cfg,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

func (j *NotificationExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Notification expiry job started", "schedule", j.cfg.Schedule, "batch_size", j.cfg.BatchSize)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *NotificationExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Notification expiry job stopped")
}

func (j *NotificationExpiryJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.TickTimeout)
	defer cancel()

	_, _ = j.RunOnce(ctx)
}

// RunOnce performs a single sweep and logs its outcome.
func (j *NotificationExpiryJob) RunOnce(ctx context.Context) (commands.ExpiryReport, error) {
	start := time.Now()
	defer func() {
		metrics.ExpiryTickDuration.Observe(time.Since(start).Seconds())
	}()

	cmd, err := commands.NewExpireNotificationsCommand(j.cfg.BatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification expiry job misconfigured", "error", err)
		return commands.ExpiryReport{}, err
	}

	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification expiry sweep failed", "error", err)
		return report, err
	}

	if report.Failed > 0 {
		j.logger.WarnContext(ctx, "Notification expiry sweep finished with failures",
			"expired", report.Expired,
			"raced", report.Raced,
			"failed", report.Failed,
			"error", errors.Join(report.Failures...),
		)
	} else if report.Expired > 0 || report.Raced > 0 {
		j.logger.InfoContext(ctx, "Notification expiry sweep finished",
			"expired", report.Expired,
			"raced", report.Raced,
		)
	}

	return report, nil
}

// slogCronLogger adapts slog to cron.Logger.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
