package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is work the trigger runs once per day
type Job interface {
	Name() string
	Run(ctx context.Context, now time.Time) error
}

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	Schedule DailySchedule

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration

	// LockKey prefixes the per-day lock key; LockTTL bounds how long it is held
	LockKey string
	LockTTL time.Duration

	// JobTimeout bounds a single run
	JobTimeout time.Duration
}

// DefaultCronTriggerConfig returns a 07:00 daily trigger checked every minute
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		Schedule:      DailySchedule{Hour: 7, Minute: 0},
		CheckInterval: time.Minute,
		LockKey:       "erp:cron",
		LockTTL:       time.Hour,
		JobTimeout:    10 * time.Minute,
	}
}

// CronTriggerOption configures a CronTrigger
type CronTriggerOption func(*CronTrigger)

// WithLocker makes the trigger take a distributed lock before each run
func WithLocker(locker Locker) CronTriggerOption {
	return func(c *CronTrigger) {
		c.locker = locker
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) CronTriggerOption {
	return func(c *CronTrigger) {
		c.now = now
	}
}

// CronTrigger runs a job at a fixed time each day
type CronTrigger struct {
	config CronTriggerConfig
	job    Job
	locker Locker
	now    func() time.Time
	logger *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Track which date we last ran for
	retryDate   string // date whose lock attempt failed and is retried on later ticks
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, job Job, logger *zap.Logger, opts ...CronTriggerOption) (*CronTrigger, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: job is required", ErrInvalidConfig)
	}
	if config.CheckInterval <= 0 {
		return nil, fmt.Errorf("%w: check interval must be positive", ErrInvalidConfig)
	}
	if config.LockKey == "" {
		config.LockKey = "erp:cron"
	}
	if config.LockTTL <= 0 {
		config.LockTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &CronTrigger{
		config: config,
		job:    job,
		now:    time.Now,
		logger: logger.With(zap.String("job", job.Name())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.String("schedule", c.config.Schedule.String()),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the job when the schedule is due and it has not run today.
// A failed lock attempt keeps the day pending so later ticks of the same day
// retry it. It reports whether the job ran.
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	currentDate := now.Format("2006-01-02")

	c.mu.Lock()
	due := c.retryDate == currentDate || c.config.Schedule.Due(now, c.config.CheckInterval)
	if c.lastRunDate == currentDate || !due {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	if c.locker != nil {
		key := c.config.LockKey + ":" + c.job.Name() + ":" + currentDate
		ok, err := c.locker.TryLock(ctx, key, c.config.LockTTL)
		if err != nil {
			c.mu.Lock()
			c.retryDate = currentDate
			c.mu.Unlock()
			c.logger.Error("Failed to take cron lock, retrying on next tick", zap.String("date", currentDate), zap.Error(err))
			return false
		}
		if !ok {
			c.markRan(currentDate)
			c.logger.Info("Another instance holds the cron lock, skipping", zap.String("date", currentDate))
			return false
		}
	}

	c.markRan(currentDate)
	c.logger.Info("Triggering scheduled job", zap.String("date", currentDate))
	if err := c.RunNow(ctx); err != nil {
		c.logger.Error("Scheduled job failed", zap.Error(err))
	}
	return true
}

func (c *CronTrigger) markRan(date string) {
	c.mu.Lock()
	c.lastRunDate = date
	c.retryDate = ""
	c.mu.Unlock()
}

// RunNow runs the job immediately, bounded by the job timeout
func (c *CronTrigger) RunNow(ctx context.Context) error {
	if c.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.job.Run(ctx, c.now())
	c.logger.Info("Scheduled job finished",
		zap.Duration("duration", time.Since(start)),
		zap.Bool("success", err == nil),
	)
	return err
}
