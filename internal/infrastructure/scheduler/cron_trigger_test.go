package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context, time.Time) error {
	j.runs.Add(1)
	return j.err
}

type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func (l *memLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func newTestTrigger(t *testing.T, job Job, clock *fakeClock, opts ...CronTriggerOption) *CronTrigger {
	t.Helper()
	cfg := DefaultCronTriggerConfig()
	cfg.Schedule = DailySchedule{Hour: 7, Minute: 0}
	opts = append(opts, WithClock(clock.Now))
	trigger, err := NewCronTrigger(cfg, job, zap.NewNop(), opts...)
	require.NoError(t, err)
	return trigger
}

func TestCronTrigger_RunsOncePerDay(t *testing.T) {
	job := &countingJob{}
	clock := &fakeClock{now: time.Date(2026, 3, 10, 6, 59, 0, 0, time.UTC)}
	trigger := newTestTrigger(t, job, clock)
	ctx := context.Background()

	assert.False(t, trigger.checkAndTrigger(ctx), "before schedule")

	clock.Set(time.Date(2026, 3, 10, 7, 0, 5, 0, time.UTC))
	assert.True(t, trigger.checkAndTrigger(ctx))

	clock.Set(time.Date(2026, 3, 10, 7, 0, 50, 0, time.UTC))
	assert.False(t, trigger.checkAndTrigger(ctx), "second tick in the same minute")

	clock.Set(time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC))
	assert.True(t, trigger.checkAndTrigger(ctx), "next day")

	assert.Equal(t, int32(2), job.runs.Load())
}

func TestCronTrigger_LockAcrossInstances(t *testing.T) {
	locker := &memLocker{}
	clock := &fakeClock{now: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	first, second := &countingJob{}, &countingJob{}
	a := newTestTrigger(t, first, clock, WithLocker(locker))
	b := newTestTrigger(t, second, clock, WithLocker(locker))

	assert.True(t, a.checkAndTrigger(ctx))
	assert.False(t, b.checkAndTrigger(ctx))
	assert.Equal(t, int32(1), first.runs.Load()+second.runs.Load())
}

func TestCronTrigger_LockErrorSkipsRun(t *testing.T) {
	job := &countingJob{}
	clock := &fakeClock{now: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)}
	trigger := newTestTrigger(t, job, clock, WithLocker(&memLocker{err: errors.New("redis down")}))

	assert.False(t, trigger.checkAndTrigger(context.Background()))
	assert.Zero(t, job.runs.Load())
}

func TestCronTrigger_LockErrorRetriesOnNextTick(t *testing.T) {
	job := &countingJob{}
	locker := &memLocker{err: errors.New("redis down")}
	clock := &fakeClock{now: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)}
	trigger := newTestTrigger(t, job, clock, WithLocker(locker))
	ctx := context.Background()

	assert.False(t, trigger.checkAndTrigger(ctx))

	locker.mu.Lock()
	locker.err = nil
	locker.mu.Unlock()

	// the schedule window has passed but the day is still pending
	clock.Set(time.Date(2026, 3, 10, 7, 1, 0, 0, time.UTC))
	assert.True(t, trigger.checkAndTrigger(ctx))
	assert.Equal(t, int32(1), job.runs.Load())

	clock.Set(time.Date(2026, 3, 10, 7, 2, 0, 0, time.UTC))
	assert.False(t, trigger.checkAndTrigger(ctx), "ran once for the day")

	t.Run("pending day does not carry over", func(t *testing.T) {
		locker.mu.Lock()
		locker.err = errors.New("redis down")
		locker.mu.Unlock()
		clock.Set(time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC))
		assert.False(t, trigger.checkAndTrigger(ctx))

		locker.mu.Lock()
		locker.err = nil
		locker.mu.Unlock()
		clock.Set(time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC))
		assert.False(t, trigger.checkAndTrigger(ctx), "outside the window of a new day")
		assert.Equal(t, int32(1), job.runs.Load())
	})
}

func TestCronTrigger_HeldLockSkipsTheDay(t *testing.T) {
	locker := &memLocker{}
	clock := &fakeClock{now: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)}
	ctx := context.Background()
	job := &countingJob{}

	_, err := locker.TryLock(ctx, DefaultCronTriggerConfig().LockKey+":counting:2026-03-10", time.Hour)
	require.NoError(t, err)
	trigger := newTestTrigger(t, job, clock, WithLocker(locker))

	assert.False(t, trigger.checkAndTrigger(ctx))
	clock.Set(time.Date(2026, 3, 10, 7, 0, 30, 0, time.UTC))
	assert.False(t, trigger.checkAndTrigger(ctx))
	assert.Zero(t, job.runs.Load())
}

func TestCronTrigger_RunNowReturnsJobError(t *testing.T) {
	boom := errors.New("smtp unavailable")
	job := &countingJob{err: boom}
	trigger := newTestTrigger(t, job, &fakeClock{now: time.Now()})

	assert.ErrorIs(t, trigger.RunNow(context.Background()), boom)
}

func TestNewCronTrigger_Validation(t *testing.T) {
	_, err := NewCronTrigger(DefaultCronTriggerConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultCronTriggerConfig()
	cfg.CheckInterval = 0
	_, err = NewCronTrigger(cfg, &countingJob{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCronTrigger_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := DefaultCronTriggerConfig()
	cfg.CheckInterval = 5 * time.Millisecond
	trigger, err := NewCronTrigger(cfg, &countingJob{}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, trigger.Start(ctx))
	require.NoError(t, trigger.Start(ctx), "second start is a no-op")

	time.Sleep(20 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(stopCtx))
	require.NoError(t, trigger.Stop(stopCtx), "second stop is a no-op")
}
