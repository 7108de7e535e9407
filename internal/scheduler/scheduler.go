// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenSweeper clears password reset tokens that expired before now.
type TokenSweeper interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// Locker grants a short exclusive lease so that only one instance runs a
// job per tick. *cache.Redis satisfies it.
type Locker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	sweepLockKey = "scheduler:lock:reset_tokens"
	sweepLockTTL = time.Minute
)

type Scheduler struct {
	cron    *cron.Cron
	sweeper TokenSweeper
	locker  Locker
	spec    string
	logger  *zap.Logger
	now     func() time.Time
}

func New(sweeper TokenSweeper, spec string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger}))),
		sweeper: sweeper,
		spec:    spec,
		logger:  logger,
		now:     time.Now,
	}
}

// WithLocker makes the sweep run on one instance at a time.
func (s *Scheduler) WithLocker(l Locker) *Scheduler {
	s.locker = l
	return s
}

// Start registers the sweep job and starts the cron loop. Jobs stop when ctx
// is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.SweepResetTokens(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("reset_token_sweep", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) SweepResetTokens(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !s.acquire(ctx, sweepLockKey, sweepLockTTL) {
		s.logger.Debug("reset token sweep skipped, lease held elsewhere")
		return
	}
	n, err := s.sweeper.ClearExpiredResetTokens(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error("reset token sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("reset tokens expired", zap.Int64("cleared", n))
	}
}

// acquire fails open: a lock backend error must not stop maintenance.
func (s *Scheduler) acquire(ctx context.Context, key string, ttl time.Duration) bool {
	if s.locker == nil {
		return true
	}
	ok, err := s.locker.SetIfNotExists(ctx, key, "1", ttl)
	if err != nil {
		s.logger.Warn("scheduler lock unavailable", zap.String("key", key), zap.Error(err))
		return true
	}
	return ok
}

// cronLogger adapts zap to cron's logger interface.
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
