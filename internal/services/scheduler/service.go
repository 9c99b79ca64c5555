package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fleetgo/maintenance/domain"
	"github.com/fleetgo/maintenance/pkg/clock"
	"github.com/fleetgo/maintenance/repository"
	"github.com/fleetgo/maintenance/usecase/scheduling"
)

// Config controls the periodic scheduling trigger.
type Config struct {
	Interval   time.Duration
	RunLockTTL time.Duration
	Periodic   bool
}

// Service drives the scheduling batch: generate due tasks, then
// auto-assign them. A manual HTTP trigger and the periodic cron trigger
// both funnel through RunOnce, which takes the redis run lock so two
// invokers cannot interleave a batch.
type Service struct {
	generator *scheduling.Generator
	assigner  *scheduling.Assigner
	runs      repository.RunStateRepository
	clock     clock.Clock
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       Config
}

func New(
	generator *scheduling.Generator,
	assigner *scheduling.Assigner,
	runs repository.RunStateRepository,
	clk clock.Clock,
	logger *zap.Logger,
	cfg Config,
) (*Service, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Periodic && cfg.Interval < time.Second {
		return nil, domain.NewError(domain.ErrCodeInvalid, "periodic interval must be at least one second")
	}
	if cfg.RunLockTTL <= 0 {
		cfg.RunLockTTL = 5 * time.Minute
	}
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		generator: generator,
		assigner:  assigner,
		runs:      runs,
		clock:     clk,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(),
	}

	if cfg.Periodic {
		schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
		if _, err := s.cron.AddFunc(schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
			defer cancel()
			if _, err := s.RunOnce(ctx, domain.TriggerPeriodic); err != nil {
				if domain.IsDomainError(err, domain.ErrCodeConflict) {
					s.logger.Info("periodic run skipped, another run in progress")
					return
				}
				s.logger.Error("periodic scheduling run failed", zap.Error(err))
			}
		}); err != nil {
			return nil, fmt.Errorf("register periodic trigger: %w", err)
		}
	}

	return s, nil
}

// Start launches the cron trigger when periodic runs are enabled.
func (s *Service) Start() {
	if s == nil || s.cron == nil || !s.cfg.Periodic {
		return
	}
	s.cron.Start()
	s.logger.Info("periodic scheduler started", zap.Duration("interval", s.cfg.Interval))
}

// Stop gracefully stops the cron trigger.
func (s *Service) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("periodic scheduler stopped")
}

// RunOnce executes one full batch (generation then assignment) under the
// run lock and stores the run report. It returns ErrRunInProgress when
// the lock is held elsewhere.
func (s *Service) RunOnce(ctx context.Context, trigger string) (domain.RunReport, error) {
	report, err := s.withLock(ctx, trigger, func(report *domain.RunReport) error {
		generated, err := s.generator.Run(ctx, s.clock.Today())
		if err != nil {
			return err
		}
		report.Generated = len(generated.Created)

		assigned, err := s.assigner.Run(ctx)
		if err != nil {
			return err
		}
		report.Assigned = len(assigned.Assigned)
		report.Unassigned = assigned.Skipped
		return nil
	})
	if err != nil {
		return report, err
	}

	if err := s.runs.SaveReport(ctx, report); err != nil {
		s.logger.Warn("failed to store run report", zap.Error(err))
	}

	s.logger.Info("scheduling run finished",
		zap.String("trigger", trigger),
		zap.Int("generated", report.Generated),
		zap.Int("assigned", report.Assigned),
		zap.Int("unassigned", report.Unassigned),
	)
	return report, nil
}

// Generate runs only the task generator under the run lock.
func (s *Service) Generate(ctx context.Context) (domain.RunReport, error) {
	return s.withLock(ctx, domain.TriggerManual, func(report *domain.RunReport) error {
		result, err := s.generator.Run(ctx, s.clock.Today())
		if err != nil {
			return err
		}
		report.Generated = len(result.Created)
		return nil
	})
}

// Assign runs only the assignment engine under the run lock.
func (s *Service) Assign(ctx context.Context) (domain.RunReport, error) {
	return s.withLock(ctx, domain.TriggerManual, func(report *domain.RunReport) error {
		result, err := s.assigner.Run(ctx)
		if err != nil {
			return err
		}
		report.Assigned = len(result.Assigned)
		report.Unassigned = result.Skipped
		return nil
	})
}

func (s *Service) withLock(ctx context.Context, trigger string, fn func(report *domain.RunReport) error) (domain.RunReport, error) {
	acquired, err := s.runs.AcquireRunLock(ctx, s.cfg.RunLockTTL)
	if err != nil {
		return domain.RunReport{}, err
	}
	if !acquired {
		return domain.RunReport{}, domain.ErrRunInProgress
	}
	defer func() {
		if err := s.runs.ReleaseRunLock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release run lock", zap.Error(err))
		}
	}()

	report := domain.RunReport{
		StartedAt:   s.clock.Now(),
		Trigger:     trigger,
		HorizonDays: s.generator.HorizonDays(),
	}
	if err := fn(&report); err != nil {
		return report, err
	}
	report.FinishedAt = s.clock.Now()
	return report, nil
}
