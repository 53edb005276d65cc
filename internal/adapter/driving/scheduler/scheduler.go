package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/robfig/cron/v3"
)

// Runner executes one audit.
type Runner interface {
	RunAudit(ctx context.Context) (entity.AuditRun, entity.AuditReport, error)
}

// Scheduler dispara uma auditoria a cada tick do cron. Falhas são registradas
// em log e o agendamento continua.
type Scheduler struct {
	runner   Runner
	schedule string
	log      *logger.Logger

	runningMutex sync.Mutex
	cron         *cron.Cron
	isRunning    bool
}

// New validates schedule (six fields, seconds first) and creates a Scheduler.
func New(runner Runner, schedule string, log *logger.Logger) (*Scheduler, error) {
	if _, err := parser().Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		log:      log.With("schedule", schedule),
	}, nil
}

func parser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Start starts the scheduler. Ticks that fire while a run is still in progress
// are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	s.cron = cron.New(
		cron.WithParser(parser()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule audit: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	s.log.Info("audit scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running audit to finish.
func (s *Scheduler) Stop() {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.log.Info("audit scheduler stopped")
}

// IsRunning returns whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()
	return s.isRunning
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// RunOnce executes a single tick and reports whether the audit succeeded.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	run, report, err := s.runner.RunAudit(ctx)
	if err != nil {
		s.log.WithFields(map[string]interface{}{
			"run_id": run.RunID,
		}).ErrorWithErr(err, "scheduled audit failed")
		return false
	}

	s.log.WithFields(map[string]interface{}{
		"run_id":   run.RunID,
		"findings": report.Total(),
	}).Info("scheduled audit finished")
	return true
}
