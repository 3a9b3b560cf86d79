package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a maintenance task run on a cron schedule beside the trading loop.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Housekeeping manages the maintenance cron tasks.
type Housekeeping struct {
	Cron   *cron.Cron
	Ctx    context.Context
	logger *zap.Logger
}

// NewHousekeeping creates a scheduler whose specs carry a seconds field and
// fire in loc.
func NewHousekeeping(ctx context.Context, loc *time.Location, logger *zap.Logger) *Housekeeping {
	if loc == nil {
		loc = time.Local
	}
	return &Housekeeping{
		Cron:   cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Ctx:    ctx,
		logger: logger,
	}
}

// RegisterAll registers every job. Jobs with an empty spec are skipped.
func (h *Housekeeping) RegisterAll(jobs ...Job) error {
	for _, job := range jobs {
		if job.Spec == "" {
			continue
		}
		if _, err := h.Cron.AddFunc(job.Spec, h.wrap(job)); err != nil {
			return fmt.Errorf("register %s task: %w", job.Name, err)
		}
		h.logger.Debug("housekeeping task registered", zap.String("task", job.Name), zap.String("spec", job.Spec))
	}
	return nil
}

// Start starts the cron scheduler.
func (h *Housekeeping) Start() {
	h.Cron.Start()
	h.logger.Info("housekeeping started", zap.Int("tasks", len(h.Cron.Entries())))
}

// Stop stops the scheduler and waits for running tasks.
func (h *Housekeeping) Stop() {
	<-h.Cron.Stop().Done()
	h.logger.Info("housekeeping stopped")
}

func (h *Housekeeping) wrap(job Job) func() {
	return func() {
		start := time.Now()
		if err := job.Run(h.Ctx); err != nil {
			h.logger.Error("housekeeping task failed", zap.String("task", job.Name), zap.Error(err))
			return
		}
		h.logger.Info("housekeeping task done", zap.String("task", job.Name), zap.Duration("took", time.Since(start)))
	}
}
