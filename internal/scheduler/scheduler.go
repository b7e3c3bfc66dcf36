// Package scheduler runs periodic background jobs such as feed publishing.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/unchartedsh/site/internal/logfields"
)

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
}

func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, ctx: context.Background()}, nil
}

// Start begins running jobs. ctx is handed to every job run.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting scheduler")
	s.ctx = ctx
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// Every schedules task to run each interval under name. A run still in
// progress when the next one is due causes that run to be skipped.
func (s *Scheduler) Every(name string, interval time.Duration, task func(context.Context) error) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("invalid interval %s for job %s", interval, name)
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic job %s: %w", name, err)
	}
	return job.ID().String(), nil
}

// Jobs returns the names of scheduled jobs.
func (s *Scheduler) Jobs() []string {
	jobs := s.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) run(name string, task func(context.Context) error) {
	start := time.Now()
	slog.Info("Executing scheduled job", logfields.Key(name))

	if err := task(s.ctx); err != nil {
		slog.Error("Scheduled job failed", logfields.Key(name), logfields.Error(err))
		return
	}
	slog.Info("Scheduled job finished", logfields.Key(name), logfields.DurationMS(time.Since(start).Milliseconds()))
}
