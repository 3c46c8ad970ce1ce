package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers background jobs on cron expressions. It is wired up
// explicitly at startup so jobs stay directly invokable in tests and via
// the ops endpoints.
type Scheduler struct {
	cron *cron.Cron
}

// New constructs an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Add registers a job under the given cron spec, e.g. "0 0 * * *" for
// daily at midnight. Triggers that fire while the previous invocation is
// still running are skipped.
func (s *Scheduler) Add(spec, name string, job func(context.Context) error) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(func() {
		if err := job(context.Background()); err != nil {
			log.Printf("[Scheduler] job %s failed: %v", name, err)
		}
	}))

	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return err
	}

	log.Printf("[Scheduler] registered job %s (%s)", name, spec)
	return nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
