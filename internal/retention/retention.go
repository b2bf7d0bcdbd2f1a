// Package retention prunes old analysis sessions on a schedule.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const jobName = "prune-sessions"

// Pruner deletes sessions created before a cutoff.
type Pruner interface {
	PruneBefore(ctx context.Context, t time.Time) (int, error)
}

// Job removes sessions older than Days.
type Job struct {
	pruner Pruner
	days   int
	now    func() time.Time
}

func NewJob(p Pruner, days int) *Job {
	return &Job{pruner: p, days: days, now: time.Now}
}

// Cutoff is the creation time before which sessions are pruned.
func (j *Job) Cutoff() time.Time {
	return j.now().AddDate(0, 0, -j.days)
}

// Run prunes once and reports how many sessions were removed.
func (j *Job) Run(ctx context.Context) (int, error) {
	cutoff := j.Cutoff()
	n, err := j.pruner.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	log.Info().Int("pruned", n).Time("cutoff", cutoff).Msg("retention run")
	return n, nil
}

// Scheduler runs a Job on a cron schedule until stopped.
type Scheduler struct {
	s gocron.Scheduler
}

// Start schedules job with a five-field cron expression. Runs never overlap;
// a run that is still going when the next is due pushes that one back.
func Start(job *Job, cronExpr string) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(gocronLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			if _, err := job.Run(context.Background()); err != nil {
				log.Error().Err(err).Msg("retention run failed")
			}
		}),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule %q: %w", cronExpr, err)
	}

	s.Start()
	log.Info().Str("cron", cronExpr).Int("days", job.days).Msg("retention scheduled")
	return &Scheduler{s: s}, nil
}

// NextRun reports when the prune job fires next.
func (s *Scheduler) NextRun() (time.Time, error) {
	jobs := s.s.Jobs()
	if len(jobs) == 0 {
		return time.Time{}, gocron.ErrJobNotFound
	}
	return jobs[0].NextRun()
}

func (s *Scheduler) Stop() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
