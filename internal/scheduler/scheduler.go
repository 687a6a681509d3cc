// Package scheduler runs the recurring briefing jobs on a cron timetable.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vocanews/vocanews/internal/config"
)

const jobTimeout = 10 * time.Minute

// Jobs are the workflows the scheduler triggers.
type Jobs interface {
	FetchNews(ctx context.Context) (int, error)
	SendNews(ctx context.Context) (int, error)
	SendVocabCards(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron *cron.Cron
	jobs Jobs
}

// New builds a scheduler with entries for the hourly news fetch, each
// configured send time and the vocabulary card interval, all evaluated in
// the configured timezone.
func New(jobs Jobs, schedule config.ScheduleConfig, location *time.Location) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(location))
	s := &Scheduler{cron: c, jobs: jobs}

	if _, err := c.AddFunc(fmt.Sprintf("0 */%d * * *", schedule.FetchIntervalHours), func() {
		s.run("fetch news", s.jobs.FetchNews)
	}); err != nil {
		return nil, fmt.Errorf("cron.AddFunc(fetch) > %w", err)
	}

	for _, sendTime := range schedule.SendTimes {
		spec, err := sendTimeSpec(sendTime)
		if err != nil {
			return nil, err
		}
		if _, err := c.AddFunc(spec, func() {
			s.run("send news", s.jobs.SendNews)
		}); err != nil {
			return nil, fmt.Errorf("cron.AddFunc(send %s) > %w", sendTime, err)
		}
	}

	if _, err := c.AddFunc(fmt.Sprintf("0 */%d * * *", schedule.VocabIntervalHours), func() {
		s.run("send vocab cards", s.jobs.SendVocabCards)
	}); err != nil {
		return nil, fmt.Errorf("cron.AddFunc(vocab) > %w", err)
	}

	return s, nil
}

// Run starts the timetable and blocks until the context is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Default().Info("scheduler started", "entries", len(s.cron.Entries()))
	s.cron.Start()
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	slog.Default().Info("scheduler stopped")
}

// EntryCount returns the number of registered cron entries.
func (s *Scheduler) EntryCount() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) run(name string, job func(ctx context.Context) (int, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := job(ctx)
	if err != nil {
		slog.Default().Error("scheduled job failed", "job", name, "error", err)
		return
	}
	slog.Default().Info("scheduled job finished", "job", name, "count", count)
}

// sendTimeSpec converts a HH:MM wall clock time into a daily cron spec.
func sendTimeSpec(sendTime string) (string, error) {
	parts := strings.SplitN(sendTime, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid send time %q", sendTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid send time hour %q > %w", sendTime, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid send time minute %q > %w", sendTime, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("send time %q out of range", sendTime)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
