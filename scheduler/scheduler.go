// Package scheduler runs background housekeeping jobs using robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Purger drops processed results older than a ttl.
type Purger interface {
	PurgeExpired(ttl time.Duration) int
}

type Scheduler struct {
	cron     *cron.Cron
	purger   Purger
	ttl      time.Duration
	interval time.Duration
}

func NewScheduler(purger Purger, ttl, interval time.Duration) *Scheduler {
	c := cron.New(
		cron.WithLogger(cron.PrintfLogger(log.Default())),
		cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))),
	)

	return &Scheduler{
		cron:     c,
		purger:   purger,
		ttl:      ttl,
		interval: interval,
	}
}

// Start registers the purge job and starts the cron runner.
func (s *Scheduler) Start() error {
	schedule := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(schedule, s.RunNow); err != nil {
		return fmt.Errorf("failed to schedule result purge: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started: purging results older than %s every %s", s.ttl, s.interval)
	return nil
}

// Stop stops the runner. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	log.Println("Scheduler stopping")
	return s.cron.Stop()
}

// RunNow purges expired results synchronously.
func (s *Scheduler) RunNow() {
	s.purger.PurgeExpired(s.ttl)
}
