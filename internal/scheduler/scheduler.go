package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Purger drops stale entries and reports how many it removed.
type Purger interface {
	Purge() int
}

// Scheduler periodically purges expired cache entries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cache     Purger
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cache Purger, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		cache:     cache,
		interval:  interval,
	}
}

// Start schedules the purge job and starts the underlying scheduler.
// A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: cache purge disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.runPurge)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runPurge() {
	if n := s.cache.Purge(); n > 0 {
		log.Printf("scheduler: purged %d stale cache entries", n)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
