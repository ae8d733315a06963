package service

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs. Jobs are chained with
// SkipIfStillRunning so a slow tick is skipped rather than overlapped.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	logger := cron.PrintfLogger(log.Default())
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
	}
}

// ScheduleInterval registers a periodic job every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, job)
}

// Remove unregisters a job; combined with ScheduleInterval it lets the
// caller change an interval without restarting the scheduler.
func (s *SchedulerService) Remove(id cron.EntryID) {
	s.cron.Remove(id)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish. No ticks
// fire after Stop returns.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
