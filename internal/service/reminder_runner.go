package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultCheckInterval bounds reminder latency when nothing is configured.
const DefaultCheckInterval = 10 * time.Second

// ReminderRunner owns the periodic execution of reminder checks: it ties
// the reminder service to the cron scheduler and carries the
// enable/disable lifecycle. Stopping clears the notified bookkeeping so a
// restart begins fresh.
type ReminderRunner struct {
	scheduler *SchedulerService
	reminders *ReminderService

	mu       sync.Mutex
	interval time.Duration
	entry    cron.EntryID
	running  bool
}

func NewReminderRunner(scheduler *SchedulerService, reminders *ReminderService, interval time.Duration) *ReminderRunner {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &ReminderRunner{
		scheduler: scheduler,
		reminders: reminders,
		interval:  interval,
	}
}

func (r *ReminderRunner) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.reminders.CheckTasks(ctx, time.Now()); err != nil {
		log.Printf("reminder check: %v", err)
	}
}

// Start runs an immediate check and then schedules recurring ones.
func (r *ReminderRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}
	entry, err := r.scheduler.ScheduleInterval(r.interval, r.tick)
	if err != nil {
		return err
	}
	r.entry = entry
	r.running = true
	go r.tick()
	return nil
}

// Stop unschedules the check and resets notified state, so re-enabling
// renotifies rather than silently suppressing everything already seen.
func (r *ReminderRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.scheduler.Remove(r.entry)
	r.running = false
	r.reminders.Reset()
}

// SetInterval reschedules the recurring check at a new cadence. Elapsed
// notified state is untouched. Non-positive intervals are ignored.
func (r *ReminderRunner) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = interval
	if !r.running {
		return nil
	}
	r.scheduler.Remove(r.entry)
	entry, err := r.scheduler.ScheduleInterval(interval, r.tick)
	if err != nil {
		r.running = false
		return err
	}
	r.entry = entry
	return nil
}
