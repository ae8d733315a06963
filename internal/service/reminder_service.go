package service

import (
	"context"
	"log"
	"sync"
	"time"

	"taskman/internal/model"
	"taskman/internal/notify"
	"taskman/internal/repository"
)

// DefaultUpcomingThreshold is how far ahead of a deadline a task counts as
// "due soon" unless configured otherwise.
const DefaultUpcomingThreshold = 30 * time.Minute

// ReminderService classifies tasks into overdue and upcoming on every tick
// and notifies each task at most once per classification, until a mutation
// invalidates its bookkeeping. The overdue and upcoming windows are
// disjoint (due < now versus due >= now), so a task is never in both
// batches of the same tick.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	notifier notify.Notifier

	mu                sync.Mutex
	notifiedOverdue   map[uint]struct{}
	notifiedUpcoming  map[uint]struct{}
	upcomingThreshold time.Duration
}

func NewReminderService(taskRepo *repository.TaskRepository, notifier notify.Notifier) *ReminderService {
	return &ReminderService{
		taskRepo:          taskRepo,
		notifier:          notifier,
		notifiedOverdue:   make(map[uint]struct{}),
		notifiedUpcoming:  make(map[uint]struct{}),
		upcomingThreshold: DefaultUpcomingThreshold,
	}
}

// SetUpcomingThreshold changes the due-soon window. Non-positive values
// are ignored. Takes effect on the next tick; tasks already notified under
// a wider window stay notified.
func (s *ReminderService) SetUpcomingThreshold(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.upcomingThreshold = d
	s.mu.Unlock()
}

// Invalidate forgets that a task was notified, in both classifications.
// Edit, completion, deletion, archival, and restore all route through here
// so the task can be renotified under its new data.
func (s *ReminderService) Invalidate(taskID uint) {
	s.mu.Lock()
	delete(s.notifiedOverdue, taskID)
	delete(s.notifiedUpcoming, taskID)
	s.mu.Unlock()
}

// Reset clears all notified bookkeeping. Called when the scheduler stops
// so a restart begins fresh instead of suppressing everything seen before.
func (s *ReminderService) Reset() {
	s.mu.Lock()
	s.notifiedOverdue = make(map[uint]struct{})
	s.notifiedUpcoming = make(map[uint]struct{})
	s.mu.Unlock()
}

// CheckTasks is one scheduler tick: fetch, classify, notify the new
// arrivals in each class. Archived tasks never reach either batch because
// both store queries are active-scoped.
func (s *ReminderService) CheckTasks(ctx context.Context, now time.Time) error {
	overdue, err := s.taskRepo.ListOverdueIncomplete(ctx, now)
	if err != nil {
		return err
	}
	newOverdue := s.claim(overdue, classOverdue)
	if len(newOverdue) > 0 {
		if err := s.notifier.NotifyOverdue(ctx, newOverdue); err != nil {
			log.Printf("reminder: overdue notify: %v", err)
		}
	}

	active, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	threshold := s.upcomingThreshold
	s.mu.Unlock()

	limit := now.Add(threshold)
	upcoming := make([]model.Task, 0, len(active))
	for _, task := range active {
		if task.Status != model.StatusIncomplete {
			continue
		}
		if task.DueTime.Before(now) || task.DueTime.After(limit) {
			continue
		}
		upcoming = append(upcoming, task)
	}
	newUpcoming := s.claim(upcoming, classUpcoming)
	if len(newUpcoming) > 0 {
		if err := s.notifier.NotifyUpcoming(ctx, newUpcoming); err != nil {
			log.Printf("reminder: upcoming notify: %v", err)
		}
	}

	return nil
}

type reminderClass int

const (
	classOverdue reminderClass = iota
	classUpcoming
)

// claim filters tasks down to the ones not yet notified in the given class
// and marks them notified.
func (s *ReminderService) claim(tasks []model.Task, class reminderClass) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.notifiedOverdue
	if class == classUpcoming {
		set = s.notifiedUpcoming
	}

	fresh := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if _, seen := set[task.ID]; seen {
			continue
		}
		set[task.ID] = struct{}{}
		fresh = append(fresh, task)
	}
	return fresh
}
