package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskman/internal/model"
	"taskman/internal/repository"
)

// Validation errors, returned before any store call.
var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidPriority = errors.New("unknown priority")
	ErrZeroDue         = errors.New("due time is required")
	ErrRemindAfterDue  = errors.New("remind time must not be after due time")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrNotArchived     = errors.New("task is not archived")
)

// TaskInput carries the caller-editable fields of a task.
type TaskInput struct {
	Title       string
	Category    model.Category
	Priority    model.Priority
	DueTime     time.Time
	RemindTime  *time.Time
	Description string
	Progress    int
	Tags        []string
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if !in.Priority.Valid() {
		return ErrInvalidPriority
	}
	if in.DueTime.IsZero() {
		return ErrZeroDue
	}
	if in.RemindTime != nil && in.RemindTime.After(in.DueTime) {
		return ErrRemindAfterDue
	}
	if in.Progress < 0 || in.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}

// Invalidator drops any reminder bookkeeping held for a task so it can be
// renotified under new data. The reminder service implements it.
type Invalidator interface {
	Invalidate(taskID uint)
}

// noopInvalidator stands in when no reminder service is wired.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(uint) {}

// TaskService wraps task-related business logic: validation, tag updates,
// the archival lifecycle, and reminder-state invalidation on mutation.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	tagRepo     *repository.TagRepository
	invalidator Invalidator
}

func NewTaskService(taskRepo *repository.TaskRepository, tagRepo *repository.TagRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, tagRepo: tagRepo, invalidator: noopInvalidator{}}
}

// SetInvalidator wires the reminder service in after construction; the two
// services reference each other, so one side has to connect late.
func (s *TaskService) SetInvalidator(inv Invalidator) {
	if inv != nil {
		s.invalidator = inv
	}
}

// Create validates and inserts a new task. New tasks start incomplete and
// active regardless of input.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task := model.Task{
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		Priority:    input.Priority,
		DueTime:     input.DueTime,
		RemindTime:  input.RemindTime,
		Status:      model.StatusIncomplete,
		Description: input.Description,
		Progress:    input.Progress,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	if len(input.Tags) > 0 {
		if err := s.tagRepo.ReplaceTags(ctx, task.ID, input.Tags); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

// Update rewrites every editable field of an existing task and resets its
// reminder state.
func (s *TaskService) Update(ctx context.Context, taskID uint, input TaskInput) (*model.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Category = input.Category
	task.Priority = input.Priority
	task.DueTime = input.DueTime
	task.RemindTime = input.RemindTime
	task.Description = input.Description
	task.Progress = input.Progress

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(task.ID)
	return task, nil
}

// SetStatus flips completion. Completing a task sets progress to 100.
func (s *TaskService) SetStatus(ctx context.Context, taskID uint, completed bool) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if completed {
		task.Status = model.StatusCompleted
		task.Progress = 100
	} else {
		task.Status = model.StatusIncomplete
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return err
	}
	s.invalidator.Invalidate(taskID)
	return nil
}

// SetProgress updates the completion percentage of a task.
func (s *TaskService) SetProgress(ctx context.Context, taskID uint, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	task.Progress = progress
	return s.taskRepo.Update(ctx, task)
}

// SetTags replaces the task's tag set.
func (s *TaskService) SetTags(ctx context.Context, taskID uint, names []string) error {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return err
	}
	return s.tagRepo.ReplaceTags(ctx, taskID, names)
}

// Delete removes a task, its tags, and any pending reminder state.
func (s *TaskService) Delete(ctx context.Context, taskID uint) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidator.Invalidate(taskID)
	return nil
}

// ArchiveCompleted moves all completed active tasks into the archive.
// Incomplete tasks are never eligible.
func (s *TaskService) ArchiveCompleted(ctx context.Context) (int64, error) {
	tasks, err := s.taskRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	count, err := s.taskRepo.ArchiveCompleted(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range tasks {
		if t.Status == model.StatusCompleted {
			s.invalidator.Invalidate(t.ID)
		}
	}
	return count, nil
}

// Restore moves an archived task back to the active set. Reminder
// eligibility is recomputed from scratch on the next tick.
func (s *TaskService) Restore(ctx context.Context, taskID uint) error {
	if err := s.taskRepo.Restore(ctx, taskID); err != nil {
		return err
	}
	s.invalidator.Invalidate(taskID)
	return nil
}

// DeletePermanently hard-deletes a task. Only archived tasks may be
// removed this way, so an in-flight task cannot be lost by accident.
func (s *TaskService) DeletePermanently(ctx context.Context, taskID uint) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.Archived {
		return ErrNotArchived
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidator.Invalidate(taskID)
	return nil
}

// Stats is a snapshot of the active-task statistics.
type Stats struct {
	Total          int64
	Completed      int64
	Overdue        int64
	CompletionRate float64
}

// Statistics gathers the active-scoped counters in one call.
func (s *TaskService) Statistics(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats
	var err error
	if st.Total, err = s.taskRepo.TotalCount(ctx); err != nil {
		return st, err
	}
	if st.Completed, err = s.taskRepo.CompletedCount(ctx); err != nil {
		return st, err
	}
	if st.Overdue, err = s.taskRepo.OverdueCount(ctx, now); err != nil {
		return st, err
	}
	if st.CompletionRate, err = s.taskRepo.CompletionRate(ctx); err != nil {
		return st, err
	}
	return st, nil
}
