package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskman/internal/model"
)

// TaskRepository handles CRUD, archival, and statistics for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	if task.ID == 0 {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", task.ID).
		Select("title", "category", "priority", "due_time", "remind_time",
			"status", "description", "progress", "archived").
		Updates(task)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	if taskID == 0 {
		return nil, ErrNotFound
	}
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// ListActive returns non-archived tasks, newest first.
func (r *TaskRepository) ListActive(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("archived = ?", false).
		Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list active tasks: %w", err)
	}
	return tasks, nil
}

// ListArchived returns archived tasks, newest first.
func (r *TaskRepository) ListArchived(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("archived = ?", true).
		Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list archived tasks: %w", err)
	}
	return tasks, nil
}

// ListOverdueIncomplete returns active tasks whose deadline has passed and
// which are not completed, newest first.
func (r *TaskRepository) ListOverdueIncomplete(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_time < ? AND archived = ?", model.StatusIncomplete, now, false).
		Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task and its tags in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	if taskID == 0 {
		return ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Tag{}).Error; err != nil {
			return fmt.Errorf("delete task tags: %w", err)
		}
		res := tx.Delete(&model.Task{}, taskID)
		if res.Error != nil {
			return fmt.Errorf("delete task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ArchiveCompleted moves every completed, non-archived task into the
// archive and returns how many rows changed.
func (r *TaskRepository) ArchiveCompleted(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ? AND archived = ?", model.StatusCompleted, false).
		Update("archived", true)
	if res.Error != nil {
		return 0, fmt.Errorf("archive completed tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Restore moves an archived task back to the active set. Restoring an
// already-active task is a no-op, not an error.
func (r *TaskRepository) Restore(ctx context.Context, taskID uint) error {
	if taskID == 0 {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Update("archived", false)
	if res.Error != nil {
		return fmt.Errorf("restore task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalCount counts non-archived tasks.
func (r *TaskRepository) TotalCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("archived = ?", false).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// CompletedCount counts completed non-archived tasks.
func (r *TaskRepository) CompletedCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ? AND archived = ?", model.StatusCompleted, false).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return n, nil
}

// OverdueCount counts incomplete non-archived tasks past their deadline.
func (r *TaskRepository) OverdueCount(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ? AND due_time < ? AND archived = ?", model.StatusIncomplete, now, false).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return n, nil
}

// CompletionRate returns completed/total among non-archived tasks as a
// percentage. An empty active set yields 0.
func (r *TaskRepository) CompletionRate(ctx context.Context) (float64, error) {
	total, err := r.TotalCount(ctx)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	completed, err := r.CompletedCount(ctx)
	if err != nil {
		return 0, err
	}
	return float64(completed) / float64(total) * 100, nil
}
