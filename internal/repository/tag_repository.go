package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskman/internal/model"
)

// TagRepository manages the labels attached to tasks.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// ReplaceTags swaps the whole tag set of a task: delete everything, insert
// the new names. Blank names and duplicates (case preserved, first
// occurrence wins) are dropped. Runs in one transaction so a failed insert
// cannot leave the task stripped of its old tags.
func (r *TagRepository) ReplaceTags(ctx context.Context, taskID uint, names []string) error {
	if taskID == 0 {
		return ErrNotFound
	}

	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Tag{}).Error; err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		for _, name := range cleaned {
			tag := model.Tag{TaskID: taskID, Name: name}
			if err := tx.Omit("Task").Create(&tag).Error; err != nil {
				return fmt.Errorf("insert tag %q: %w", name, err)
			}
		}
		return nil
	})
}

// ListTags returns the tag names of a task. A deleted or unknown task has
// an empty tag set.
func (r *TagRepository) ListTags(ctx context.Context, taskID uint) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("task_id = ?", taskID).Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return names, nil
}

// DistinctTags returns all tag names in use, sorted lexicographically.
func (r *TagRepository) DistinctTags(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Distinct("name").Order("name ASC").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list distinct tags: %w", err)
	}
	return names, nil
}

// ListByTag returns the active tasks carrying the given tag, newest first.
func (r *TagRepository) ListByTag(ctx context.Context, name string) ([]model.Task, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}
	var tasks []model.Task
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Joins("JOIN tags ON tags.task_id = tasks.id").
		Where("tags.name = ? AND tasks.archived = ?", trimmed, false).
		Order("tasks.id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks by tag: %w", err)
	}
	return tasks, nil
}
