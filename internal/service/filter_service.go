package service

import (
	"strings"
	"time"

	"taskman/internal/model"
)

// Wildcard matches any value in a filter criterion.
const Wildcard = "all"

// Status filter modes. Overdue is a view-level refinement of incomplete,
// not a stored state.
const (
	StatusFilterIncomplete = "incomplete"
	StatusFilterCompleted  = "completed"
	StatusFilterOverdue    = "overdue"
)

// Criteria selects the visible subset of the active task list. Empty
// fields and "all" are wildcards.
type Criteria struct {
	Category string
	Priority string
	Status   string
	Tag      string
	Search   string
}

func isWildcard(v string) bool {
	return v == "" || strings.EqualFold(v, Wildcard)
}

// FilterService computes the displayed subset of a task collection. It
// holds no state; each call is a full recompute over the input slice.
type FilterService struct{}

func NewFilterService() *FilterService {
	return &FilterService{}
}

// Apply returns the tasks matching every non-wildcard criterion, in the
// order they were given. tagsByTask supplies each task's tag names; tasks
// absent from the map simply have no tags.
func (s *FilterService) Apply(tasks []model.Task, tagsByTask map[uint][]string, c Criteria, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if s.matches(task, tagsByTask[task.ID], c, now) {
			out = append(out, task)
		}
	}
	return out
}

func (s *FilterService) matches(task model.Task, tags []string, c Criteria, now time.Time) bool {
	if !isWildcard(c.Category) && string(task.Category) != c.Category {
		return false
	}
	if !isWildcard(c.Priority) && string(task.Priority) != c.Priority {
		return false
	}
	if !isWildcard(c.Status) && !matchStatus(task, c.Status, now) {
		return false
	}
	if !isWildcard(c.Tag) && !containsFold(tags, c.Tag) {
		return false
	}
	if c.Search != "" && !matchSearch(task, tags, c.Search) {
		return false
	}
	return true
}

func matchStatus(task model.Task, mode string, now time.Time) bool {
	switch strings.ToLower(mode) {
	case StatusFilterIncomplete:
		return task.Status == model.StatusIncomplete
	case StatusFilterCompleted:
		return task.Status == model.StatusCompleted
	case StatusFilterOverdue:
		return task.Overdue(now)
	}
	return false
}

func containsFold(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func matchSearch(task model.Task, tags []string, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(task.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), q) {
		return true
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
