package model

import "time"

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork  Category = "work"
	CategoryStudy Category = "study"
	CategoryLife  Category = "life"
	CategoryOther Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryStudy, CategoryLife, CategoryOther:
		return true
	}
	return false
}

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the completion state of a task.
type Status int

const (
	StatusIncomplete Status = 0
	StatusCompleted  Status = 1
)

// Label returns the display label for a status.
func (s Status) Label() string {
	if s == StatusCompleted {
		return "completed"
	}
	return "incomplete"
}

// Task represents a single item in the planner. ID 0 means not persisted.
type Task struct {
	ID          uint     `gorm:"primaryKey"`
	Title       string   `gorm:"not null"`
	Category    Category `gorm:"not null"`
	Priority    Priority `gorm:"not null"`
	DueTime     time.Time
	RemindTime  *time.Time
	Status      Status `gorm:"default:0"`
	Description string
	Progress    int  `gorm:"default:0"`
	Archived    bool `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overdue reports whether the task is incomplete past its deadline.
func (t Task) Overdue(now time.Time) bool {
	return t.Status == StatusIncomplete && t.DueTime.Before(now)
}
