package model

// Tag is a label attached to a task. The foreign key cascades on task
// deletion; the repository also deletes tags explicitly so the cascade does
// not depend on the engine honoring foreign keys.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	TaskID uint   `gorm:"index;not null"`
	Name   string `gorm:"not null"`
	Task   Task   `gorm:"constraint:OnDelete:CASCADE"`
}
