package tasks

import "time"

// Task is an owned resource. UserID references exactly one user and is fixed
// at creation time from the authenticated identity; it is never settable from
// request input.
type Task struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"index" json:"user_id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the GORM table name.
func (Task) TableName() string {
	return "tasks"
}
