package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. A task starts pending and is moved along by the agent
// calling back through the tasks API.
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// Task is one dashboard task dispatched to the agent gateway. The queue has
// no delivery guarantee beyond the status column: dispatch is a single
// fire-and-forget HTTP call.
type Task struct {
	ID          string     `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Priority    string     `json:"priority" gorm:"size:16;default:'medium'"`
	Status      string     `json:"status" gorm:"size:16;not null;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BeforeCreate sets a UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
