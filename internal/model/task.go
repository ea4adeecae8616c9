package model

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task is a unit of work assigned to an employee
type Task struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255)"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	DueDate     string         `json:"due_date" gorm:"type:varchar(32)"`
	Priority    string         `json:"priority" gorm:"type:varchar(20)"`
	Status      string         `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	AssigneeID  *uint          `json:"assignee_id" gorm:"index"`
	CreatedBy   *uint          `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (t *Task) RecordID() uint      { return t.ID }
func (t *Task) SetRecordID(id uint) { t.ID = id }

// IsActive reports whether the task still counts as open work
func (t *Task) IsActive() bool {
	return t.Status != TaskStatusCompleted
}

func (t *Task) CopyRefs() {
	t.AssigneeID = copyID(t.AssigneeID)
	t.CreatedBy = copyID(t.CreatedBy)
}
