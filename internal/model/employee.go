package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Employee statuses used by the dashboard
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on-leave"
	EmployeeStatusTerminated = "terminated"
)

// Employee represents an employee record
type Employee struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	Name         string         `json:"name" gorm:"type:varchar(255)"`
	FirstName    string         `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName     string         `json:"last_name" gorm:"type:varchar(100);not null"`
	Email        string         `json:"email" gorm:"type:varchar(255);index"`
	Phone        string         `json:"phone" gorm:"type:varchar(50)"`
	Role         string         `json:"role" gorm:"type:varchar(100);index"`
	StartDate    string         `json:"start_date" gorm:"type:varchar(32)"`
	Status       string         `json:"status" gorm:"type:varchar(50);index"`
	PhotoURL     string         `json:"photo_url" gorm:"type:text"`
	DepartmentID uint           `json:"department_id" gorm:"index"`
	CustomFields string         `json:"custom_fields" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (e *Employee) RecordID() uint      { return e.ID }
func (e *Employee) SetRecordID(id uint) { e.ID = id }

// DisplayName joins first and last name the way list views show them
func (e *Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}

// FillName defaults Name to the display name when it is empty
func (e *Employee) FillName() {
	if strings.TrimSpace(e.Name) == "" {
		e.Name = strings.TrimSpace(e.DisplayName())
	}
}
