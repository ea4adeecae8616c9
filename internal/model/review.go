package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review statuses
const (
	ReviewStatusPending   = "pending"
	ReviewStatusSubmitted = "submitted"
	ReviewStatusCompleted = "completed"
)

// Review is a performance review of one employee for one period
type Review struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	Name       string         `json:"name" gorm:"type:varchar(255)"`
	EmployeeID *uint          `json:"employee_id" gorm:"index"`
	ReviewerID *uint          `json:"reviewer_id"`
	Period     string         `json:"period" gorm:"type:varchar(50)"`
	Ratings    datatypes.JSON `json:"ratings"`
	Comments   string         `json:"comments" gorm:"type:text"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (r *Review) RecordID() uint      { return r.ID }
func (r *Review) SetRecordID(id uint) { r.ID = id }

func (r *Review) CopyRefs() {
	r.EmployeeID = copyID(r.EmployeeID)
	r.ReviewerID = copyID(r.ReviewerID)
	if r.Ratings != nil {
		r.Ratings = append(datatypes.JSON(nil), r.Ratings...)
	}
}
