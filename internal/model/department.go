package model

import (
	"time"

	"gorm.io/gorm"
)

// Department groups employees; departments may nest through ParentDeptID
type Department struct {
	ID            uint           `json:"id" gorm:"primarykey"`
	Name          string         `json:"name" gorm:"type:varchar(100);not null"`
	EmployeeCount int            `json:"employee_count" gorm:"default:0"`
	ManagerID     *uint          `json:"manager_id"`
	ParentDeptID  *uint          `json:"parent_dept_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (d *Department) RecordID() uint      { return d.ID }
func (d *Department) SetRecordID(id uint) { d.ID = id }

func (d *Department) CopyRefs() {
	d.ManagerID = copyID(d.ManagerID)
	d.ParentDeptID = copyID(d.ParentDeptID)
}
