package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment links a student to a course and tracks completion. One row
// per (student, course) pair.
type Enrollment struct {
	gorm.Model
	StudentID uint            `gorm:"index;not null" json:"student_id"`
	CourseID  uint            `gorm:"index;not null" json:"course_id"`
	Completed bool            `gorm:"default:false" json:"completed"`
	Progress  float64         `gorm:"default:0" json:"progress"` // percentage (0-100)
	StartDate datatypes.Date  `json:"start_date"`
	EndDate   *datatypes.Date `json:"end_date"`
	IsDeleted bool            `gorm:"default:false" json:"-"`
}
