package models

import "gorm.io/gorm"

// Course represents a catalog entry. The course code is immutable after
// creation and feeds into generated student IDs.
type Course struct {
	gorm.Model
	CourseName  string `gorm:"size:150;not null" json:"course_name"`
	CourseCode  string `gorm:"size:20;unique;not null" json:"course_code"`
	Duration    string `gorm:"size:50" json:"duration"` // e.g. "6 Months"
	Description string `json:"description"`
	CreatedBy   uint   `gorm:"index" json:"created_by"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
