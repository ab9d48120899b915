package models

import "gorm.io/gorm"

// Student is an enrolled learner. The password is hashed at write time and
// never serialized back out.
type Student struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;unique;not null" json:"email"`
	Mobile    string `gorm:"size:15;not null" json:"mobile"`
	StudentID string `gorm:"size:50;unique;not null" json:"student_id"` // derived: {org}-{courseCode}-{year}-{seq}
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"default:'STUDENT'" json:"role"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
