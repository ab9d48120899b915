package models

import "gorm.io/gorm"

// Admin accounts live in their own table, mirroring the split identity
// stores for students and staff.
type Admin struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Role      string `gorm:"default:'ADMIN'" json:"role"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
