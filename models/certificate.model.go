package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is the immutable issued artifact. CertificateID is the
// public identifier used for verification lookups and embedded in the QR
// code; VerificationCode is an opaque secondary token returned alongside.
type Certificate struct {
	gorm.Model
	CertificateID    string    `gorm:"size:50;unique;not null" json:"certificate_id"`
	StudentID        uint      `gorm:"index;not null" json:"student_id"`
	CourseID         uint      `gorm:"index;not null" json:"course_id"`
	IssueDate        time.Time `json:"issue_date"`
	CertificateURL   string    `json:"certificate_url"`
	VerificationCode string    `gorm:"size:20" json:"verification_code"`
	IsDeleted        bool      `gorm:"default:false" json:"-"`
}
