package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate request states. A decided request is terminal; rejected
// requests are not re-requestable.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// CertificateRequest is a student's ask for a certificate on a completed
// course, adjudicated by an admin.
type CertificateRequest struct {
	gorm.Model
	StudentID       uint       `gorm:"index;not null" json:"student_id"`
	CourseID        uint       `gorm:"index;not null" json:"course_id"`
	Status          string     `gorm:"size:20;default:'PENDING'" json:"status"`
	RejectionReason string     `json:"rejection_reason"`
	ApprovedBy      *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	IsDeleted       bool       `gorm:"default:false" json:"-"`
}
