package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP channels
const (
	OtpChannelEmail  = "email"
	OtpChannelMobile = "mobile"
)

// OTP is the single live verification record for an (identifier, channel)
// pair. Sending a fresh code overwrites the previous record.
type OTP struct {
	gorm.Model
	Identifier string    `gorm:"size:100;not null;uniqueIndex:idx_otp_identifier_channel" json:"identifier"`
	Channel    string    `gorm:"size:10;not null;uniqueIndex:idx_otp_identifier_channel" json:"channel"` // email, mobile
	Code       string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Verified   bool      `gorm:"default:false" json:"verified"`
	IsDeleted  bool      `gorm:"default:false" json:"-"`
}
