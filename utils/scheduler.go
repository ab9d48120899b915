package utils

import (
	"log"
	"time"

	"nxtsync/database"
	"nxtsync/models"

	"github.com/robfig/cron/v3"
)

// InitializeOtpScheduler starts the daily sweep that purges dead OTP rows.
func InitializeOtpScheduler() {
	log.Println("[OTP-SCHEDULER] Initializing OTP cleanup scheduler...")

	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		log.Println("[OTP-SCHEDULER] Running daily OTP cleanup...")
		PurgeStaleOtps()
	})

	c.Start()
	log.Println("[OTP-SCHEDULER] OTP scheduler started - runs daily at 3 AM")
}

// PurgeStaleOtps removes unverified OTP records whose expiry is more than
// a day in the past. Such rows can never verify and are never read by the
// enrollment flow; verified records are kept as the enrollment
// precondition until the account is created.
func PurgeStaleOtps() {
	cutoff := time.Now().Add(-24 * time.Hour)

	result := database.Database.Db.
		Where("verified = ? AND expires_at < ?", false, cutoff).
		Delete(&models.OTP{})
	if result.Error != nil {
		log.Printf("[OTP-SCHEDULER] Error purging stale OTPs: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[OTP-SCHEDULER] Purged %d stale OTP records", result.RowsAffected)
	}
}
