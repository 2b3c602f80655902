package services

import (
	"log"
	"time"

	"chef-booking-server/models"

	"gorm.io/gorm"
)

const DefaultRetentionDays = 30

type CleanupResult struct {
	Eligible int64 `json:"eligible"`
	Deleted  int64 `json:"deleted"`
	DryRun   bool  `json:"dryRun"`
}

// CleanupPastBookings soft-deletes non-deleted bookings scheduled before
// now - retentionDays. System-initiated deletions leave deleted_by_id NULL,
// which distinguishes them from user-initiated removals. The is_deleted
// filter makes re-runs find nothing new.
func CleanupPastBookings(db *gorm.DB, retentionDays int, dryRun bool, now time.Time) (CleanupResult, error) {
	if retentionDays < 0 {
		retentionDays = 0
	}
	cutoff := now.UTC().Add(-time.Duration(retentionDays) * 24 * time.Hour)

	eligible := func() *gorm.DB {
		return db.Model(&models.Booking{}).
			Scopes(models.ActiveBookings, models.PastBookings(cutoff))
	}

	result := CleanupResult{DryRun: dryRun}
	if err := eligible().Count(&result.Eligible).Error; err != nil {
		return result, err
	}

	if dryRun {
		log.Printf("cleanup dry run: %d booking(s) eligible (retention %dd)", result.Eligible, retentionDays)
		return result, nil
	}

	res := eligible().Updates(map[string]interface{}{
		"is_deleted":    true,
		"deleted_at":    now.UTC(),
		"deleted_by_id": nil,
	})
	if res.Error != nil {
		return result, res.Error
	}
	result.Deleted = res.RowsAffected
	log.Printf("cleanup: soft-deleted %d booking(s) (retention %dd)", result.Deleted, retentionDays)
	return result, nil
}

// StartCleanupTicker runs CleanupPastBookings every interval until stop is
// closed. main starts this only when BOOKING_CLEANUP_ENABLED is set.
func StartCleanupTicker(db *gorm.DB, retentionDays int, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := CleanupPastBookings(db, retentionDays, false, time.Now()); err != nil {
					log.Println("cleanup error:", err)
				}
			case <-stop:
				return
			}
		}
	}()
}
