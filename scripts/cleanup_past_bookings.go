package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"chef-booking-server/services"
	"chef-booking-server/storage"
)

// Periodic retention job: soft-deletes past bookings older than the
// retention window. Meant to be run from cron; see also the in-process
// ticker in main.
func main() {
	defaultRetention := services.DefaultRetentionDays
	if v, err := strconv.Atoi(os.Getenv("BOOKING_RETENTION_DAYS")); err == nil {
		defaultRetention = v
	}

	retentionDays := flag.Int("retention-days", defaultRetention, "Retention period (in days) before soft-deleting past bookings.")
	dryRun := flag.Bool("dry-run", false, "Report eligible bookings without applying cleanup.")
	flag.Parse()

	if enabled := os.Getenv("BOOKING_CLEANUP_ENABLED"); enabled == "false" {
		log.Println("Booking cleanup is disabled by configuration.")
		return
	}

	db := storage.InitializeDB()

	result, err := services.CleanupPastBookings(db, *retentionDays, *dryRun, time.Now())
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d booking(s) eligible for cleanup.\n", result.Eligible)
		return
	}
	fmt.Printf("Soft-deleted %d booking(s).\n", result.Deleted)
}
