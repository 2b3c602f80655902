package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingPending  = "Pending"
	BookingAccepted = "Accepted"
	BookingRejected = "Rejected"
)

// Booking is a customer's request for a chef on a given date and time.
// Soft deletion is an explicit audited flag, not gorm's DeletedAt: archived
// rows stay queryable and record who archived them (NULL = system cleanup).
type Booking struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CustomerID  uint       `json:"customerID" gorm:"not null;index"`
	Customer    User       `json:"customer" gorm:"foreignKey:CustomerID"`
	ChefID      uint       `json:"chefID" gorm:"not null;index"`
	Chef        Chef       `json:"chef" gorm:"foreignKey:ChefID"`
	Date        time.Time  `json:"date" gorm:"not null;index:idx_bookings_status_date,priority:2;index:idx_bookings_deleted_date,priority:2"`
	Time        string     `json:"time" gorm:"size:5;not null"` // "15:04"
	Person      int        `json:"person" gorm:"not null"`
	TotalPrice  float64    `json:"totalPrice" gorm:"not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:Pending;index:idx_bookings_status_date,priority:1"`
	IsDeleted   bool       `json:"isDeleted" gorm:"default:false;index:idx_bookings_deleted_date,priority:1"`
	DeletedAt   *time.Time `json:"deletedAt"`
	DeletedByID *uint      `json:"deletedByID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ScheduledAt combines the date column with the "HH:MM" time column.
func (b *Booking) ScheduledAt() time.Time {
	t, err := time.Parse("15:04", b.Time)
	if err != nil {
		return b.Date
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func (b *Booking) IsPast(now time.Time) bool {
	return b.ScheduledAt().Before(now)
}

// PastBookings scopes a query to bookings scheduled strictly before ref.
// The date column holds UTC midnight, so the split comparison matches the
// (date, time) pair lexicographically.
func PastBookings(ref time.Time) func(db *gorm.DB) *gorm.DB {
	day := ref.UTC().Truncate(24 * time.Hour)
	clock := ref.UTC().Format("15:04")
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("date < ? OR (date = ? AND time < ?)", day, day, clock)
	}
}

// UpcomingBookings is the complement of PastBookings.
func UpcomingBookings(ref time.Time) func(db *gorm.DB) *gorm.DB {
	day := ref.UTC().Truncate(24 * time.Hour)
	clock := ref.UTC().Format("15:04")
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("date > ? OR (date = ? AND time >= ?)", day, day, clock)
	}
}

// ActiveBookings excludes archived rows; queries opt in to archived data
// explicitly rather than seeing it by default.
func ActiveBookings(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
