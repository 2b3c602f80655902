package services

import (
	"fmt"
	"testing"
	"time"

	"chef-booking-server/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.WorkImage{},
		&models.Chef{},
		&models.Booking{},
		&models.BlogPost{},
		&models.ContactQuery{},
		&models.Review{},
		&models.ChefResponse{},
		&models.AuditLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedChef(t *testing.T, db *gorm.DB, owner models.User, pricePerPerson float64) models.Chef {
	t.Helper()
	chef := models.Chef{
		UserID:         owner.ID,
		Name:           owner.Username,
		Specialty:      "North Indian",
		Experience:     5,
		PricePerPerson: pricePerPerson,
	}
	require.NoError(t, db.Create(&chef).Error)
	return chef
}

func seedBooking(t *testing.T, db *gorm.DB, customer models.User, chef models.Chef, day time.Time, clock string) models.Booking {
	t.Helper()
	booking := models.Booking{
		CustomerID: customer.ID,
		ChefID:     chef.ID,
		Date:       day.UTC().Truncate(24 * time.Hour),
		Time:       clock,
		Person:     2,
		TotalPrice: chef.PricePerPerson * 2,
		Status:     models.BookingPending,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

// fixed reference time so past/upcoming partitions are deterministic
var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }
