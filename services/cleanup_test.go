package services

import (
	"testing"
	"time"

	"chef-booking-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupRetentionWindow(t *testing.T) {
	db := testDB(t)

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)

	yesterday := seedBooking(t, db, customer, chef, testNow.Add(-24*time.Hour), "10:00")
	old := seedBooking(t, db, customer, chef, testNow.Add(-31*24*time.Hour), "10:00")

	result, err := CleanupPastBookings(db, 30, false, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Eligible)
	assert.EqualValues(t, 1, result.Deleted)

	var fresh models.Booking
	require.NoError(t, db.First(&fresh, yesterday.ID).Error)
	assert.False(t, fresh.IsDeleted, "booking within the window must survive")

	var archived models.Booking
	require.NoError(t, db.First(&archived, old.ID).Error)
	assert.True(t, archived.IsDeleted)
	require.NotNil(t, archived.DeletedAt)
	assert.Nil(t, archived.DeletedByID, "system cleanup leaves deleted_by NULL")
}

func TestCleanupDryRunMatchesLiveRun(t *testing.T) {
	db := testDB(t)

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)

	seedBooking(t, db, customer, chef, testNow.Add(-40*24*time.Hour), "10:00")
	seedBooking(t, db, customer, chef, testNow.Add(-35*24*time.Hour), "10:00")
	seedBooking(t, db, customer, chef, testNow.Add(-5*24*time.Hour), "10:00")

	dry, err := CleanupPastBookings(db, 30, true, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dry.Eligible)
	assert.Zero(t, dry.Deleted)

	// dry run mutated nothing
	var active int64
	db.Model(&models.Booking{}).Scopes(models.ActiveBookings).Count(&active)
	assert.EqualValues(t, 3, active)

	live, err := CleanupPastBookings(db, 30, false, testNow)
	require.NoError(t, err)
	assert.Equal(t, dry.Eligible, live.Eligible)
	assert.Equal(t, live.Eligible, live.Deleted)
}

func TestCleanupIdempotent(t *testing.T) {
	db := testDB(t)

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)

	seedBooking(t, db, customer, chef, testNow.Add(-60*24*time.Hour), "10:00")

	first, err := CleanupPastBookings(db, 30, false, testNow)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Deleted)

	second, err := CleanupPastBookings(db, 30, false, testNow)
	require.NoError(t, err)
	assert.Zero(t, second.Eligible)
	assert.Zero(t, second.Deleted)
}

func TestCleanupZeroEligibleDoesNotError(t *testing.T) {
	db := testDB(t)

	result, err := CleanupPastBookings(db, 30, false, testNow)
	require.NoError(t, err)
	assert.Zero(t, result.Eligible)
	assert.Zero(t, result.Deleted)
}
