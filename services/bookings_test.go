package services

import (
	"testing"
	"time"

	"chef-booking-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingComputesTotalPrice(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 25.00)

	booking, err := svc.Create(models.Actor{ID: customer.ID, Role: models.RoleUser},
		chef.ID, testNow.Add(48*time.Hour), "18:30", 3)
	require.NoError(t, err)

	assert.Equal(t, 75.00, booking.TotalPrice)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, customer.ID, booking.CustomerID)
}

func TestCreateBookingValidation(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 25.00)

	actor := models.Actor{ID: customer.ID, Role: models.RoleUser}

	_, err := svc.Create(actor, chef.ID, testNow.Add(48*time.Hour), "18:30", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(actor, chef.ID, testNow.Add(-48*time.Hour), "18:30", 2)
	assert.ErrorIs(t, err, ErrValidation)

	// a chef cannot book their own profile
	_, err = svc.Create(models.Actor{ID: owner.ID, Role: models.RoleUser},
		chef.ID, testNow.Add(48*time.Hour), "18:30", 2)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(actor, 9999, testNow.Add(48*time.Hour), "18:30", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	stranger := seedUser(t, db, "stranger")
	chef := seedChef(t, db, owner, 30.00)
	booking := seedBooking(t, db, customer, chef, testNow.Add(72*time.Hour), "19:00")

	chefActor := models.Actor{ID: owner.ID, Role: models.RoleUser}

	// a non-owning user cannot accept, state stays Pending
	_, err := svc.UpdateStatus(models.Actor{ID: stranger.ID, Role: models.RoleUser}, booking.ID, models.BookingAccepted)
	assert.ErrorIs(t, err, ErrPermission)

	var unchanged models.Booking
	require.NoError(t, db.First(&unchanged, booking.ID).Error)
	assert.Equal(t, models.BookingPending, unchanged.Status)

	// target status must be Accepted or Rejected
	_, err = svc.UpdateStatus(chefActor, booking.ID, "Pending")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.UpdateStatus(chefActor, booking.ID, "Cancelled")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(chefActor, booking.ID, models.BookingAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingAccepted, updated.Status)

	// terminal: cannot flip to Rejected nor back to Pending
	_, err = svc.UpdateStatus(chefActor, booking.ID, models.BookingRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var final models.Booking
	require.NoError(t, db.First(&final, booking.ID).Error)
	assert.Equal(t, models.BookingAccepted, final.Status)
}

func TestSoftDeleteSelfService(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	other := seedUser(t, db, "other")
	chef := seedChef(t, db, owner, 20.00)

	past := seedBooking(t, db, customer, chef, testNow.Add(-72*time.Hour), "19:00")
	upcoming := seedBooking(t, db, customer, chef, testNow.Add(72*time.Hour), "19:00")

	customerActor := models.Actor{ID: customer.ID, Role: models.RoleUser}

	// upcoming bookings cannot be self-removed
	_, err := svc.SoftDelete(customerActor, upcoming.ID)
	assert.ErrorIs(t, err, ErrValidation)

	// another customer cannot remove someone else's booking
	_, err = svc.SoftDelete(models.Actor{ID: other.ID, Role: models.RoleUser}, past.ID)
	assert.ErrorIs(t, err, ErrPermission)

	deleted, err := svc.SoftDelete(customerActor, past.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	require.NotNil(t, deleted.DeletedAt)
	require.NotNil(t, deleted.DeletedByID)
	assert.Equal(t, customer.ID, *deleted.DeletedByID)
}

func TestSoftDeleteIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)
	booking := seedBooking(t, db, customer, chef, testNow.Add(-72*time.Hour), "19:00")

	customerActor := models.Actor{ID: customer.ID, Role: models.RoleUser}
	staffActor := models.Actor{ID: owner.ID, Role: models.RoleStaff}

	first, err := svc.SoftDelete(customerActor, booking.ID)
	require.NoError(t, err)
	firstDeletedAt := *first.DeletedAt
	firstDeletedBy := *first.DeletedByID

	// second call, even by staff, is a no-op preserving the first stamps
	second, err := svc.SoftDelete(staffActor, booking.ID)
	require.NoError(t, err)
	assert.True(t, second.IsDeleted)
	assert.Equal(t, firstDeletedAt, *second.DeletedAt)
	assert.Equal(t, firstDeletedBy, *second.DeletedByID)
}

func TestSoftDeleteStaffSkipsPastOnlyRule(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	staff := seedUser(t, db, "backoffice")
	chef := seedChef(t, db, owner, 20.00)
	upcoming := seedBooking(t, db, customer, chef, testNow.Add(72*time.Hour), "19:00")

	deleted, err := svc.SoftDelete(models.Actor{ID: staff.ID, Role: models.RoleStaff}, upcoming.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
}

func TestHardDeleteRequiresArchived(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	staff := seedUser(t, db, "backoffice")
	chef := seedChef(t, db, owner, 20.00)
	booking := seedBooking(t, db, customer, chef, testNow.Add(-72*time.Hour), "19:00")

	staffActor := models.Actor{ID: staff.ID, Role: models.RoleStaff}

	// active booking: refused
	err := svc.HardDelete(staffActor, booking.ID)
	assert.ErrorIs(t, err, ErrValidation)

	// customers never hard-delete
	err = svc.HardDelete(models.Actor{ID: customer.ID, Role: models.RoleUser}, booking.ID)
	assert.ErrorIs(t, err, ErrPermission)

	_, err = svc.SoftDelete(models.Actor{ID: customer.ID, Role: models.RoleUser}, booking.ID)
	require.NoError(t, err)

	require.NoError(t, svc.HardDelete(staffActor, booking.ID))

	var count int64
	db.Model(&models.Booking{}).Where("id = ?", booking.ID).Count(&count)
	assert.Zero(t, count)
}

func TestClearPast(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	other := seedUser(t, db, "other")
	chef := seedChef(t, db, owner, 20.00)

	seedBooking(t, db, customer, chef, testNow.Add(-24*time.Hour), "10:00")
	seedBooking(t, db, customer, chef, testNow.Add(-48*time.Hour), "10:00")
	seedBooking(t, db, customer, chef, testNow.Add(48*time.Hour), "10:00") // upcoming, untouched
	seedBooking(t, db, other, chef, testNow.Add(-24*time.Hour), "10:00")   // other customer, untouched

	affected, err := svc.ClearPast(models.Actor{ID: customer.ID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	// rerun finds nothing new
	affected, err = svc.ClearPast(models.Actor{ID: customer.ID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Zero(t, affected)

	var remaining int64
	db.Model(&models.Booking{}).Scopes(models.ActiveBookings).Count(&remaining)
	assert.EqualValues(t, 2, remaining)
}

func TestLoadDashboardPartitions(t *testing.T) {
	db := testDB(t)
	svc := NewBookingService(db)
	svc.Now = fixedClock

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)

	seedBooking(t, db, customer, chef, testNow.Add(-24*time.Hour), "10:00")
	seedBooking(t, db, customer, chef, testNow.Add(48*time.Hour), "10:00")
	archived := seedBooking(t, db, customer, chef, testNow.Add(48*time.Hour), "11:00")
	_, err := svc.SoftDelete(models.Actor{ID: owner.ID, Role: models.RoleStaff}, archived.ID)
	require.NoError(t, err)

	// customer view
	d, err := svc.LoadDashboard(models.Actor{ID: customer.ID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Len(t, d.CustomerUpcoming, 1)
	assert.Len(t, d.CustomerPast, 1)
	assert.Empty(t, d.ChefUpcoming)

	// chef view sees the same rows from the other side
	d, err = svc.LoadDashboard(models.Actor{ID: owner.ID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Len(t, d.ChefUpcoming, 1)
	assert.Len(t, d.ChefPast, 1)
	assert.EqualValues(t, 1, d.PendingCount)
}
