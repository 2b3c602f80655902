package services

import (
	"fmt"
	"time"

	"chef-booking-server/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BookingService owns the booking state machine:
//
//	Pending -> Accepted | Rejected   (chef owner only, terminal)
//	active <-> archived              (soft delete, orthogonal)
//	archived -> gone                 (hard delete, staff only)
type BookingService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Now: time.Now}
}

var terminalStatuses = []string{models.BookingAccepted, models.BookingRejected}

// Create places a Pending booking for the chef. The total price is computed
// once here and never recomputed.
func (s *BookingService) Create(actor models.Actor, chefID uint, date time.Time, timeOfDay string, person int) (*models.Booking, error) {
	if person < 1 {
		return nil, fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return nil, fmt.Errorf("%w: invalid time %q", ErrValidation, timeOfDay)
	}

	var chef models.Chef
	if err := s.DB.First(&chef, chefID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if chef.UserID == actor.ID {
		return nil, fmt.Errorf("%w: you cannot book your own chef profile", ErrValidation)
	}

	day := date.UTC().Truncate(24 * time.Hour)
	today := s.Now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, fmt.Errorf("%w: booking date cannot be in the past", ErrValidation)
	}

	booking := models.Booking{
		CustomerID: actor.ID,
		ChefID:     chef.ID,
		Date:       day,
		Time:       timeOfDay,
		Person:     person,
		TotalPrice: chef.PricePerPerson * float64(person),
		Status:     models.BookingPending,
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus moves a Pending booking to Accepted or Rejected. Only the
// owner of the booking's chef profile may do this; Accepted and Rejected
// are terminal.
func (s *BookingService) UpdateStatus(actor models.Actor, bookingID uint, newStatus string) (*models.Booking, error) {
	if !slices.Contains(terminalStatuses, newStatus) {
		return nil, fmt.Errorf("%w: %q is not a valid target status", ErrInvalidTransition, newStatus)
	}

	var booking models.Booking
	if err := s.DB.Preload("Chef").First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if booking.Chef.UserID != actor.ID {
		return nil, fmt.Errorf("%w: you are not allowed to update this booking", ErrPermission)
	}
	if booking.Status != models.BookingPending {
		return nil, fmt.Errorf("%w: booking is already %s", ErrInvalidTransition, booking.Status)
	}

	// Guarded UPDATE so a concurrent accept/reject cannot double-apply.
	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingPending).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: booking is no longer pending", ErrInvalidTransition)
	}

	booking.Status = newStatus
	return &booking, nil
}

// SoftDelete archives a booking. Customers may archive only their own past
// bookings; staff may archive any booking. Calling it again is a no-op that
// preserves the first deletion stamps.
func (s *BookingService) SoftDelete(actor models.Actor, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actor.IsStaff() {
		if booking.CustomerID != actor.ID {
			return nil, fmt.Errorf("%w: you are not allowed to remove this booking", ErrPermission)
		}
		if !booking.IsPast(s.Now()) {
			return nil, fmt.Errorf("%w: only past bookings can be removed", ErrValidation)
		}
	}

	if booking.IsDeleted {
		return &booking, nil
	}

	now := s.Now().UTC()
	actorID := actor.ID
	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND is_deleted = ?", booking.ID, false).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deleted_at":    now,
			"deleted_by_id": actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	booking.IsDeleted = true
	booking.DeletedAt = &now
	booking.DeletedByID = &actorID
	return &booking, nil
}

// HardDelete permanently removes an already-archived booking. Staff only.
func (s *BookingService) HardDelete(actor models.Actor, bookingID uint) error {
	if !actor.IsStaff() {
		return fmt.Errorf("%w: staff access required", ErrPermission)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if !booking.IsDeleted {
		return fmt.Errorf("%w: only archived bookings can be permanently deleted", ErrValidation)
	}

	return s.DB.Delete(&models.Booking{}, booking.ID).Error
}

// ClearPast soft-deletes all of the actor's past, non-deleted bookings in
// one statement and reports how many rows were affected.
func (s *BookingService) ClearPast(actor models.Actor) (int64, error) {
	now := s.Now().UTC()
	actorID := actor.ID

	res := s.DB.Model(&models.Booking{}).
		Scopes(models.ActiveBookings, models.PastBookings(now)).
		Where("customer_id = ?", actor.ID).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deleted_at":    now,
			"deleted_by_id": actorID,
		})
	return res.RowsAffected, res.Error
}

// Dashboard is the customer/chef view of upcoming and past bookings,
// archived rows excluded.
type Dashboard struct {
	CustomerUpcoming []models.Booking `json:"customerUpcoming"`
	CustomerPast     []models.Booking `json:"customerPast"`
	ChefUpcoming     []models.Booking `json:"chefUpcoming"`
	ChefPast         []models.Booking `json:"chefPast"`
	PendingCount     int64            `json:"pendingCount"`
}

func (s *BookingService) LoadDashboard(actor models.Actor) (*Dashboard, error) {
	now := s.Now()
	d := &Dashboard{}

	customer := func() *gorm.DB {
		return s.DB.Preload("Chef").Preload("Chef.User").
			Scopes(models.ActiveBookings).
			Where("customer_id = ?", actor.ID).
			Order("date DESC, time DESC")
	}
	if err := customer().Scopes(models.UpcomingBookings(now)).Find(&d.CustomerUpcoming).Error; err != nil {
		return nil, err
	}
	if err := customer().Scopes(models.PastBookings(now)).Find(&d.CustomerPast).Error; err != nil {
		return nil, err
	}

	var chef models.Chef
	if err := s.DB.Where("user_id = ?", actor.ID).First(&chef).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return d, nil // not a chef, customer half only
		}
		return nil, err
	}

	asChef := func() *gorm.DB {
		return s.DB.Preload("Customer").
			Scopes(models.ActiveBookings).
			Where("chef_id = ?", chef.ID).
			Order("date DESC, time DESC")
	}
	if err := asChef().Scopes(models.UpcomingBookings(now)).Find(&d.ChefUpcoming).Error; err != nil {
		return nil, err
	}
	if err := asChef().Scopes(models.PastBookings(now)).Find(&d.ChefPast).Error; err != nil {
		return nil, err
	}

	err := s.DB.Model(&models.Booking{}).
		Scopes(models.ActiveBookings, models.UpcomingBookings(now)).
		Where("chef_id = ? AND status = ?", chef.ID, models.BookingPending).
		Count(&d.PendingCount).Error
	return d, err
}
