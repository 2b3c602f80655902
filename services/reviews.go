package services

import (
	"fmt"
	"time"

	"chef-booking-server/models"

	"gorm.io/gorm"
)

// ReviewService handles the Booking -> Review -> ChefResponse chain.
// Ownership is resolved by explicit lookups each time, never by object
// back-pointers.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// SubmitReview creates the booking's single review. If the booking already
// has one, the existing review is returned unchanged: a second submission
// redirects rather than errors.
func (s *ReviewService) SubmitReview(actor models.Actor, bookingID uint, rating int, comment string) (*models.Review, bool, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	if booking.CustomerID != actor.ID {
		return nil, false, fmt.Errorf("%w: only the booking's customer can review it", ErrPermission)
	}

	var existing models.Review
	if err := s.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		return &existing, false, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	if rating < 1 || rating > 5 {
		return nil, false, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	review := models.Review{
		BookingID: booking.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return nil, false, err
	}
	return &review, true, nil
}

// SubmitResponse attaches the chef's single reply to a review. Only the
// owner of the reviewed booking's chef profile may respond, and only once.
func (s *ReviewService) SubmitResponse(actor models.Actor, reviewID uint, text string) (*models.ChefResponse, error) {
	var review models.Review
	if err := s.DB.First(&review, reviewID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var booking models.Booking
	if err := s.DB.Preload("Chef").First(&booking, review.BookingID).Error; err != nil {
		return nil, err
	}
	if booking.Chef.UserID != actor.ID {
		return nil, fmt.Errorf("%w: only the booked chef can respond to this review", ErrPermission)
	}

	var existing models.ChefResponse
	if err := s.DB.Where("review_id = ?", review.ID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: this review already has a response", ErrValidation)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if text == "" {
		return nil, fmt.Errorf("%w: response text is required", ErrValidation)
	}

	response := models.ChefResponse{
		ReviewID: review.ID,
		Response: text,
	}
	if err := s.DB.Create(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}
