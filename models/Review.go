package models

import "time"

// Review is the customer's one-per-booking rating. The unique index on
// BookingID enforces the 1:1 relationship at the store level.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BookingID uint      `json:"bookingID" gorm:"not null;uniqueIndex"`
	Booking   Booking   `json:"booking" gorm:"foreignKey:BookingID"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChefResponse is the chef's single reply to a review, writable only by the
// owner of the reviewed booking's chef profile.
type ChefResponse struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReviewID    uint      `json:"reviewID" gorm:"not null;uniqueIndex"`
	Review      Review    `json:"review" gorm:"foreignKey:ReviewID"`
	Response    string    `json:"response" gorm:"type:text;not null"`
	RespondedAt time.Time `json:"respondedAt" gorm:"autoCreateTime"`
}
