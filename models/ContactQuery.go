package models

import "time"

// ContactQuery is an inbound message from the public contact form. Soft
// deleted by admins; never hard deleted.
type ContactQuery struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	Email     string     `json:"email" gorm:"size:256;not null"`
	Subject   string     `json:"subject" gorm:"size:200"`
	Message   string     `json:"message" gorm:"type:text;not null"`
	IsDeleted bool       `json:"isDeleted" gorm:"default:false;index"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}
