package models

import "gorm.io/gorm"

// Chef is the bookable profile of a user. A user becomes a chef by creating
// exactly one Chef record.
type Chef struct {
	gorm.Model
	UserID         uint    `json:"userID" gorm:"not null;uniqueIndex"`
	User           User    `json:"user" gorm:"foreignKey:UserID"`
	Name           string  `json:"name" gorm:"size:100;not null"`
	Specialty      string  `json:"specialty" gorm:"size:200"`
	Experience     int     `json:"experience"` // years
	TeamMembers    *int    `json:"teamMembers" gorm:"check:team_members >= 2"`
	PricePerPerson float64 `json:"pricePerPerson" gorm:"not null"`
	Image          string  `json:"image" gorm:"size:512"` // chef_dishes/ media path
}
