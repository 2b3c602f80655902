package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile holds the public contact/bio attributes of a user, separate from
// the User model which handles authentication.
type Profile struct {
	gorm.Model
	UserID       uint           `json:"userID" gorm:"not null;uniqueIndex"`
	User         User           `json:"user" gorm:"foreignKey:UserID"`
	Name         string         `json:"name" gorm:"size:100"`
	Email        string         `json:"email" gorm:"size:256"`
	MobileNumber string         `json:"mobileNumber" gorm:"size:15"`
	Location     string         `json:"location" gorm:"size:255"`
	Education    string         `json:"education" gorm:"size:255"`
	Experience   int            `json:"experience" gorm:"default:0"` // years
	Speciality   string         `json:"speciality" gorm:"type:text"`
	Bio          string         `json:"bio" gorm:"type:text"`
	Dishes       datatypes.JSON `json:"dishes"` // array of strings
	ProfileImage string         `json:"profileImage" gorm:"size:512"`
	WorkImages   []WorkImage    `json:"workImages" gorm:"foreignKey:ProfileID"`
}

func (p *Profile) MarshalJSON() ([]byte, error) {
	type Alias Profile
	aux := &struct {
		Dishes []string `json:"dishes"`
		*Alias
	}{
		Dishes: []string{},
		Alias:  (*Alias)(p),
	}

	if p.Dishes != nil {
		var dishes []string
		if err := json.Unmarshal(p.Dishes, &dishes); err == nil {
			aux.Dishes = dishes
		}
	}

	return json.Marshal(aux)
}

// WorkImage is a single uploaded portfolio image belonging to a profile.
type WorkImage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProfileID  uint      `json:"profileID" gorm:"not null;index"`
	Image      string    `json:"image" gorm:"size:512;not null"`
	UploadedAt time.Time `json:"uploadedAt" gorm:"autoCreateTime"`
}
