package models

import (
	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleStaff      = "staff"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email          string `json:"email" gorm:"uniqueIndex;size:256;not null"`
	Password       string `json:"-"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`
	AvatarURL      string `json:"avatarURL"`
	IsActive       *bool  `json:"isActive" gorm:"default:true"`
	Role           string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, staff, super_admin
}

// IsStaff reports whether the user may enter the back-office.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleSuperAdmin
}
