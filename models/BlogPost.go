package models

import "gorm.io/gorm"

type BlogPost struct {
	gorm.Model
	Title       string `json:"title" gorm:"size:200;not null"`
	Image       string `json:"image" gorm:"size:512"` // blog_images/ media path
	Content     string `json:"content" gorm:"type:text"`
	AuthorID    uint   `json:"authorID" gorm:"not null;index"`
	Author      User   `json:"author" gorm:"foreignKey:AuthorID"`
	IsPublished bool   `json:"isPublished" gorm:"default:true;index"`
}
