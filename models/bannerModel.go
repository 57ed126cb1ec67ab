package models

import "gorm.io/gorm"

type Banner struct {
	gorm.Model
	Title      string `json:"title" binding:"required"`
	Subtitle   string `json:"subtitle"`
	ImageURL   string `json:"imageUrl" binding:"required"`
	ButtonText string `json:"buttonText"`
	LinkURL    string `json:"linkUrl"`
	IsActive   bool   `json:"isActive" gorm:"default:true"`
	SortOrder  int    `json:"sortOrder"`
}
