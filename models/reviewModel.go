package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ProductID  uint                        `json:"productId" gorm:"index"`
	UserID     uint                        `json:"userId"`
	User       User                        `json:"user" gorm:"foreignKey:UserID"`
	OrderID    *uint                       `json:"orderId"`
	Rating     int                         `json:"rating"`
	Comment    string                      `json:"comment"`
	Images     datatypes.JSONSlice[string] `json:"images"`
	IsVerified bool                        `json:"isVerified"`
}
