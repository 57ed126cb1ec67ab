package models

import (
	"time"

	"gorm.io/gorm"
)

type Seller struct {
	gorm.Model
	Username                string     `json:"username" gorm:"uniqueIndex"`
	Password                string     `json:"-"`
	ShopName                string     `json:"shopName"`
	Email                   string     `json:"email"`
	Phone                   string     `json:"phone"`
	Address                 string     `json:"address"`
	City                    string     `json:"city"`
	State                   string     `json:"state"`
	Pincode                 string     `json:"pincode"`
	IsActive                bool       `json:"isActive" gorm:"default:true"`
	IsVerified              bool       `json:"isVerified"`
	ProfileCompleted        bool       `json:"profileCompleted"`
	VerificationRequestedAt *time.Time `json:"verificationRequestedAt"`
	VerifiedAt              *time.Time `json:"verifiedAt"`
	VerifiedBy              *uint      `json:"verifiedBy"`
}

type Admin struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}
