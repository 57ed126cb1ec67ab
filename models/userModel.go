package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name                   string `json:"name"`
	Email                  string `json:"email" gorm:"uniqueIndex"`
	Phone                  string `json:"phone"`
	Password               string `json:"password"`
	Role                   string `json:"role"`
	AccountActivated       bool   `json:"accountActivated"`
	AccountActivationToken string `json:"-"`
	PasswordResetToken     string `json:"-"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Address is a per-user shipping address. Orders copy its fields at creation
// time, so editing or deleting an address never changes an existing order.
type Address struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"index"`
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}
