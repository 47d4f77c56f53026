package models

import "time"

const (
	RoleClient     = "client"
	RoleSalonOwner = "salon-owner"
	RoleAdmin      = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// OTP and OTPExpires are always set and cleared together.
	OTP        *string    `gorm:"size:6" json:"-"`
	OTPExpires *time.Time `json:"-"`

	ProfileImage string `gorm:"size:255" json:"profile_image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) SetOTP(code string, expires time.Time) {
	u.OTP = &code
	u.OTPExpires = &expires
}

func (u *User) ClearOTP() {
	u.OTP = nil
	u.OTPExpires = nil
}
