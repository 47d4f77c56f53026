package models

import "time"

// One review per user per salon, enforced by the composite unique index.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint `gorm:"uniqueIndex:idx_reviews_salon_user" json:"salon_id"`
	UserID  uint `gorm:"uniqueIndex:idx_reviews_salon_user" json:"user_id"`
	User    User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
