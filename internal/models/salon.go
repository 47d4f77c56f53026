package models

import "time"

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`

	OwnerID uint `gorm:"index" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner"`

	Address string   `gorm:"size:255;not null" json:"address"`
	City    string   `gorm:"size:100;not null" json:"city"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`

	Services       []SalonService   `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	OperatingHours []OperatingHours `gorm:"constraint:OnDelete:CASCADE;" json:"operating_hours"`
	Images         []SalonImage     `gorm:"constraint:OnDelete:CASCADE;" json:"images"`

	// Derived mean of review ratings, recomputed with every review mutation.
	Rating float64 `gorm:"default:0" json:"rating"`

	Reviews []Review `gorm:"constraint:OnDelete:CASCADE;" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SalonService struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Image       string  `gorm:"size:255" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OperatingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Weekday int    `json:"weekday"`
	Open    string `gorm:"size:5" json:"open"`
	Close   string `gorm:"size:5" json:"close"`
}

type SalonImage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	SalonID uint   `gorm:"index" json:"salon_id"`
	URL     string `gorm:"size:255;not null" json:"url"`
}
