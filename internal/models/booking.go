package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	SalonID uint  `gorm:"index" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	// Snapshot of the salon service at booking time; later edits to the
	// salon's service list never touch these fields.
	ServiceID       uint    `json:"service_id"`
	ServiceName     string  `gorm:"size:100;not null" json:"service_name"`
	ServicePrice    float64 `gorm:"not null" json:"service_price"`
	ServiceDuration int     `gorm:"not null" json:"service_duration"`

	Date      time.Time `gorm:"not null" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
