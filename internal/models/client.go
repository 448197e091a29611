package models

import "time"

// Cliente del salón, puede o no tener login propio
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Username string `gorm:"size:50" json:"username"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	DNI      string `gorm:"size:20" json:"dni"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
