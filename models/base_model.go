package models

import "time"

// BaseModel tüm GORM tablolarında ortak olan alanlar.
type BaseModel struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
