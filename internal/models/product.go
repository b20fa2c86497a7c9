package models

import (
	"time"

	"gorm.io/gorm"
)

// Product domain model. GSTRatePercent is the percentage rate (0..100)
// applied to price*quantity on invoice lines.
type Product struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Description    string
	Price          float64 `gorm:"not null"`
	GSTRatePercent float64 `gorm:"not null"`
	HSNCode        string  // harmonized tariff code printed on invoices
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
