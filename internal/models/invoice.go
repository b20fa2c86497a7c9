package models

import "time"

// Invoicing models. Totals (subtotal, CGST/SGST, grand total) are always
// derived from items and the client's state at read time, never persisted.
type Invoice struct {
	ID        uint          `gorm:"primaryKey"`
	Number    string        `gorm:"index"`
	Status    string        `gorm:"not null;default:'draft'"` // draft, final
	UserID    uint          `gorm:"not null;index"`
	ClientID  uint          `gorm:"not null"`
	Client    Client        `gorm:"foreignKey:ClientID"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey"`
	InvoiceID uint    `gorm:"not null"`
	ProductID uint    `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
}
