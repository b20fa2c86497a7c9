package models

import (
	"time"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
)

// Client entity
type Client struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"not null;index"` // FK to User (creator)
	ClientName        string `gorm:"not null;index"`
	ContactPersonName string
	Email             string
	Phone             string
	Address           string
	City              string
	StateName         string `gorm:"index"` // drives the CGST/SGST vs IGST split
	GSTIN             string
	Followups         []FollowupRecord `gorm:"polymorphic:Owner"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// followup.Entity adapter

func (c Client) DisplayName() string { return c.ClientName }
func (c Client) ContactName() string { return c.ContactPersonName }
func (c Client) FollowupRecords() []followup.Record {
	return toRecords(c.Followups)
}
func (c Client) ActionFollowup() *followup.Action { return nil }
func (c Client) HasFollowupList() bool            { return true }
