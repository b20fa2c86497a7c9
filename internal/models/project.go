package models

import (
	"time"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
)

// Project carries both a follow-up history list and the single action slot;
// record-level entries take priority when resolving the next follow-up.
type Project struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"not null;index"`
	ProjectName       string `gorm:"not null;index"`
	ContactPersonName string
	ClientID          uint
	Client            Client `gorm:"foreignKey:ClientID"`
	Description       string
	Status            string `gorm:"not null;default:'active'"` // active, delivered, dropped
	FollowUpDate      *time.Time
	LastFollowUpDate  *time.Time
	Followups         []FollowupRecord `gorm:"polymorphic:Owner"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// followup.Entity adapter

func (p Project) DisplayName() string { return p.ProjectName }
func (p Project) ContactName() string { return p.ContactPersonName }
func (p Project) FollowupRecords() []followup.Record {
	return toRecords(p.Followups)
}
func (p Project) ActionFollowup() *followup.Action {
	return toAction(p.FollowUpDate, p.LastFollowUpDate)
}
func (p Project) HasFollowupList() bool { return true }
