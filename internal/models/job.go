package models

import (
	"time"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
)

// Job is a job-opening record in the placement pipeline. Unlike clients and
// projects it has no follow-up history list, only the single action slot
// (FollowUpDate) which is overwritten on each update.
type Job struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"not null;index"`
	CompanyName      string `gorm:"not null;index"`
	JobTitle         string `gorm:"not null"`
	ContactPerson    string
	ContactEmail     string
	Location         string
	Status           string `gorm:"not null;default:'open'"` // open, on-hold, closed
	FollowUpDate     *time.Time
	LastFollowUpDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// followup.Entity adapter

func (j Job) DisplayName() string { return j.CompanyName }
func (j Job) ContactName() string { return j.ContactPerson }
func (j Job) FollowupRecords() []followup.Record {
	return nil
}
func (j Job) ActionFollowup() *followup.Action {
	return toAction(j.FollowUpDate, j.LastFollowUpDate)
}
func (j Job) HasFollowupList() bool { return false }
