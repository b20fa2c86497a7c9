package models

import (
	"time"

	"github.com/viddeveloper111/invoiceadmin-sub000/internal/followup"
)

// FollowupRecord is one dated entry in an entity's follow-up history.
// Owned polymorphically by a Client or Project (OwnerType/OwnerID); mutated
// only by marking Completed, never deleted.
type FollowupRecord struct {
	ID          uint      `gorm:"primaryKey"`
	OwnerType   string    `gorm:"not null;index:idx_followup_owner"` // "Client" or "Project"
	OwnerID     uint      `gorm:"not null;index:idx_followup_owner"`
	Description string    `gorm:"not null"`
	DateTime    time.Time `gorm:"not null"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toRecords(records []FollowupRecord) []followup.Record {
	out := make([]followup.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, followup.Record{
			ID:          int(rec.ID),
			Description: rec.Description,
			DateTime:    rec.DateTime.UTC().Format(time.RFC3339),
			Completed:   rec.Completed,
		})
	}
	return out
}

func toAction(followUp, lastFollowUp *time.Time) *followup.Action {
	if followUp == nil && lastFollowUp == nil {
		return nil
	}
	a := &followup.Action{}
	if followUp != nil {
		a.FollowUpDate = followUp.UTC().Format(time.RFC3339)
	}
	if lastFollowUp != nil {
		a.LastFollowUpDate = lastFollowUp.UTC().Format(time.RFC3339)
	}
	return a
}
