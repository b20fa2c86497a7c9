package models

import "time"

// Audit logging
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   // who made the change
	EntityType string // ex: "Client", "Job", "Project", "Invoice"
	EntityID   uint
	Action     string // ex: "create", "update", "delete"
	Field      string // optional
	OldValue   string // optional
	NewValue   string // optional
	CreatedAt  time.Time
}
