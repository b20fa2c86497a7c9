package models

import "time"

// Blog is one post in the multi-tenant aggregator. Source identifies the
// tenant/origin API the post belongs to ("local" for posts authored here).
type Blog struct {
	ID         uint   `gorm:"primaryKey"`
	Source     string `gorm:"not null;index;default:'local'"`
	ExternalID string `gorm:"index"` // id on the origin API, empty for local posts
	Title      string `gorm:"not null"`
	Content    string
	Author     string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
