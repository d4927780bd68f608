package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all content entities.
type Base struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"created"`
	UpdatedAt time.Time      `json:"modified"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// ContentStatus is the shared draft → review → published lifecycle.
type ContentStatus string

const (
	StatusDraft         ContentStatus = "draft"
	StatusPendingReview ContentStatus = "pending_review"
	StatusPublished     ContentStatus = "published"
	StatusRejected      ContentStatus = "rejected"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// ContentBase carries the columns every lifecycle-governed record shares.
// PublishedAt is set exactly once, on the transition into published.
type ContentBase struct {
	Base
	Title           string        `json:"title"            gorm:"not null"`
	Slug            string        `json:"slug"             gorm:"uniqueIndex;not null"`
	Content         string        `json:"content"          gorm:"type:longtext"`
	ContentHTML     string        `json:"content_html"     gorm:"type:longtext"`
	Status          ContentStatus `json:"status"           gorm:"index;default:'draft'"`
	AuthorID        string        `json:"author_id"        gorm:"index;not null"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	PublishedAt     *time.Time    `json:"published_at,omitempty" gorm:"index"`
}
