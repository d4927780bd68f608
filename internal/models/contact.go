package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InquiryType classifies a contact submission.
type InquiryType string

const (
	InquiryGeneral     InquiryType = "general"
	InquiryMedia       InquiryType = "media"
	InquiryPartnership InquiryType = "partnership"
	InquiryResearch    InquiryType = "research"
	InquiryCareers     InquiryType = "careers"
)

func (t InquiryType) Valid() bool {
	switch t {
	case InquiryGeneral, InquiryMedia, InquiryPartnership, InquiryResearch, InquiryCareers:
		return true
	}
	return false
}

// SubmissionStatus is admin-mutated triage state.
type SubmissionStatus string

const (
	SubmissionNew        SubmissionStatus = "new"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionResolved   SubmissionStatus = "resolved"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionNew, SubmissionInProgress, SubmissionResolved:
		return true
	}
	return false
}

// ContactSubmissionModel is append-only; content fields never change
// after creation, only Status moves.
type ContactSubmissionModel struct {
	ID          string           `json:"id"           gorm:"type:char(36);primaryKey"`
	Name        string           `json:"name"         gorm:"not null"`
	Email       string           `json:"email"        gorm:"not null"`
	Subject     string           `json:"subject"      gorm:"not null"`
	Message     string           `json:"message"      gorm:"type:text;not null"`
	InquiryType InquiryType      `json:"inquiry_type" gorm:"index;not null"`
	Status      SubmissionStatus `json:"status"       gorm:"index;default:'new'"`
	CreatedAt   time.Time        `json:"created"`
}

func (ContactSubmissionModel) TableName() string { return "contact_submissions" }

func (m *ContactSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
