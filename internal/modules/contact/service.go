// Package contact receives public inquiries and lets admins triage
// them. Submissions are append-only; only the status field ever moves.
package contact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	pkgredis "github.com/meridian-institute/core/internal/pkg/redis"
	"github.com/meridian-institute/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	minMessageLength = 10
	dedupeTTL        = 10 * time.Minute
)

// SubmitDTO is the public contact form payload.
type SubmitDTO struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Subject     string             `json:"subject"`
	Message     string             `json:"message"`
	InquiryType models.InquiryType `json:"inquiry_type"`
}

// Service persists submissions and guards against rapid duplicates.
type Service struct {
	db *gorm.DB
	rc *pkgredis.Client
}

func NewService(db *gorm.DB, rc *pkgredis.Client) *Service {
	return &Service{db: db, rc: rc}
}

// Validate checks the submission fields and returns per-field detail.
func (dto *SubmitDTO) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(dto.Name) == "" {
		fields["name"] = "must not be empty"
	}
	if strings.TrimSpace(dto.Email) == "" {
		fields["email"] = "must not be empty"
	} else if _, err := mail.ParseAddress(dto.Email); err != nil {
		fields["email"] = "must be a well-formed address"
	}
	if strings.TrimSpace(dto.Subject) == "" {
		fields["subject"] = "must not be empty"
	}
	if len(strings.TrimSpace(dto.Message)) < minMessageLength {
		fields["message"] = "must be at least 10 characters"
	}
	if !dto.InquiryType.Valid() {
		fields["inquiry_type"] = "must be one of general, media, partnership, research, careers"
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid contact submission", fields)
	}
	return nil
}

// Submit validates and stores a new submission with status new.
func (s *Service) Submit(ctx context.Context, dto *SubmitDTO) (*models.ContactSubmissionModel, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var dedupeKey string
	if s.rc != nil {
		sum := sha256.Sum256([]byte(dto.Email + "\x00" + dto.Subject + "\x00" + dto.Message))
		dedupeKey = "mi:contact:" + hex.EncodeToString(sum[:])
		if set, err := s.rc.SetNX(ctx, dedupeKey, 1, dedupeTTL); err == nil && !set {
			return nil, apperr.Conflict("an identical submission was received moments ago")
		}
	}

	sub := models.ContactSubmissionModel{
		Name:        strings.TrimSpace(dto.Name),
		Email:       strings.TrimSpace(dto.Email),
		Subject:     strings.TrimSpace(dto.Subject),
		Message:     strings.TrimSpace(dto.Message),
		InquiryType: dto.InquiryType,
		Status:      models.SubmissionNew,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		// release the dedupe key so a retry is not rejected as a duplicate
		if dedupeKey != "" {
			_ = s.rc.Del(ctx, dedupeKey)
		}
		return nil, err
	}
	return &sub, nil
}

// List returns submissions for admin triage, newest first.
func (s *Service) List(q pagination.Query, status *models.SubmissionStatus) ([]models.ContactSubmissionModel, response.Pagination, error) {
	tx := s.db.Model(&models.ContactSubmissionModel{}).Order("created_at DESC, id DESC")
	if status != nil {
		if !status.Valid() {
			return nil, response.Pagination{}, apperr.Validation("unknown submission status", map[string]string{"status": string(*status)})
		}
		tx = tx.Where("status = ?", *status)
	}
	var subs []models.ContactSubmissionModel
	pag, err := pagination.Paginate(tx, q, &subs)
	return subs, pag, err
}

// UpdateStatus moves a submission through triage (admin only).
// Content fields never change after submission.
func (s *Service) UpdateStatus(id string, status models.SubmissionStatus) (*models.ContactSubmissionModel, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown submission status", map[string]string{"status": string(status)})
	}
	var sub models.ContactSubmissionModel
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("contact submission")
		}
		return nil, err
	}
	if err := s.db.Model(&sub).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
