// Package policy manages policies and case studies. Both share the
// publication lifecycle but are scoped by a category enum instead of
// a type.
package policy

import (
	"errors"
	"time"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/modules/authz"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
	"github.com/meridian-institute/core/internal/pkg/richtext"
	"github.com/meridian-institute/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// CreateDTO is shared by policies and case studies.
type CreateDTO struct {
	Title        string                `json:"title"    binding:"required"`
	Abstract     string                `json:"abstract"`
	Content      string                `json:"content"`
	Category     models.PolicyCategory `json:"category" binding:"required"`
	ThumbnailURL string                `json:"thumbnail_url"`
	Status       models.ContentStatus  `json:"status"`
}

// UpdateDTO patches content fields. Nil means unchanged.
type UpdateDTO struct {
	Title        *string                `json:"title"`
	Abstract     *string                `json:"abstract"`
	Content      *string                `json:"content"`
	Category     *models.PolicyCategory `json:"category"`
	ThumbnailURL *string                `json:"thumbnail_url"`
}

// UpdateStatusDTO requests a lifecycle transition.
type UpdateStatusDTO struct {
	Status models.ContentStatus `json:"status" binding:"required"`
	Reason string               `json:"reason"`
}

// ListQuery narrows a listing.
type ListQuery struct {
	Category *models.PolicyCategory `form:"category"`
	Status   *models.ContentStatus  `form:"status"`
}

// Service handles policy business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) slugExists(candidate string) (bool, error) {
	var count int64
	err := s.db.Model(&models.PolicyModel{}).Where("slug = ?", candidate).Count(&count).Error
	return count > 0, err
}

// Create inserts a new policy with a server-derived unique slug.
func (s *Service) Create(ident authz.Identity, dto *CreateDTO) (*models.PolicyModel, error) {
	if !dto.Category.Valid() {
		return nil, apperr.Validation("unknown policy category", map[string]string{"category": string(dto.Category)})
	}
	status, err := authz.CreateStatus(ident, dto.Status)
	if err != nil {
		return nil, err
	}
	uniqueSlug, err := slug.Unique(dto.Title, s.slugExists)
	if err != nil {
		return nil, err
	}

	pol := models.PolicyModel{
		ContentBase: models.ContentBase{
			Title:       dto.Title,
			Slug:        uniqueSlug,
			Content:     dto.Content,
			ContentHTML: richtext.Render(dto.Content),
			Status:      status,
			AuthorID:    ident.ProfileID,
		},
		Abstract:     dto.Abstract,
		Category:     dto.Category,
		ThumbnailURL: dto.ThumbnailURL,
	}
	if status == models.StatusPublished {
		now := time.Now()
		pol.PublishedAt = &now
	}

	if err := s.db.Create(&pol).Error; err != nil {
		return nil, err
	}
	return &pol, nil
}

// GetByIdentifier fetches by id first, slug fallback; invisible
// records read as missing.
func (s *Service) GetByIdentifier(ident authz.Identity, identifier string) (*models.PolicyModel, error) {
	var pol models.PolicyModel
	err := s.db.Preload("Author").Where("id = ? OR slug = ?", identifier, identifier).First(&pol).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("policy")
		}
		return nil, err
	}
	if !authz.CanView(ident, pol.AuthorID, pol.Status) {
		return nil, apperr.NotFound("policy")
	}
	return &pol, nil
}

// List returns a paginated, visibility-filtered listing.
func (s *Service) List(ident authz.Identity, q pagination.Query, lq ListQuery) ([]models.PolicyModel, response.Pagination, error) {
	tx := s.db.Model(&models.PolicyModel{})

	if lq.Category != nil {
		if !lq.Category.Valid() {
			return nil, response.Pagination{}, apperr.Validation("unknown policy category", map[string]string{"category": string(*lq.Category)})
		}
		tx = tx.Where("category = ?", *lq.Category)
	}

	switch {
	case ident.IsAdmin():
		if lq.Status != nil {
			tx = tx.Where("status = ?", *lq.Status)
		}
		tx = tx.Order("created_at DESC, id DESC")
	case lq.Status != nil && *lq.Status != models.StatusPublished:
		if !ident.IsMember() {
			return nil, response.Pagination{}, apperr.Authorization("sign in to list unpublished records")
		}
		tx = tx.Where("status = ? AND author_id = ?", *lq.Status, ident.ProfileID).Order("created_at DESC, id DESC")
	default:
		tx = tx.Where("status = ?", models.StatusPublished).Order("published_at DESC, id DESC")
	}

	var pols []models.PolicyModel
	pag, err := pagination.Paginate(tx, q, &pols)
	return pols, pag, err
}

// Update patches content fields under the shared edit rules.
func (s *Service) Update(ident authz.Identity, id string, dto *UpdateDTO) (*models.PolicyModel, error) {
	pol, err := s.GetByIdentifier(ident, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanEditContent(ident, pol.AuthorID, pol.Status); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Abstract != nil {
		updates["abstract"] = *dto.Abstract
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
		updates["content_html"] = richtext.Render(*dto.Content)
	}
	if dto.Category != nil {
		if !dto.Category.Valid() {
			return nil, apperr.Validation("unknown policy category", map[string]string{"category": string(*dto.Category)})
		}
		updates["category"] = *dto.Category
	}
	if dto.ThumbnailURL != nil {
		updates["thumbnail_url"] = *dto.ThumbnailURL
	}
	if len(updates) == 0 {
		return pol, nil
	}

	if err := s.db.Model(pol).Updates(updates).Error; err != nil {
		return nil, err
	}
	return pol, nil
}

// UpdateStatus runs the shared state machine with a compare-and-swap
// write, mirroring the publication service.
func (s *Service) UpdateStatus(ident authz.Identity, id string, to models.ContentStatus, reason string) (*models.PolicyModel, error) {
	pol, err := s.GetByIdentifier(ident, id)
	if err != nil {
		return nil, err
	}
	from := pol.Status

	if err := authz.Transition(ident, pol.AuthorID, from, to); err != nil {
		return nil, err
	}
	if to == models.StatusPendingReview {
		if err := authz.ValidateSubmission(pol.Title, pol.Content); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{"status": to}
	switch to {
	case models.StatusPublished:
		updates["published_at"] = time.Now()
	case models.StatusRejected:
		updates["rejection_reason"] = reason
	}

	res := s.db.Model(&models.PolicyModel{}).
		Where("id = ? AND status = ?", pol.ID, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("policy status changed concurrently")
	}

	return s.GetByIdentifier(ident, pol.ID)
}
