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

// CaseStudyService mirrors Service for the case_studies table.
type CaseStudyService struct {
	db *gorm.DB
}

func NewCaseStudyService(db *gorm.DB) *CaseStudyService {
	return &CaseStudyService{db: db}
}

func (s *CaseStudyService) slugExists(candidate string) (bool, error) {
	var count int64
	err := s.db.Model(&models.CaseStudyModel{}).Where("slug = ?", candidate).Count(&count).Error
	return count > 0, err
}

func (s *CaseStudyService) Create(ident authz.Identity, dto *CreateDTO) (*models.CaseStudyModel, error) {
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

	cs := models.CaseStudyModel{
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
		cs.PublishedAt = &now
	}

	if err := s.db.Create(&cs).Error; err != nil {
		return nil, err
	}
	return &cs, nil
}

func (s *CaseStudyService) GetByIdentifier(ident authz.Identity, identifier string) (*models.CaseStudyModel, error) {
	var cs models.CaseStudyModel
	err := s.db.Preload("Author").Where("id = ? OR slug = ?", identifier, identifier).First(&cs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("case study")
		}
		return nil, err
	}
	if !authz.CanView(ident, cs.AuthorID, cs.Status) {
		return nil, apperr.NotFound("case study")
	}
	return &cs, nil
}

func (s *CaseStudyService) List(ident authz.Identity, q pagination.Query, lq ListQuery) ([]models.CaseStudyModel, response.Pagination, error) {
	tx := s.db.Model(&models.CaseStudyModel{})

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

	var studies []models.CaseStudyModel
	pag, err := pagination.Paginate(tx, q, &studies)
	return studies, pag, err
}

func (s *CaseStudyService) Update(ident authz.Identity, id string, dto *UpdateDTO) (*models.CaseStudyModel, error) {
	cs, err := s.GetByIdentifier(ident, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanEditContent(ident, cs.AuthorID, cs.Status); err != nil {
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
		return cs, nil
	}

	if err := s.db.Model(cs).Updates(updates).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *CaseStudyService) UpdateStatus(ident authz.Identity, id string, to models.ContentStatus, reason string) (*models.CaseStudyModel, error) {
	cs, err := s.GetByIdentifier(ident, id)
	if err != nil {
		return nil, err
	}
	from := cs.Status

	if err := authz.Transition(ident, cs.AuthorID, from, to); err != nil {
		return nil, err
	}
	if to == models.StatusPendingReview {
		if err := authz.ValidateSubmission(cs.Title, cs.Content); err != nil {
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

	res := s.db.Model(&models.CaseStudyModel{}).
		Where("id = ? AND status = ?", cs.ID, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("case study status changed concurrently")
	}

	return s.GetByIdentifier(ident, cs.ID)
}
