package publication

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

// Service handles publication business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) slugExists(candidate string) (bool, error) {
	var count int64
	err := s.db.Model(&models.PublicationModel{}).Where("slug = ?", candidate).Count(&count).Error
	return count > 0, err
}

// Create inserts a new publication with a server-derived unique slug.
func (s *Service) Create(ident authz.Identity, dto *CreatePublicationDTO) (*models.PublicationModel, error) {
	if !dto.Type.Valid() {
		return nil, apperr.Validation("unknown publication type", map[string]string{"type": string(dto.Type)})
	}

	status, err := authz.CreateStatus(ident, dto.Status)
	if err != nil {
		return nil, err
	}

	uniqueSlug, err := slug.Unique(dto.Title, s.slugExists)
	if err != nil {
		return nil, err
	}

	pub := models.PublicationModel{
		ContentBase: models.ContentBase{
			Title:       dto.Title,
			Slug:        uniqueSlug,
			Content:     dto.Content,
			ContentHTML: richtext.Render(dto.Content),
			Status:      status,
			AuthorID:    ident.ProfileID,
		},
		Abstract:     dto.Abstract,
		Type:         dto.Type,
		ThumbnailURL: dto.ThumbnailURL,
		CategoryID:   dto.CategoryID,
		TagID:        dto.TagID,
	}
	if status == models.StatusPublished {
		now := time.Now()
		pub.PublishedAt = &now
	}

	if err := s.db.Create(&pub).Error; err != nil {
		return nil, err
	}
	return &pub, nil
}

// GetByID fetches a publication the caller is allowed to see.
// Invisible records read as missing.
func (s *Service) GetByID(ident authz.Identity, id string) (*models.PublicationModel, error) {
	return s.getOne(ident, "id = ?", id)
}

// GetBySlug fetches a publication by its public address.
func (s *Service) GetBySlug(ident authz.Identity, slugStr string) (*models.PublicationModel, error) {
	return s.getOne(ident, "slug = ?", slugStr)
}

func (s *Service) getOne(ident authz.Identity, query string, arg interface{}) (*models.PublicationModel, error) {
	var pub models.PublicationModel
	err := s.db.Preload("Category").Preload("Tag").Preload("Author").Where(query, arg).First(&pub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("publication")
		}
		return nil, err
	}
	if !authz.CanView(ident, pub.AuthorID, pub.Status) {
		return nil, apperr.NotFound("publication")
	}
	return &pub, nil
}

// List returns a paginated, visibility-filtered listing. Public
// listings order by published_at, admin listings by created_at; id
// breaks timestamp ties so page boundaries stay stable between calls.
func (s *Service) List(ident authz.Identity, q pagination.Query, lq ListQuery) ([]models.PublicationModel, response.Pagination, error) {
	tx := s.db.Model(&models.PublicationModel{}).Preload("Category").Preload("Tag")

	if lq.Type != nil {
		if !lq.Type.Valid() {
			return nil, response.Pagination{}, apperr.Validation("unknown publication type", map[string]string{"type": string(*lq.Type)})
		}
		tx = tx.Where("type = ?", *lq.Type)
	}
	if lq.Category != nil {
		tx = tx.Joins("JOIN categories ON categories.id = publications.category_id").
			Where("categories.slug = ?", *lq.Category)
	}
	if lq.Tag != nil {
		tx = tx.Joins("JOIN tags ON tags.id = publications.tag_id").
			Where("tags.slug = ?", *lq.Tag)
	}

	switch {
	case ident.IsAdmin():
		if lq.Status != nil {
			tx = tx.Where("publications.status = ?", *lq.Status)
		}
		tx = tx.Order("publications.created_at DESC, publications.id DESC")
	case lq.Status != nil && *lq.Status != models.StatusPublished:
		// members may browse their own non-published work
		if !ident.IsMember() {
			return nil, response.Pagination{}, apperr.Authorization("sign in to list unpublished records")
		}
		tx = tx.Where("publications.status = ? AND publications.author_id = ?", *lq.Status, ident.ProfileID).
			Order("publications.created_at DESC, publications.id DESC")
	default:
		tx = tx.Where("publications.status = ?", models.StatusPublished).
			Order("publications.published_at DESC, publications.id DESC")
	}

	var pubs []models.PublicationModel
	pag, err := pagination.Paginate(tx, q, &pubs)
	return pubs, pag, err
}

// Update patches content fields, re-rendering the stored HTML.
// Owner-while-draft or admin only; the slug stays stable so published
// addresses never break.
func (s *Service) Update(ident authz.Identity, id string, dto *UpdatePublicationDTO) (*models.PublicationModel, error) {
	pub, err := s.GetByID(ident, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanEditContent(ident, pub.AuthorID, pub.Status); err != nil {
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
	if dto.Type != nil {
		if !dto.Type.Valid() {
			return nil, apperr.Validation("unknown publication type", map[string]string{"type": string(*dto.Type)})
		}
		updates["type"] = *dto.Type
	}
	if dto.ThumbnailURL != nil {
		updates["thumbnail_url"] = *dto.ThumbnailURL
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if dto.TagID != nil {
		updates["tag_id"] = *dto.TagID
	}
	if len(updates) == 0 {
		return pub, nil
	}

	if err := s.db.Model(pub).Updates(updates).Error; err != nil {
		return nil, err
	}
	return pub, nil
}

// UpdateStatus performs a lifecycle transition as a single atomic
// compare-and-swap on the current status. When two transitions race,
// exactly one wins; the loser observes zero affected rows and gets a
// Conflict.
func (s *Service) UpdateStatus(ident authz.Identity, id string, to models.ContentStatus, reason string) (*models.PublicationModel, error) {
	pub, err := s.GetByID(ident, id)
	if err != nil {
		return nil, err
	}
	from := pub.Status

	if err := authz.Transition(ident, pub.AuthorID, from, to); err != nil {
		return nil, err
	}
	if to == models.StatusPendingReview {
		if err := authz.ValidateSubmission(pub.Title, pub.Content); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{"status": to}
	switch to {
	case models.StatusPublished:
		updates["published_at"] = time.Now()
	case models.StatusRejected:
		updates["rejection_reason"] = reason
	case models.StatusDraft:
		// revision after rejection keeps the latest reason only
	}

	res := s.db.Model(&models.PublicationModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("publication status changed concurrently")
	}

	return s.GetByID(ident, id)
}

// RecentPublished returns the newest published publications across all
// types, for the featured and popular rails.
func (s *Service) RecentPublished(limit int) ([]models.PublicationModel, error) {
	var pubs []models.PublicationModel
	err := s.db.Preload("Category").
		Where("status = ?", models.StatusPublished).
		Order("published_at DESC, id DESC").
		Limit(limit).
		Find(&pubs).Error
	return pubs, err
}

// RecentByType returns the newest published publications of one type.
func (s *Service) RecentByType(t models.PublicationType, limit int) ([]models.PublicationModel, error) {
	var pubs []models.PublicationModel
	err := s.db.Preload("Category").
		Where("status = ? AND type = ?", models.StatusPublished, t).
		Order("published_at DESC, id DESC").
		Limit(limit).
		Find(&pubs).Error
	return pubs, err
}

// RecentByCategory returns the newest published publications in a category.
func (s *Service) RecentByCategory(categorySlug string, limit int) ([]models.PublicationModel, error) {
	var pubs []models.PublicationModel
	err := s.db.Preload("Category").
		Joins("JOIN categories ON categories.id = publications.category_id").
		Where("publications.status = ? AND categories.slug = ?", models.StatusPublished, categorySlug).
		Order("publications.published_at DESC, publications.id DESC").
		Limit(limit).
		Find(&pubs).Error
	return pubs, err
}

// Related returns published publications of the same type, excluding
// the record itself, most recent first.
func (s *Service) Related(ident authz.Identity, id string, limit int) ([]models.PublicationModel, error) {
	pub, err := s.GetByID(ident, id)
	if err != nil {
		return nil, err
	}
	var related []models.PublicationModel
	err = s.db.Where("status = ? AND type = ? AND id <> ?", models.StatusPublished, pub.Type, pub.ID).
		Order("published_at DESC, id DESC").
		Limit(limit).
		Find(&related).Error
	return related, err
}
