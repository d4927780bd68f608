// Package taxonomy manages categories and tags used to organise
// publications. Both are admin-curated; the public endpoints list
// them with published-publication counts.
package taxonomy

import (
	"errors"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// CreateDTO creates a category or tag.
type CreateDTO struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

// UpdateDTO patches a category or tag. Nil means unchanged.
type UpdateDTO struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// CategoryView is a category with its published-publication count.
type CategoryView struct {
	models.CategoryModel
	PublicationCount int64 `json:"publication_count" gorm:"-"`
}

// TagView is a tag with its published-publication count.
type TagView struct {
	models.TagModel
	PublicationCount int64 `json:"publication_count" gorm:"-"`
}

// Service handles taxonomy reads and admin mutations.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) categorySlugExists(sl string) (bool, error) {
	var count int64
	err := s.db.Model(&models.CategoryModel{}).Where("slug = ?", sl).Count(&count).Error
	return count > 0, err
}

func (s *Service) tagSlugExists(sl string) (bool, error) {
	var count int64
	err := s.db.Model(&models.TagModel{}).Where("slug = ?", sl).Count(&count).Error
	return count > 0, err
}

// ListCategories returns every category with its published count.
func (s *Service) ListCategories() ([]CategoryView, error) {
	var cats []models.CategoryModel
	if err := s.db.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	views := make([]CategoryView, len(cats))
	for i, cat := range cats {
		var count int64
		if err := s.db.Model(&models.PublicationModel{}).
			Where("category_id = ? AND status = ?", cat.ID, models.StatusPublished).
			Count(&count).Error; err != nil {
			return nil, err
		}
		views[i] = CategoryView{CategoryModel: cat, PublicationCount: count}
	}
	return views, nil
}

// ListTags returns every tag with its published count.
func (s *Service) ListTags() ([]TagView, error) {
	var tags []models.TagModel
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	views := make([]TagView, len(tags))
	for i, tag := range tags {
		var count int64
		if err := s.db.Model(&models.PublicationModel{}).
			Where("tag_id = ? AND status = ?", tag.ID, models.StatusPublished).
			Count(&count).Error; err != nil {
			return nil, err
		}
		views[i] = TagView{TagModel: tag, PublicationCount: count}
	}
	return views, nil
}

// CreateCategory inserts a category, deriving a unique slug when none
// is supplied.
func (s *Service) CreateCategory(dto *CreateDTO) (*models.CategoryModel, error) {
	sl := dto.Slug
	if sl == "" {
		var err error
		sl, err = slug.Unique(dto.Name, s.categorySlugExists)
		if err != nil {
			return nil, err
		}
	} else if taken, err := s.categorySlugExists(sl); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("category slug already in use")
	}
	cat := models.CategoryModel{Name: dto.Name, Slug: sl}
	return &cat, s.db.Create(&cat).Error
}

// UpdateCategory patches a category.
func (s *Service) UpdateCategory(id string, dto *UpdateDTO) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil && *dto.Slug != cat.Slug {
		if taken, err := s.categorySlugExists(*dto.Slug); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("category slug already in use")
		}
		updates["slug"] = *dto.Slug
	}
	return &cat, s.db.Model(&cat).Updates(updates).Error
}

// DeleteCategory removes a category. Publications keep their rows;
// the foreign key is nulled out first so listings do not break.
func (s *Service) DeleteCategory(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PublicationModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.CategoryModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("category")
		}
		return nil
	})
}

// CreateTag inserts a tag.
func (s *Service) CreateTag(dto *CreateDTO) (*models.TagModel, error) {
	sl := dto.Slug
	if sl == "" {
		var err error
		sl, err = slug.Unique(dto.Name, s.tagSlugExists)
		if err != nil {
			return nil, err
		}
	} else if taken, err := s.tagSlugExists(sl); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("tag slug already in use")
	}
	tag := models.TagModel{Name: dto.Name, Slug: sl}
	return &tag, s.db.Create(&tag).Error
}

// UpdateTag patches a tag.
func (s *Service) UpdateTag(id string, dto *UpdateDTO) (*models.TagModel, error) {
	var tag models.TagModel
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag")
		}
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil && *dto.Slug != tag.Slug {
		if taken, err := s.tagSlugExists(*dto.Slug); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflict("tag slug already in use")
		}
		updates["slug"] = *dto.Slug
	}
	return &tag, s.db.Model(&tag).Updates(updates).Error
}

// DeleteTag removes a tag, nulling publication references first.
func (s *Service) DeleteTag(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PublicationModel{}).
			Where("tag_id = ?", id).
			Update("tag_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.TagModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("tag")
		}
		return nil
	})
}
