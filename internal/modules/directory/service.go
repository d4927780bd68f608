// Package directory manages the partner and team listings. These are
// admin-curated records with no member-write path; the public sees
// only rows flagged for the website, in explicit display order.
package directory

import (
	"errors"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// CreatePartnerDTO is the admin payload for a new partner entry.
type CreatePartnerDTO struct {
	Name          string                 `json:"name"     binding:"required"`
	Category      models.PartnerCategory `json:"category" binding:"required"`
	Description   string                 `json:"description"`
	LogoURL       string                 `json:"logo_url"`
	Website       string                 `json:"website"`
	DisplayOrder  int                    `json:"display_order"`
	ShowOnWebsite bool                   `json:"show_on_website"`
}

// UpdatePartnerDTO patches a partner entry. Nil means unchanged.
type UpdatePartnerDTO struct {
	Name          *string                 `json:"name"`
	Category      *models.PartnerCategory `json:"category"`
	Description   *string                 `json:"description"`
	LogoURL       *string                 `json:"logo_url"`
	Website       *string                 `json:"website"`
	DisplayOrder  *int                    `json:"display_order"`
	ShowOnWebsite *bool                   `json:"show_on_website"`
}

// CreateTeamMemberDTO is the admin payload for a new team entry.
type CreateTeamMemberDTO struct {
	Name          string              `json:"name"     binding:"required"`
	Category      models.TeamCategory `json:"category" binding:"required"`
	Position      string              `json:"position"`
	Bio           string              `json:"bio"`
	AvatarURL     string              `json:"avatar_url"`
	ProfileID     *string             `json:"profile_id"`
	DisplayOrder  int                 `json:"display_order"`
	ShowOnWebsite bool                `json:"show_on_website"`
}

// UpdateTeamMemberDTO patches a team entry. Nil means unchanged.
type UpdateTeamMemberDTO struct {
	Name          *string              `json:"name"`
	Category      *models.TeamCategory `json:"category"`
	Position      *string              `json:"position"`
	Bio           *string              `json:"bio"`
	AvatarURL     *string              `json:"avatar_url"`
	ProfileID     *string              `json:"profile_id"`
	DisplayOrder  *int                 `json:"display_order"`
	ShowOnWebsite *bool                `json:"show_on_website"`
}

// Service handles directory reads and admin mutations.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListPartners returns partner entries. Non-admin callers see only
// website-visible rows; explicit display order always wins.
func (s *Service) ListPartners(isAdmin bool, category *models.PartnerCategory) ([]models.PartnerModel, error) {
	tx := s.db.Model(&models.PartnerModel{}).Order("display_order ASC, created_at ASC, id ASC")
	if !isAdmin {
		tx = tx.Where("show_on_website = ?", true)
	}
	if category != nil {
		if !category.Valid() {
			return nil, apperr.Validation("unknown partner category", map[string]string{"category": string(*category)})
		}
		tx = tx.Where("category = ?", *category)
	}
	var partners []models.PartnerModel
	return partners, tx.Find(&partners).Error
}

// ListTeam returns team entries under the same visibility rule.
func (s *Service) ListTeam(isAdmin bool, category *models.TeamCategory) ([]models.TeamMemberModel, error) {
	tx := s.db.Model(&models.TeamMemberModel{}).Order("display_order ASC, created_at ASC, id ASC")
	if !isAdmin {
		tx = tx.Where("show_on_website = ?", true)
	}
	if category != nil {
		if !category.Valid() {
			return nil, apperr.Validation("unknown team category", map[string]string{"category": string(*category)})
		}
		tx = tx.Where("category = ?", *category)
	}
	var team []models.TeamMemberModel
	return team, tx.Find(&team).Error
}

// CreatePartner inserts a partner entry (admin only, enforced at the route).
func (s *Service) CreatePartner(dto *CreatePartnerDTO) (*models.PartnerModel, error) {
	if !dto.Category.Valid() {
		return nil, apperr.Validation("unknown partner category", map[string]string{"category": string(dto.Category)})
	}
	p := models.PartnerModel{
		Name:          dto.Name,
		Category:      dto.Category,
		Description:   dto.Description,
		LogoURL:       dto.LogoURL,
		Website:       dto.Website,
		DisplayOrder:  dto.DisplayOrder,
		ShowOnWebsite: dto.ShowOnWebsite,
	}
	return &p, s.db.Create(&p).Error
}

// UpdatePartner patches a partner entry.
func (s *Service) UpdatePartner(id string, dto *UpdatePartnerDTO) (*models.PartnerModel, error) {
	var p models.PartnerModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("partner")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Category != nil {
		if !dto.Category.Valid() {
			return nil, apperr.Validation("unknown partner category", map[string]string{"category": string(*dto.Category)})
		}
		updates["category"] = *dto.Category
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.LogoURL != nil {
		updates["logo_url"] = *dto.LogoURL
	}
	if dto.Website != nil {
		updates["website"] = *dto.Website
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	if dto.ShowOnWebsite != nil {
		updates["show_on_website"] = *dto.ShowOnWebsite
	}
	return &p, s.db.Model(&p).Updates(updates).Error
}

// DeletePartner soft-deletes a partner entry.
func (s *Service) DeletePartner(id string) error {
	res := s.db.Delete(&models.PartnerModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("partner")
	}
	return nil
}

// CreateTeamMember inserts a team entry.
func (s *Service) CreateTeamMember(dto *CreateTeamMemberDTO) (*models.TeamMemberModel, error) {
	if !dto.Category.Valid() {
		return nil, apperr.Validation("unknown team category", map[string]string{"category": string(dto.Category)})
	}
	m := models.TeamMemberModel{
		Name:          dto.Name,
		Category:      dto.Category,
		Position:      dto.Position,
		Bio:           dto.Bio,
		AvatarURL:     dto.AvatarURL,
		ProfileID:     dto.ProfileID,
		DisplayOrder:  dto.DisplayOrder,
		ShowOnWebsite: dto.ShowOnWebsite,
	}
	return &m, s.db.Create(&m).Error
}

// UpdateTeamMember patches a team entry.
func (s *Service) UpdateTeamMember(id string, dto *UpdateTeamMemberDTO) (*models.TeamMemberModel, error) {
	var m models.TeamMemberModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("team member")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Category != nil {
		if !dto.Category.Valid() {
			return nil, apperr.Validation("unknown team category", map[string]string{"category": string(*dto.Category)})
		}
		updates["category"] = *dto.Category
	}
	if dto.Position != nil {
		updates["position"] = *dto.Position
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if dto.AvatarURL != nil {
		updates["avatar_url"] = *dto.AvatarURL
	}
	if dto.ProfileID != nil {
		updates["profile_id"] = *dto.ProfileID
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	if dto.ShowOnWebsite != nil {
		updates["show_on_website"] = *dto.ShowOnWebsite
	}
	return &m, s.db.Model(&m).Updates(updates).Error
}

// DeleteTeamMember soft-deletes a team entry.
func (s *Service) DeleteTeamMember(id string) error {
	res := s.db.Delete(&models.TeamMemberModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("team member")
	}
	return nil
}
