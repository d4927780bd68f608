// Package profile exposes the signed-in member's profile and the
// admin roster. Profiles are created lazily on first authenticated
// request; this module only reads and patches them.
package profile

import (
	"errors"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
	"gorm.io/gorm"
)

// UpdateSelfDTO patches the caller's own profile. Nil means unchanged.
type UpdateSelfDTO struct {
	Name      *string `json:"name"`
	Position  *string `json:"position"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// AdminUpdateDTO lets admins manage roster flags on any profile.
type AdminUpdateDTO struct {
	Position     *string `json:"position"`
	IsTeamMember *bool   `json:"is_team_member"`
}

// Service handles profile reads and mutations.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns a profile by its external subject id.
func (s *Service) Get(id string) (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("profile")
		}
		return nil, err
	}
	return &p, nil
}

// UpdateSelf patches the caller's own profile fields.
func (s *Service) UpdateSelf(id string, dto *UpdateSelfDTO) (*models.ProfileModel, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
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
	return p, s.db.Model(p).Updates(updates).Error
}

// List returns all profiles for the admin roster, newest login first.
func (s *Service) List(q pagination.Query) ([]models.ProfileModel, response.Pagination, error) {
	tx := s.db.Model(&models.ProfileModel{}).Order("last_login_time DESC, id DESC")
	var profiles []models.ProfileModel
	pag, err := pagination.Paginate(tx, q, &profiles)
	return profiles, pag, err
}

// AdminUpdate patches roster flags on any profile.
func (s *Service) AdminUpdate(id string, dto *AdminUpdateDTO) (*models.ProfileModel, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Position != nil {
		updates["position"] = *dto.Position
	}
	if dto.IsTeamMember != nil {
		updates["is_team_member"] = *dto.IsTeamMember
	}
	return p, s.db.Model(p).Updates(updates).Error
}
