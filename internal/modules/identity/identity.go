// Package identity maps inbound session credentials to a caller
// identity. Authentication itself is delegated to the external
// identity provider; this service only verifies the session token it
// issued and resolves the local profile row.
package identity

import (
	"errors"
	"time"

	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/modules/authz"
	jwtpkg "github.com/meridian-institute/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

// Service resolves session tokens to identities and owns profile
// creation on first authentication.
type Service struct {
	db        *gorm.DB
	bootstrap map[string]struct{}
}

// NewService wires the resolver. bootstrapAdmins lists external
// subject ids whose profile gets the team-member flag seeded on first
// login; the per-request admin predicate reads the profile flag only.
func NewService(db *gorm.DB, bootstrapAdmins []string) *Service {
	set := make(map[string]struct{}, len(bootstrapAdmins))
	for _, id := range bootstrapAdmins {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return &Service{db: db, bootstrap: set}
}

// Resolve maps a raw session token to a caller identity. It fails
// closed: any parse or lookup error yields Anonymous, never an error
// the caller could distinguish.
func (s *Service) Resolve(rawToken string) authz.Identity {
	if rawToken == "" {
		return authz.Anonymous
	}
	claims, err := jwtpkg.Parse(rawToken)
	if err != nil {
		return authz.Anonymous
	}

	profile, err := s.ensureProfile(claims)
	if err != nil || profile == nil {
		return authz.Anonymous
	}

	role := authz.RoleMember
	if profile.IsTeamMember {
		role = authz.RoleAdmin
	}
	return authz.Identity{Role: role, ProfileID: profile.ID}
}

// GetProfile loads a profile row by external subject id.
func (s *Service) GetProfile(id string) (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ensureProfile loads the profile for a verified subject, creating it
// on first authentication.
func (s *Service) ensureProfile(claims *jwtpkg.Claims) (*models.ProfileModel, error) {
	profile, err := s.GetProfile(claims.Subject)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		now := time.Now()
		profile = &models.ProfileModel{
			ID:            claims.Subject,
			Name:          claims.Name,
			Email:         claims.Email,
			LastLoginTime: &now,
		}
		if _, seeded := s.bootstrap[claims.Subject]; seeded {
			profile.IsTeamMember = true
		}
		if err := s.db.Create(profile).Error; err != nil {
			// a concurrent first request may have created the row
			if existing, lookupErr := s.GetProfile(claims.Subject); lookupErr == nil && existing != nil {
				return existing, nil
			}
			return nil, err
		}
		return profile, nil
	}

	if profile.LastLoginTime == nil || time.Since(*profile.LastLoginTime) > time.Hour {
		now := time.Now()
		s.db.Model(profile).UpdateColumn("last_login_time", now)
		profile.LastLoginTime = &now
	}
	return profile, nil
}
