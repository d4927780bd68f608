package models

import "time"

// ProfileModel is one row per person who has ever authenticated.
// The primary key is the external identity provider's subject, so no
// uuid hook runs here. IsTeamMember is the sole admin marker.
type ProfileModel struct {
	ID            string     `json:"id"              gorm:"type:varchar(191);primaryKey"`
	Name          string     `json:"name"`
	Email         string     `json:"email"           gorm:"index"`
	Position      string     `json:"position"`
	Bio           string     `json:"bio"             gorm:"type:text"`
	AvatarURL     string     `json:"avatar_url"`
	IsTeamMember  bool       `json:"is_team_member"  gorm:"default:false;index"`
	LastLoginTime *time.Time `json:"last_login_time"`
	CreatedAt     time.Time  `json:"created"`
	UpdatedAt     time.Time  `json:"modified"`
}

func (ProfileModel) TableName() string { return "profiles" }
