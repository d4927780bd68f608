package models

// PartnerCategory buckets directory partners.
type PartnerCategory string

const (
	PartnerAcademic   PartnerCategory = "academic"
	PartnerCorporate  PartnerCategory = "corporate"
	PartnerGovernment PartnerCategory = "government"
	PartnerNonprofit  PartnerCategory = "nonprofit"
	PartnerMedia      PartnerCategory = "media"
)

func (c PartnerCategory) Valid() bool {
	switch c {
	case PartnerAcademic, PartnerCorporate, PartnerGovernment, PartnerNonprofit, PartnerMedia:
		return true
	}
	return false
}

// TeamCategory buckets team directory entries.
type TeamCategory string

const (
	TeamLeadership TeamCategory = "leadership"
	TeamResearch   TeamCategory = "research"
	TeamOperations TeamCategory = "operations"
	TeamFellows    TeamCategory = "fellows"
	TeamAdvisors   TeamCategory = "advisors"
)

func (c TeamCategory) Valid() bool {
	switch c {
	case TeamLeadership, TeamResearch, TeamOperations, TeamFellows, TeamAdvisors:
		return true
	}
	return false
}

// PartnerModel is an admin-managed directory entry. Members and the
// public only see rows flagged ShowOnWebsite, ordered by DisplayOrder.
type PartnerModel struct {
	Base
	Name          string          `json:"name"            gorm:"not null"`
	Category      PartnerCategory `json:"category"        gorm:"index;not null"`
	Description   string          `json:"description"     gorm:"type:text"`
	LogoURL       string          `json:"logo_url"`
	Website       string          `json:"website"`
	DisplayOrder  int             `json:"display_order"   gorm:"default:0;index"`
	ShowOnWebsite bool            `json:"show_on_website" gorm:"default:false;index"`
}

func (PartnerModel) TableName() string { return "partners" }

// TeamMemberModel is the public staff directory, distinct from profiles.
type TeamMemberModel struct {
	Base
	Name          string       `json:"name"            gorm:"not null"`
	Category      TeamCategory `json:"category"        gorm:"index;not null"`
	Position      string       `json:"position"`
	Bio           string       `json:"bio"             gorm:"type:text"`
	AvatarURL     string       `json:"avatar_url"`
	ProfileID     *string      `json:"profile_id,omitempty" gorm:"index"`
	DisplayOrder  int          `json:"display_order"   gorm:"default:0;index"`
	ShowOnWebsite bool         `json:"show_on_website" gorm:"default:false;index"`
}

func (TeamMemberModel) TableName() string { return "team_members" }
