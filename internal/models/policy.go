package models

// PolicyCategory scopes policies and case studies instead of a type field.
type PolicyCategory string

const (
	PolicyEconomic      PolicyCategory = "economic"
	PolicySocial        PolicyCategory = "social"
	PolicyForeign       PolicyCategory = "foreign"
	PolicyEnvironmental PolicyCategory = "environmental"
	PolicyGovernance    PolicyCategory = "governance"
)

func (c PolicyCategory) Valid() bool {
	switch c {
	case PolicyEconomic, PolicySocial, PolicyForeign, PolicyEnvironmental, PolicyGovernance:
		return true
	}
	return false
}

// PolicyModel shares the publication lifecycle, scoped by category.
type PolicyModel struct {
	ContentBase
	Abstract     string         `json:"abstract"      gorm:"type:text"`
	Category     PolicyCategory `json:"category"      gorm:"index;not null"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Author       *ProfileModel  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (PolicyModel) TableName() string { return "policies" }

// CaseStudyModel shares the publication lifecycle, scoped by category.
type CaseStudyModel struct {
	ContentBase
	Abstract     string         `json:"abstract"      gorm:"type:text"`
	Category     PolicyCategory `json:"category"      gorm:"index;not null"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Author       *ProfileModel  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (CaseStudyModel) TableName() string { return "case_studies" }
