package models

// PublicationType distinguishes the publication kinds sharing one lifecycle.
type PublicationType string

const (
	PublicationResearchPaper PublicationType = "research_paper"
	PublicationPolicyBrief   PublicationType = "policy_brief"
	PublicationOpinion       PublicationType = "opinion"
	PublicationBlogPost      PublicationType = "blog_post"
)

func (t PublicationType) Valid() bool {
	switch t {
	case PublicationResearchPaper, PublicationPolicyBrief, PublicationOpinion, PublicationBlogPost:
		return true
	}
	return false
}

// PublicationModel is a research paper, policy brief, opinion, or blog post.
// Rejection is a status, never a hard delete.
type PublicationModel struct {
	ContentBase
	Abstract     string          `json:"abstract"      gorm:"type:text"`
	Type         PublicationType `json:"type"          gorm:"index;not null"`
	ThumbnailURL string          `json:"thumbnail_url"`
	CategoryID   *string         `json:"category_id"   gorm:"index"`
	Category     *CategoryModel  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	TagID        *string         `json:"tag_id"        gorm:"index"`
	Tag          *TagModel       `json:"tag,omitempty" gorm:"foreignKey:TagID"`
	Author       *ProfileModel   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (PublicationModel) TableName() string { return "publications" }
