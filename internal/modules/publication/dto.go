package publication

import "github.com/meridian-institute/core/internal/models"

// CreatePublicationDTO is the submission payload. Status is honored
// for admins only (direct authoring into draft or published).
type CreatePublicationDTO struct {
	Title        string                 `json:"title"    binding:"required"`
	Abstract     string                 `json:"abstract"`
	Content      string                 `json:"content"`
	Type         models.PublicationType `json:"type"     binding:"required"`
	ThumbnailURL string                 `json:"thumbnail_url"`
	CategoryID   *string                `json:"category_id"`
	TagID        *string                `json:"tag_id"`
	Status       models.ContentStatus   `json:"status"`
}

// UpdatePublicationDTO patches content fields. Nil means unchanged.
type UpdatePublicationDTO struct {
	Title        *string                 `json:"title"`
	Abstract     *string                 `json:"abstract"`
	Content      *string                 `json:"content"`
	Type         *models.PublicationType `json:"type"`
	ThumbnailURL *string                 `json:"thumbnail_url"`
	CategoryID   *string                 `json:"category_id"`
	TagID        *string                 `json:"tag_id"`
}

// UpdateStatusDTO requests a lifecycle transition.
type UpdateStatusDTO struct {
	Status models.ContentStatus `json:"status" binding:"required"`
	Reason string               `json:"reason"`
}

// ListQuery narrows a publication listing.
type ListQuery struct {
	Type     *models.PublicationType `form:"type"`
	Category *string                 `form:"category"`
	Tag      *string                 `form:"tag"`
	Status   *models.ContentStatus   `form:"status"`
}
