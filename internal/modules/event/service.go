// Package event manages events and initiatives: lifecycle-governed
// records with a scheduling window and a temporal phase.
package event

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

// CreateEventDTO is the event submission payload.
type CreateEventDTO struct {
	Title        string               `json:"title"      binding:"required"`
	Content      string               `json:"content"`
	Kind         models.EventKind     `json:"kind"`
	StartDate    time.Time            `json:"start_date" binding:"required"`
	EndDate      *time.Time           `json:"end_date"`
	Location     string               `json:"location"`
	MeetingURL   string               `json:"meeting_url"`
	MeetingID    string               `json:"meeting_id"`
	ThumbnailURL string               `json:"thumbnail_url"`
	Status       models.ContentStatus `json:"status"`
}

// UpdateEventDTO patches event fields. Nil means unchanged.
type UpdateEventDTO struct {
	Title        *string           `json:"title"`
	Content      *string           `json:"content"`
	StartDate    *time.Time        `json:"start_date"`
	EndDate      *time.Time        `json:"end_date"`
	Location     *string           `json:"location"`
	MeetingURL   *string           `json:"meeting_url"`
	MeetingID    *string           `json:"meeting_id"`
	ThumbnailURL *string           `json:"thumbnail_url"`
	Phase        *models.EventPhase `json:"phase"` // admin override, e.g. canceled
}

// ListQuery narrows an event listing.
type ListQuery struct {
	Kind   *models.EventKind     `form:"kind"`
	Phase  *models.EventPhase    `form:"phase"`
	Status *models.ContentStatus `form:"status"`
}

// Service handles event business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) slugExists(candidate string) (bool, error) {
	var count int64
	err := s.db.Model(&models.EventModel{}).Where("slug = ?", candidate).Count(&count).Error
	return count > 0, err
}

// Create inserts a new event or initiative.
func (s *Service) Create(ident authz.Identity, dto *CreateEventDTO) (*models.EventModel, error) {
	kind := dto.Kind
	if kind == "" {
		kind = models.KindEvent
	}
	if !kind.Valid() {
		return nil, apperr.Validation("unknown event kind", map[string]string{"kind": string(dto.Kind)})
	}
	if dto.EndDate != nil && dto.EndDate.Before(dto.StartDate) {
		return nil, apperr.Validation("invalid scheduling window", map[string]string{"end_date": "must not precede start_date"})
	}
	status, err := authz.CreateStatus(ident, dto.Status)
	if err != nil {
		return nil, err
	}
	uniqueSlug, err := slug.Unique(dto.Title, s.slugExists)
	if err != nil {
		return nil, err
	}

	ev := models.EventModel{
		ContentBase: models.ContentBase{
			Title:       dto.Title,
			Slug:        uniqueSlug,
			Content:     dto.Content,
			ContentHTML: richtext.Render(dto.Content),
			Status:      status,
			AuthorID:    ident.ProfileID,
		},
		Kind:         kind,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		Location:     dto.Location,
		MeetingURL:   dto.MeetingURL,
		MeetingID:    dto.MeetingID,
		ThumbnailURL: dto.ThumbnailURL,
	}
	if status == models.StatusPublished {
		now := time.Now()
		ev.PublishedAt = &now
	}

	if err := s.db.Create(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

// GetByIdentifier fetches by id first, slug fallback.
func (s *Service) GetByIdentifier(ident authz.Identity, identifier string) (*models.EventModel, error) {
	var ev models.EventModel
	err := s.db.Preload("Author").Where("id = ? OR slug = ?", identifier, identifier).First(&ev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event")
		}
		return nil, err
	}
	if !authz.CanView(ident, ev.AuthorID, ev.Status) {
		return nil, apperr.NotFound("event")
	}
	return &ev, nil
}

// List returns a paginated listing. Public listings show published
// events ordered by start date, soonest first.
func (s *Service) List(ident authz.Identity, q pagination.Query, lq ListQuery) ([]models.EventModel, response.Pagination, error) {
	tx := s.db.Model(&models.EventModel{})

	if lq.Kind != nil {
		if !lq.Kind.Valid() {
			return nil, response.Pagination{}, apperr.Validation("unknown event kind", map[string]string{"kind": string(*lq.Kind)})
		}
		tx = tx.Where("kind = ?", *lq.Kind)
	}
	if lq.Phase != nil {
		if !lq.Phase.Valid() {
			return nil, response.Pagination{}, apperr.Validation("unknown event phase", map[string]string{"phase": string(*lq.Phase)})
		}
		tx = tx.Where("phase = ?", *lq.Phase)
	}

	switch {
	case ident.IsAdmin():
		if lq.Status != nil {
			tx = tx.Where("status = ?", *lq.Status)
		}
		tx = tx.Order("created_at DESC, id DESC")
	case lq.Status != nil && *lq.Status != models.StatusPublished:
		if !ident.IsMember() {
			return nil, response.Pagination{}, apperr.Authorization("sign in to list unpublished records")
		}
		tx = tx.Where("status = ? AND author_id = ?", *lq.Status, ident.ProfileID).Order("created_at DESC, id DESC")
	default:
		tx = tx.Where("status = ?", models.StatusPublished).Order("start_date ASC, id ASC")
	}

	var events []models.EventModel
	pag, err := pagination.Paginate(tx, q, &events)
	return events, pag, err
}

// Update patches event fields; phase overrides are admin-only.
func (s *Service) Update(ident authz.Identity, id string, dto *UpdateEventDTO) (*models.EventModel, error) {
	ev, err := s.GetByIdentifier(ident, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanEditContent(ident, ev.AuthorID, ev.Status); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
		updates["content_html"] = richtext.Render(*dto.Content)
	}
	if dto.StartDate != nil {
		updates["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		updates["end_date"] = *dto.EndDate
	}
	if dto.Location != nil {
		updates["location"] = *dto.Location
	}
	if dto.MeetingURL != nil {
		updates["meeting_url"] = *dto.MeetingURL
	}
	if dto.MeetingID != nil {
		updates["meeting_id"] = *dto.MeetingID
	}
	if dto.ThumbnailURL != nil {
		updates["thumbnail_url"] = *dto.ThumbnailURL
	}
	if dto.Phase != nil {
		if !ident.IsAdmin() {
			return nil, apperr.Authorization("only admins set the event phase")
		}
		if !dto.Phase.Valid() {
			return nil, apperr.Validation("unknown event phase", map[string]string{"phase": string(*dto.Phase)})
		}
		updates["phase"] = *dto.Phase
	}
	if len(updates) == 0 {
		return ev, nil
	}

	if err := s.db.Model(ev).Updates(updates).Error; err != nil {
		return nil, err
	}
	return ev, nil
}

// UpdateStatus runs the shared state machine with a compare-and-swap write.
func (s *Service) UpdateStatus(ident authz.Identity, id string, to models.ContentStatus, reason string) (*models.EventModel, error) {
	ev, err := s.GetByIdentifier(ident, id)
	if err != nil {
		return nil, err
	}
	from := ev.Status

	if err := authz.Transition(ident, ev.AuthorID, from, to); err != nil {
		return nil, err
	}
	if to == models.StatusPendingReview {
		if err := authz.ValidateSubmission(ev.Title, ev.Content); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{"status": to}
	switch to {
	case models.StatusPublished:
		updates["published_at"] = time.Now()
	case models.StatusRejected:
		updates["rejection_reason"] = reason
	}

	res := s.db.Model(&models.EventModel{}).
		Where("id = ? AND status = ?", ev.ID, from).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("event status changed concurrently")
	}

	return s.GetByIdentifier(ident, ev.ID)
}

// Upcoming returns the next published events, soonest first.
func (s *Service) Upcoming(limit int, now time.Time) ([]models.EventModel, error) {
	var events []models.EventModel
	err := s.db.Where("status = ? AND start_date > ? AND (phase IS NULL OR phase = '' OR phase = ?)",
		models.StatusPublished, now, models.PhaseUpcoming).
		Order("start_date ASC, id ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
