// Package aggregate composes per-kind reads into the payloads the
// site's pages render from, so the frontend makes one request per
// page instead of five.
package aggregate

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/modules/event"
	"github.com/meridian-institute/core/internal/modules/publication"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service composes repository reads. It never widens visibility: every
// underlying query is restricted to published records.
type Service struct {
	db     *gorm.DB
	pubs   *publication.Service
	events *event.Service
}

func NewService(db *gorm.DB, pubs *publication.Service, events *event.Service) *Service {
	return &Service{db: db, pubs: pubs, events: events}
}

// Featured returns the most recent published publications across all
// types.
func (s *Service) Featured(limit int) ([]models.PublicationModel, error) {
	return s.pubs.RecentPublished(limit)
}

// Popular ranks by recency. The ordering intentionally matches
// Featured: publish date is the only signal tracked, and recency has
// proven a good enough proxy for the site's traffic shape.
func (s *Service) Popular(limit int) ([]models.PublicationModel, error) {
	return s.pubs.RecentPublished(limit)
}

// ByType returns recent published publications of one type.
func (s *Service) ByType(t models.PublicationType, limit int) ([]models.PublicationModel, error) {
	if !t.Valid() {
		return nil, apperr.Validation("unknown publication type", map[string]string{"type": string(t)})
	}
	return s.pubs.RecentByType(t, limit)
}

// ByCategory returns recent published publications in a category.
func (s *Service) ByCategory(categorySlug string, limit int) ([]models.PublicationModel, error) {
	return s.pubs.RecentByCategory(categorySlug, limit)
}

// Stats holds public site-wide counts of published material.
type Stats struct {
	Publications   int64 `json:"publications"`
	Policies       int64 `json:"policies"`
	CaseStudies    int64 `json:"case_studies"`
	Events         int64 `json:"events"`
	UpcomingEvents int64 `json:"upcoming_events"`
	Partners       int64 `json:"partners"`
	TeamMembers    int64 `json:"team_members"`
}

// SiteStats counts published records per kind.
func (s *Service) SiteStats(now time.Time) (*Stats, error) {
	var stats Stats
	published := func(model interface{}, dest *int64) error {
		return s.db.Model(model).Where("status = ?", models.StatusPublished).Count(dest).Error
	}
	if err := published(&models.PublicationModel{}, &stats.Publications); err != nil {
		return nil, err
	}
	if err := published(&models.PolicyModel{}, &stats.Policies); err != nil {
		return nil, err
	}
	if err := published(&models.CaseStudyModel{}, &stats.CaseStudies); err != nil {
		return nil, err
	}
	if err := published(&models.EventModel{}, &stats.Events); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.EventModel{}).
		Where("status = ? AND start_date > ?", models.StatusPublished, now).
		Count(&stats.UpcomingEvents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.PartnerModel{}).
		Where("show_on_website = ?", true).Count(&stats.Partners).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.TeamMemberModel{}).
		Where("show_on_website = ?", true).Count(&stats.TeamMembers).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Home is the landing-page payload.
type Home struct {
	Featured       []models.PublicationModel `json:"featured"`
	UpcomingEvents []models.EventModel       `json:"upcoming_events"`
	Stats          *Stats                    `json:"stats"`
}

// HomePage assembles the landing-page composition.
func (s *Service) HomePage(limit int, now time.Time) (*Home, error) {
	featured, err := s.pubs.RecentPublished(limit)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.events.Upcoming(limit, now)
	if err != nil {
		return nil, err
	}
	stats, err := s.SiteStats(now)
	if err != nil {
		return nil, err
	}
	return &Home{Featured: featured, UpcomingEvents: upcoming, Stats: stats}, nil
}

// Handler serves /aggregate.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/aggregate")
	g.GET("/home", h.home)
	g.GET("/featured", h.featured)
	g.GET("/popular", h.popular)
	g.GET("/by-type/:type", h.byType)
	g.GET("/by-category/:slug", h.byCategory)
	g.GET("/stats", h.stats)
}

func limitOf(c *gin.Context) (int, bool) {
	limit, err := pagination.Limit(c.DefaultQuery("limit", "6"))
	if err != nil {
		response.Error(c, err)
		return 0, false
	}
	return limit, true
}

func (h *Handler) home(c *gin.Context) {
	limit, ok := limitOf(c)
	if !ok {
		return
	}
	home, err := h.svc.HomePage(limit, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, home)
}

func (h *Handler) featured(c *gin.Context) {
	limit, ok := limitOf(c)
	if !ok {
		return
	}
	pubs, err := h.svc.Featured(limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pubs)
}

func (h *Handler) popular(c *gin.Context) {
	limit, ok := limitOf(c)
	if !ok {
		return
	}
	pubs, err := h.svc.Popular(limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pubs)
}

func (h *Handler) byType(c *gin.Context) {
	limit, ok := limitOf(c)
	if !ok {
		return
	}
	pubs, err := h.svc.ByType(models.PublicationType(c.Param("type")), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pubs)
}

func (h *Handler) byCategory(c *gin.Context) {
	limit, ok := limitOf(c)
	if !ok {
		return
	}
	pubs, err := h.svc.ByCategory(c.Param("slug"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pubs)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.SiteStats(time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
