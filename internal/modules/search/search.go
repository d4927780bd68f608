// Package search serves the public site search. Matching is
// storage-native LIKE over title, abstract, and content of published
// records; there is no external index to operate.
package search

import (
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
	"gorm.io/gorm"
)

const maxQueryLength = 100

// Kind names a searchable content kind.
type Kind string

const (
	KindPublication Kind = "publication"
	KindPolicy      Kind = "policy"
	KindCaseStudy   Kind = "case_study"
	KindEvent       Kind = "event"
)

var allKinds = []Kind{KindPublication, KindPolicy, KindCaseStudy, KindEvent}

func (k Kind) Valid() bool {
	switch k {
	case KindPublication, KindPolicy, KindCaseStudy, KindEvent:
		return true
	}
	return false
}

// Query is a validated search request.
type Query struct {
	Q     string
	Kind  Kind // empty means all kinds
	Page  int
	Limit int
}

// Result is one search hit.
type Result struct {
	Kind        Kind       `json:"kind"`
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Abstract    string     `json:"abstract,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
}

// Page is the search response shape.
type Page struct {
	Results      []Result `json:"results"`
	TotalResults int64    `json:"totalResults"`
	Page         int      `json:"page"`
	TotalPages   int      `json:"totalPages"`
}

// ParseQuery validates raw request parameters into a Query.
func ParseQuery(q, kind, page, limit string) (Query, error) {
	fields := map[string]string{}
	if n := utf8.RuneCountInString(q); n < 1 || n > maxQueryLength {
		fields["q"] = "must be between 1 and 100 characters"
	}
	k := Kind(kind)
	if kind != "" && !k.Valid() {
		fields["kind"] = "must be one of publication, policy, case_study, event"
	}
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		fields["page"] = "must be a positive integer"
	}
	l, err := strconv.Atoi(limit)
	if err != nil || l < 1 || l > pagination.MaxSize {
		fields["limit"] = "must be between 1 and 50"
	}
	if len(fields) > 0 {
		return Query{}, apperr.Validation("invalid search query", fields)
	}
	return Query{Q: q, Kind: k, Page: p, Limit: l}, nil
}

// Service runs the per-kind LIKE queries.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Search returns a page of hits across the requested kinds, newest
// publish date first. When several kinds are searched, each kind is
// queried up to the page boundary and the merged set re-sorted; with
// the 50-row page ceiling the working set stays small.
func (s *Service) Search(q Query) (*Page, error) {
	kinds := allKinds
	if q.Kind != "" {
		kinds = []Kind{q.Kind}
	}

	like := "%" + q.Q + "%"
	fetch := q.Page * q.Limit

	var total int64
	var merged []Result
	for _, kind := range kinds {
		hits, count, err := s.searchKind(kind, like, fetch)
		if err != nil {
			return nil, err
		}
		total += count
		merged = append(merged, hits...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i].PublishedAt, merged[j].PublishedAt
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})

	start := (q.Page - 1) * q.Limit
	if start > len(merged) {
		start = len(merged)
	}
	end := start + q.Limit
	if end > len(merged) {
		end = len(merged)
	}

	results := merged[start:end]
	if results == nil {
		results = []Result{}
	}
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &Page{
		Results:      results,
		TotalResults: total,
		Page:         q.Page,
		TotalPages:   totalPages,
	}, nil
}

// row is the shared projection each kind query selects into.
type row struct {
	ID          string
	Title       string
	Slug        string
	Abstract    string
	PublishedAt *time.Time
}

func (s *Service) searchKind(kind Kind, like string, fetch int) ([]Result, int64, error) {
	var tx *gorm.DB
	switch kind {
	case KindPublication:
		tx = s.db.Model(&models.PublicationModel{}).
			Where("title LIKE ? OR abstract LIKE ? OR content LIKE ?", like, like, like).
			Select("id, title, slug, abstract, published_at")
	case KindPolicy:
		tx = s.db.Model(&models.PolicyModel{}).
			Where("title LIKE ? OR abstract LIKE ? OR content LIKE ?", like, like, like).
			Select("id, title, slug, abstract, published_at")
	case KindCaseStudy:
		tx = s.db.Model(&models.CaseStudyModel{}).
			Where("title LIKE ? OR abstract LIKE ? OR content LIKE ?", like, like, like).
			Select("id, title, slug, abstract, published_at")
	case KindEvent:
		tx = s.db.Model(&models.EventModel{}).
			Where("title LIKE ? OR content LIKE ?", like, like).
			Select("id, title, slug, '' AS abstract, published_at")
	}
	tx = tx.Where("status = ?", models.StatusPublished)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []row
	if err := tx.Order("published_at DESC, id DESC").Limit(fetch).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	results := make([]Result, len(rows))
	for i, r := range rows {
		results[i] = Result{
			Kind:        kind,
			ID:          r.ID,
			Title:       r.Title,
			Slug:        r.Slug,
			Abstract:    r.Abstract,
			PublishedAt: r.PublishedAt,
		}
	}
	return results, count, nil
}

// Handler serves GET /search.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	q, err := ParseQuery(
		c.Query("q"),
		c.Query("kind"),
		c.DefaultQuery("page", "1"),
		c.DefaultQuery("limit", "10"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.svc.Search(q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}
