package event

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler handles event HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")

	events.GET("", h.list)
	events.GET("/upcoming", h.upcoming)
	events.GET("/:identifier", h.get)

	member := events.Group("", middleware.RequireMember())
	member.POST("", h.create)
	member.PATCH("/:identifier", h.update)
	member.PATCH("/:identifier/status", h.updateStatus)
}

// eventView decorates the model with the effective temporal phase.
type eventView struct {
	*models.EventModel
	EffectivePhase models.EventPhase `json:"effective_phase"`
}

func toView(ev *models.EventModel) eventView {
	return eventView{EventModel: ev, EffectivePhase: ev.EffectivePhase(time.Now())}
}

func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	events, pag, err := h.svc.List(middleware.CurrentIdentity(c), pagination.FromContext(c), lq)
	if err != nil {
		response.Error(c, err)
		return
	}
	views := make([]eventView, len(events))
	for i := range events {
		views[i] = toView(&events[i])
	}
	response.Paged(c, views, pag)
}

func (h *Handler) upcoming(c *gin.Context) {
	limit, err := pagination.Limit(c.DefaultQuery("limit", "6"))
	if err != nil {
		response.Error(c, err)
		return
	}
	events, err := h.svc.Upcoming(limit, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	views := make([]eventView, len(events))
	for i := range events {
		views[i] = toView(&events[i])
	}
	response.OK(c, views)
}

func (h *Handler) get(c *gin.Context) {
	ev, err := h.svc.GetByIdentifier(middleware.CurrentIdentity(c), c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toView(ev))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ev, err := h.svc.Create(middleware.CurrentIdentity(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toView(ev))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateEventDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ev, err := h.svc.Update(middleware.CurrentIdentity(c), c.Param("identifier"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toView(ev))
}

func (h *Handler) updateStatus(c *gin.Context) {
	var dto struct {
		Status models.ContentStatus `json:"status" binding:"required"`
		Reason string               `json:"reason"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ev, err := h.svc.UpdateStatus(middleware.CurrentIdentity(c), c.Param("identifier"), dto.Status, dto.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toView(ev))
}
