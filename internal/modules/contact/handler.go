package contact

import (
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler serves the public contact form and the admin triage queue.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	contact := rg.Group("/contact")
	contact.POST("", h.submit)

	admin := contact.Group("", middleware.RequireAdmin())
	admin.GET("", h.list)
	admin.PATCH("/:id/status", h.updateStatus)
}

// submit POST /contact
func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sub, err := h.svc.Submit(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

// list GET /contact  [admin]
func (h *Handler) list(c *gin.Context) {
	var status *models.SubmissionStatus
	if v := c.Query("status"); v != "" {
		st := models.SubmissionStatus(v)
		status = &st
	}
	subs, pag, err := h.svc.List(pagination.FromContext(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, subs, pag)
}

// updateStatus PATCH /contact/:id/status  [admin]
func (h *Handler) updateStatus(c *gin.Context) {
	var dto struct {
		Status models.SubmissionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sub, err := h.svc.UpdateStatus(c.Param("id"), dto.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sub)
}
