package profile

import (
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler serves /profiles.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	profiles := rg.Group("/profiles")

	me := profiles.Group("/me", middleware.RequireMember())
	me.GET("", h.getMe)
	me.PATCH("", h.updateMe)

	admin := profiles.Group("", middleware.RequireAdmin())
	admin.GET("", h.list)
	admin.PATCH("/:id", h.adminUpdate)
}

// getMe GET /profiles/me
func (h *Handler) getMe(c *gin.Context) {
	p, err := h.svc.Get(middleware.CurrentIdentity(c).ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// updateMe PATCH /profiles/me
func (h *Handler) updateMe(c *gin.Context) {
	var dto UpdateSelfDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.UpdateSelf(middleware.CurrentIdentity(c).ProfileID, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// list GET /profiles  [admin]
func (h *Handler) list(c *gin.Context) {
	profiles, pag, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, profiles, pag)
}

// adminUpdate PATCH /profiles/:id  [admin]
func (h *Handler) adminUpdate(c *gin.Context) {
	var dto AdminUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.AdminUpdate(c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}
