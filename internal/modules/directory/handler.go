package directory

import (
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/models"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler serves /partners and /team.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	partners := rg.Group("/partners")
	partners.GET("", h.listPartners)
	padmin := partners.Group("", middleware.RequireAdmin())
	padmin.POST("", h.createPartner)
	padmin.PATCH("/:id", h.updatePartner)
	padmin.DELETE("/:id", h.deletePartner)

	team := rg.Group("/team")
	team.GET("", h.listTeam)
	tadmin := team.Group("", middleware.RequireAdmin())
	tadmin.POST("", h.createTeamMember)
	tadmin.PATCH("/:id", h.updateTeamMember)
	tadmin.DELETE("/:id", h.deleteTeamMember)
}

func (h *Handler) listPartners(c *gin.Context) {
	var category *models.PartnerCategory
	if v := c.Query("category"); v != "" {
		pc := models.PartnerCategory(v)
		category = &pc
	}
	partners, err := h.svc.ListPartners(middleware.CurrentIdentity(c).IsAdmin(), category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, partners)
}

func (h *Handler) listTeam(c *gin.Context) {
	var category *models.TeamCategory
	if v := c.Query("category"); v != "" {
		tc := models.TeamCategory(v)
		category = &tc
	}
	team, err := h.svc.ListTeam(middleware.CurrentIdentity(c).IsAdmin(), category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, team)
}

func (h *Handler) createPartner(c *gin.Context) {
	var dto CreatePartnerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.CreatePartner(&dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) updatePartner(c *gin.Context) {
	var dto UpdatePartnerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.UpdatePartner(c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) deletePartner(c *gin.Context) {
	if err := h.svc.DeletePartner(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) createTeamMember(c *gin.Context) {
	var dto CreateTeamMemberDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.CreateTeamMember(&dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) updateTeamMember(c *gin.Context) {
	var dto UpdateTeamMemberDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.UpdateTeamMember(c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) deleteTeamMember(c *gin.Context) {
	if err := h.svc.DeleteTeamMember(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
