package policy

import (
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/modules/authz"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler serves /policies and /case-studies.
type Handler struct {
	policies *Service
	studies  *CaseStudyService
}

func NewHandler(policies *Service, studies *CaseStudyService) *Handler {
	return &Handler{policies: policies, studies: studies}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pol := rg.Group("/policies")
	pol.GET("", h.listPolicies)
	pol.GET("/:identifier", h.getPolicy)
	polAuth := pol.Group("", middleware.RequireMember())
	polAuth.POST("", h.createPolicy)
	polAuth.PATCH("/:identifier", h.updatePolicy)
	polAuth.PATCH("/:identifier/status", h.updatePolicyStatus)

	cs := rg.Group("/case-studies")
	cs.GET("", h.listStudies)
	cs.GET("/:identifier", h.getStudy)
	csAuth := cs.Group("", middleware.RequireMember())
	csAuth.POST("", h.createStudy)
	csAuth.PATCH("/:identifier", h.updateStudy)
	csAuth.PATCH("/:identifier/status", h.updateStudyStatus)
}

func bindListQuery(c *gin.Context) (pagination.Query, ListQuery, bool) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return pagination.Query{}, lq, false
	}
	return pagination.FromContext(c), lq, true
}

func (h *Handler) listPolicies(c *gin.Context) {
	q, lq, ok := bindListQuery(c)
	if !ok {
		return
	}
	pols, pag, err := h.policies.List(middleware.CurrentIdentity(c), q, lq)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, pols, pag)
}

func (h *Handler) getPolicy(c *gin.Context) {
	pol, err := h.policies.GetByIdentifier(middleware.CurrentIdentity(c), c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pol)
}

func (h *Handler) createPolicy(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	pol, err := h.policies.Create(middleware.CurrentIdentity(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pol)
}

func (h *Handler) updatePolicy(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	pol, err := h.policies.Update(middleware.CurrentIdentity(c), c.Param("identifier"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pol)
}

func (h *Handler) updatePolicyStatus(c *gin.Context) {
	ident, dto, ok := bindStatus(c)
	if !ok {
		return
	}
	pol, err := h.policies.UpdateStatus(ident, c.Param("identifier"), dto.Status, dto.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pol)
}

func (h *Handler) listStudies(c *gin.Context) {
	q, lq, ok := bindListQuery(c)
	if !ok {
		return
	}
	studies, pag, err := h.studies.List(middleware.CurrentIdentity(c), q, lq)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, studies, pag)
}

func (h *Handler) getStudy(c *gin.Context) {
	cs, err := h.studies.GetByIdentifier(middleware.CurrentIdentity(c), c.Param("identifier"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cs)
}

func (h *Handler) createStudy(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cs, err := h.studies.Create(middleware.CurrentIdentity(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cs)
}

func (h *Handler) updateStudy(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cs, err := h.studies.Update(middleware.CurrentIdentity(c), c.Param("identifier"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cs)
}

func (h *Handler) updateStudyStatus(c *gin.Context) {
	ident, dto, ok := bindStatus(c)
	if !ok {
		return
	}
	cs, err := h.studies.UpdateStatus(ident, c.Param("identifier"), dto.Status, dto.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cs)
}

func bindStatus(c *gin.Context) (authz.Identity, UpdateStatusDTO, bool) {
	var dto UpdateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return authz.Anonymous, dto, false
	}
	if !dto.Status.Valid() {
		response.BadRequest(c, "unknown status")
		return authz.Anonymous, dto, false
	}
	return middleware.CurrentIdentity(c), dto, true
}
