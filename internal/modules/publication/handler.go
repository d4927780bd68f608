package publication

import (
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/pkg/apperr"
	"github.com/meridian-institute/core/internal/pkg/pagination"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler handles publication HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts publication routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pubs := rg.Group("/publications")

	pubs.GET("", h.list)
	pubs.GET("/:identifier", h.get)
	pubs.GET("/:identifier/related", h.related)

	member := pubs.Group("", middleware.RequireMember())
	member.POST("", h.create)
	member.PUT("/:identifier", h.update)
	member.PATCH("/:identifier", h.update)
	member.PATCH("/:identifier/status", h.updateStatus)
}

// list GET /publications
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pubs, pag, err := h.svc.List(middleware.CurrentIdentity(c), q, lq)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, pubs, pag)
}

// get GET /publications/:identifier — id first, slug fallback
func (h *Handler) get(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)
	identifier := c.Param("identifier")

	pub, err := h.svc.GetByID(ident, identifier)
	if apperr.IsKind(err, apperr.KindNotFound) {
		pub, err = h.svc.GetBySlug(ident, identifier)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pub)
}

// related GET /publications/:identifier/related?limit=
func (h *Handler) related(c *gin.Context) {
	limit, err := pagination.Limit(c.DefaultQuery("limit", "6"))
	if err != nil {
		response.Error(c, err)
		return
	}
	pubs, err := h.svc.Related(middleware.CurrentIdentity(c), c.Param("identifier"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pubs)
}

// create POST /publications  [member]
func (h *Handler) create(c *gin.Context) {
	var dto CreatePublicationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pub, err := h.svc.Create(middleware.CurrentIdentity(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pub)
}

// update PUT/PATCH /publications/:identifier  [member]
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePublicationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pub, err := h.svc.Update(middleware.CurrentIdentity(c), c.Param("identifier"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pub)
}

// updateStatus PATCH /publications/:identifier/status  [member]
func (h *Handler) updateStatus(c *gin.Context) {
	var dto UpdateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pub, err := h.svc.UpdateStatus(middleware.CurrentIdentity(c), c.Param("identifier"), dto.Status, dto.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pub)
}
