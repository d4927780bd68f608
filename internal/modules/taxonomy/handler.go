package taxonomy

import (
	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/pkg/response"
)

// Handler serves /categories and /tags.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.GET("", h.listCategories)
	cadmin := categories.Group("", middleware.RequireAdmin())
	cadmin.POST("", h.createCategory)
	cadmin.PATCH("/:id", h.updateCategory)
	cadmin.DELETE("/:id", h.deleteCategory)

	tags := rg.Group("/tags")
	tags.GET("", h.listTags)
	tadmin := tags.Group("", middleware.RequireAdmin())
	tadmin.POST("", h.createTag)
	tadmin.PATCH("/:id", h.updateTag)
	tadmin.DELETE("/:id", h.deleteTag)
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.svc.ListCategories()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.svc.ListTags()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) createCategory(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.CreateCategory(&dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.UpdateCategory(c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) createTag(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.svc.CreateTag(&dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

func (h *Handler) updateTag(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.svc.UpdateTag(c.Param("id"), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

func (h *Handler) deleteTag(c *gin.Context) {
	if err := h.svc.DeleteTag(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
