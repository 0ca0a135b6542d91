package item

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stashbox/core/internal/middleware"
	"github.com/stashbox/core/internal/modules/processing/markdown"
	"github.com/stashbox/core/internal/pkg/pagination"
	"github.com/stashbox/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	items := rg.Group("/items", authMW)

	items.GET("", h.list)
	items.GET("/categories", h.categories)
	items.GET("/:id", h.getByID)
	items.GET("/:id/rendered", h.getRendered)
	items.POST("", h.create)
	items.PATCH("/:id", h.update)
	items.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	filter := ListFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("q"),
	}

	items, pag, err := h.svc.List(middleware.CurrentUserID(c), q, filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) getByID(c *gin.Context) {
	item, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

// getRendered returns the item with its markdown content rendered to HTML.
func (h *Handler) getRendered(c *gin.Context) {
	item, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{
		"item": item,
		"html": markdown.Render(item.Content),
	})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *Handler) categories(c *gin.Context) {
	categories, err := h.svc.Categories(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}
