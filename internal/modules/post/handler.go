package post

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skykintech/skyblog-core/internal/middleware"
	"github.com/skykintech/skyblog-core/internal/modules/identity"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/posts", h.list)
	rg.GET("/posts/slug/:slug", h.getBySlug)

	a := rg.Group("/posts", authMW)
	a.GET("/:id", h.getByID)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
	a.PATCH("/:id/publish", h.togglePublish)
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{Search: c.Query("search")}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if middleware.IsAuthenticated(c) {
		if raw, ok := c.GetQuery("published"); ok {
			published := raw == "true"
			q.Published = &published
		}
	} else {
		// Unauthenticated listings only ever see published posts.
		published := true
		q.Published = &published
	}

	items, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) getBySlug(c *gin.Context) {
	detail, err := h.svc.GetBySlug(c.Param("slug"), identity.Resolve(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *Handler) getByID(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(&dto, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFoundMsg(c, "post not found")
		case errors.Is(err, ErrSlugTaken):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) togglePublish(c *gin.Context) {
	p, err := h.svc.TogglePublish(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "post not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}
