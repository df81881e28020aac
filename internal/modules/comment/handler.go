package comment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/skykintech/skyblog-core/internal/middleware"
	"github.com/skykintech/skyblog-core/internal/pkg/pagination"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/posts/:id/comments", h.listApproved)
	rg.POST("/posts/:id/comments", h.create)

	a := rg.Group("/comments", authMW)
	a.GET("", h.listAll)
	a.GET("/pending", h.listPending)
	a.PATCH("/:id/approve", h.approve)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.svc.Create(c.Param("id"), &dto, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrGuestIdentityRequired):
			response.Unauthorized(c)
		case errors.Is(err, ErrPostNotFound):
			response.NotFoundMsg(c, "post not found")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, cm)
}

func (h *Handler) listApproved(c *gin.Context) {
	comments, err := h.svc.ListApproved(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, comments)
}

func (h *Handler) listAll(c *gin.Context) {
	comments, pag, err := h.svc.ListAll(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, comments, pag)
}

func (h *Handler) listPending(c *gin.Context) {
	comments, pag, err := h.svc.ListPending(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, comments, pag)
}

func (h *Handler) approve(c *gin.Context) {
	cm, err := h.svc.Approve(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "comment not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, cm)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "comment not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
