package engagement

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/skykintech/skyblog-core/internal/modules/identity"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes wires the public engagement endpoints. All three resolve
// the actor from the (optional) session; none require authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/posts/:id")

	g.GET("/likes", h.likeStatus)
	g.POST("/likes/toggle", h.toggleLike)
	g.POST("/views", h.recordView)
}

func (h *Handler) toggleLike(c *gin.Context) {
	status, err := h.svc.ToggleLike(c.Param("id"), identity.Resolve(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, status)
}

func (h *Handler) likeStatus(c *gin.Context) {
	status, err := h.svc.Status(c.Param("id"), identity.Resolve(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, status)
}

func (h *Handler) recordView(c *gin.Context) {
	view, err := h.svc.RecordView(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, view)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, ErrPostNotFound) {
		response.NotFoundMsg(c, "post not found")
		return
	}
	response.InternalError(c, err)
}
