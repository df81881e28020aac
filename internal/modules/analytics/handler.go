package analytics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skykintech/skyblog-core/internal/middleware"
	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/analytics", authMW,
		middleware.RequireRole(string(models.RoleAdmin), string(models.RoleSuperAdmin)),
		h.report)
}

func (h *Handler) report(c *gin.Context) {
	report, err := h.svc.Compute(time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}
