package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skykintech/skyblog-core/internal/middleware"
	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/modules/analytics"
	"github.com/skykintech/skyblog-core/internal/modules/auth"
	"github.com/skykintech/skyblog-core/internal/modules/comment"
	"github.com/skykintech/skyblog-core/internal/modules/engagement"
	"github.com/skykintech/skyblog-core/internal/modules/notify"
	"github.com/skykintech/skyblog-core/internal/modules/post"
	"github.com/skykintech/skyblog-core/internal/modules/settings"
	"github.com/skykintech/skyblog-core/internal/modules/upload"
	"github.com/skykintech/skyblog-core/internal/modules/user"
	pkgredis "github.com/skykintech/skyblog-core/internal/pkg/redis"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "skyblog-core",
		"version": "1.0.0",
	}

	if rc != nil {
		r.Use(middleware.RateLimit(rc.Raw()))
	}

	// Uploaded images are served directly.
	r.Static("/uploads", a.cfg.UploadDir)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	reval := revalidate.New(rc, a.logger)
	notifySvc := notify.NewService(db, a.logger)
	a.notify = notifySvc

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)

	post.NewHandler(post.NewService(db, reval)).RegisterRoutes(api, authMW)
	engagement.NewHandler(engagement.NewService(db, notifySvc, reval)).RegisterRoutes(api)
	comment.NewHandler(comment.NewService(db, notifySvc, reval)).RegisterRoutes(api, authMW)
	notify.NewHandler(notifySvc).RegisterRoutes(api, authMW)
	analytics.NewHandler(analytics.NewService(db)).RegisterRoutes(api, authMW)
	settings.NewHandler(settings.NewService(db, reval)).RegisterRoutes(api, authMW)
	upload.NewHandler(a.cfg.UploadDir).RegisterRoutes(api, authMW)

	// Background job inspection for the admin dashboard.
	cron := api.Group("/cron", authMW,
		middleware.RequireRole(string(models.RoleAdmin), string(models.RoleSuperAdmin)))
	cron.GET("", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	cron.POST("/:name/run", func(c *gin.Context) {
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.NoContent(c)
	})
}
