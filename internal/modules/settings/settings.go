package settings

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
)

const (
	defaultSiteName        = "SkyBlog"
	defaultSiteDescription = "Insights, stories, and updates from our team."
)

// UpdateDTO carries all writable settings fields. A PUT replaces the
// whole row.
type UpdateDTO struct {
	SiteName            string `json:"site_name"`
	SiteDescription     string `json:"site_description"`
	NotificationEmail   string `json:"notification_email"`
	EnableNotifications bool   `json:"enable_notifications"`
}

type Service struct {
	db    *gorm.DB
	reval revalidate.Invalidator
}

func NewService(db *gorm.DB, reval revalidate.Invalidator) *Service {
	return &Service{db: db, reval: reval}
}

// Get returns the settings singleton, creating it with defaults on first
// read.
func (s *Service) Get() (*models.SettingsModel, error) {
	var settings models.SettingsModel
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.SettingsModel{
		ID:                  models.SettingsID,
		SiteName:            defaultSiteName,
		SiteDescription:     defaultSiteDescription,
		EnableNotifications: true,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		// Lost a first-read race; the row exists now.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = s.db.First(&settings, "id = ?", models.SettingsID).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

// Update upserts the singleton row with the given values.
func (s *Service) Update(dto *UpdateDTO) (*models.SettingsModel, error) {
	settings := models.SettingsModel{
		ID:                  models.SettingsID,
		SiteName:            dto.SiteName,
		SiteDescription:     dto.SiteDescription,
		NotificationEmail:   dto.NotificationEmail,
		EnableNotifications: dto.EnableNotifications,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&settings).Error
	if err != nil {
		return nil, err
	}
	s.reval.Revalidate("/")
	return &settings, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/settings", h.get)
	rg.PUT("/settings", authMW, h.update)
}

func (h *Handler) get(c *gin.Context) {
	settings, err := h.svc.Get()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, settings)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	settings, err := h.svc.Update(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, settings)
}
