package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SettingsModel{}))
	return NewService(db, revalidate.Noop{}), db
}

func TestGetLazilyCreatesDefaults(t *testing.T) {
	svc, db := setupService(t)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, settings.ID)
	assert.Equal(t, "SkyBlog", settings.SiteName)
	assert.Equal(t, "Insights, stories, and updates from our team.", settings.SiteDescription)
	assert.True(t, settings.EnableNotifications)

	var count int64
	require.NoError(t, db.Model(&models.SettingsModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetIsIdempotent(t *testing.T) {
	svc, db := setupService(t)

	_, err := svc.Get()
	require.NoError(t, err)
	_, err = svc.Get()
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.SettingsModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the singleton row is never duplicated")
}

func TestUpdateUpsertsWithoutPriorRead(t *testing.T) {
	svc, db := setupService(t)

	updated, err := svc.Update(&UpdateDTO{
		SiteName:            "SkyKin",
		SiteDescription:     "Product stories.",
		NotificationEmail:   "alerts@skykin.dev",
		EnableNotifications: false,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, updated.ID)
	assert.Equal(t, "SkyKin", updated.SiteName)
	assert.False(t, updated.EnableNotifications)

	var count int64
	require.NoError(t, db.Model(&models.SettingsModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "SkyKin", settings.SiteName, "Get after Update never resets to defaults")
	assert.Equal(t, "alerts@skykin.dev", settings.NotificationEmail)
}

func TestUpdateOverwritesExistingRow(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Get()
	require.NoError(t, err)

	updated, err := svc.Update(&UpdateDTO{SiteName: "Renamed", EnableNotifications: true})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.SiteName)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Renamed", settings.SiteName)
	assert.Empty(t, settings.SiteDescription, "a PUT replaces every field")
}
