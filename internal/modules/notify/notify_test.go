package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skykintech/skyblog-core/internal/models"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NotificationModel{}))
	return NewService(db, zap.NewNop()), db
}

func TestEmitAndList(t *testing.T) {
	svc, _ := setupService(t)

	svc.Emit(models.NotificationLike, "author-1", "someone liked your post", "post-1")
	svc.Emit(models.NotificationComment, "author-1", "someone commented", "post-1")
	svc.Emit(models.NotificationLike, "author-2", "not yours", "post-2")

	items, err := svc.ListForUser("author-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, n := range items {
		assert.Equal(t, "author-1", n.UserID)
		assert.False(t, n.Read)
	}
}

func TestListForUserCapsFeed(t *testing.T) {
	svc, db := setupService(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 60; i++ {
		require.NoError(t, db.Create(&models.NotificationModel{
			UserID:  "author-1",
			Type:    models.NotificationView,
			Message: fmt.Sprintf("milestone %d", i),
			Base:    models.Base{CreatedAt: base.Add(time.Duration(i) * time.Second)},
		}).Error)
	}

	items, err := svc.ListForUser("author-1")
	require.NoError(t, err)
	assert.Len(t, items, feedLimit)
	assert.Equal(t, "milestone 59", items[0].Message, "newest first")
}

func TestRecentDefaultsToFive(t *testing.T) {
	svc, _ := setupService(t)
	for i := 0; i < 8; i++ {
		svc.Emit(models.NotificationView, "author-1", fmt.Sprintf("n%d", i), "post-1")
	}

	items, err := svc.Recent("author-1", 0)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	items, err = svc.Recent("author-1", 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	svc, _ := setupService(t)
	svc.Emit(models.NotificationLike, "author-1", "one", "post-1")
	svc.Emit(models.NotificationLike, "author-1", "two", "post-1")

	count, err := svc.UnreadCount("author-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	items, err := svc.ListForUser("author-1")
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(items[0].ID, "author-1"))

	count, err = svc.UnreadCount("author-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkReadRequiresOwnership(t *testing.T) {
	svc, _ := setupService(t)
	svc.Emit(models.NotificationLike, "author-1", "one", "post-1")

	items, err := svc.ListForUser("author-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	err = svc.MarkRead(items[0].ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.MarkRead("no-such-id", "author-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc, _ := setupService(t)
	svc.Emit(models.NotificationLike, "author-1", "one", "post-1")
	svc.Emit(models.NotificationLike, "author-1", "two", "post-1")
	svc.Emit(models.NotificationLike, "author-2", "other", "post-2")

	updated, err := svc.MarkAllRead("author-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	count, err := svc.UnreadCount("author-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	count, err = svc.UnreadCount("author-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPruneReadOnlyDeletesOldReadRows(t *testing.T) {
	svc, db := setupService(t)
	old := time.Now().AddDate(0, 0, -120)

	require.NoError(t, db.Create(&models.NotificationModel{
		UserID: "author-1", Type: models.NotificationLike, Message: "old read",
		Read: true, Base: models.Base{CreatedAt: old},
	}).Error)
	require.NoError(t, db.Create(&models.NotificationModel{
		UserID: "author-1", Type: models.NotificationLike, Message: "old unread",
		Base: models.Base{CreatedAt: old},
	}).Error)
	require.NoError(t, db.Create(&models.NotificationModel{
		UserID: "author-1", Type: models.NotificationLike, Message: "fresh read",
		Read: true,
	}).Error)

	deleted, err := svc.PruneRead(90)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining int64
	require.NoError(t, db.Model(&models.NotificationModel{}).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining)
}
