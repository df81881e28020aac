package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skykintech/skyblog-core/internal/models"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{}, &models.PostModel{},
		&models.LikeModel{}, &models.PostViewModel{}, &models.CommentModel{},
	))
	return NewService(db), db
}

func seedPost(t *testing.T, db *gorm.DB, title, slug string) *models.PostModel {
	t.Helper()
	author := models.UserModel{Username: "author-" + slug, Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	post := models.PostModel{Title: title, Slug: slug, IsPublished: true, AuthorID: author.ID}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func seedView(t *testing.T, db *gorm.DB, postID string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.PostViewModel{PostID: postID, CreatedAt: at}).Error)
}

func TestGrowth(t *testing.T) {
	assert.Equal(t, 100, growth(7, 0), "an empty previous window always reads +100%")
	assert.Equal(t, 100, growth(0, 0))
	assert.Equal(t, 0, growth(10, 10))
	assert.Equal(t, 50, growth(15, 10))
	assert.Equal(t, -50, growth(5, 10))
	assert.Equal(t, 33, growth(4, 3))
	assert.Equal(t, -100, growth(0, 10))
}

func TestComputeWindowsAndGrowth(t *testing.T) {
	svc, db := setupService(t)
	post := seedPost(t, db, "Launch Week", "launch-week")
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// 7 views inside the last 30 days, none before.
	for i := 0; i < 7; i++ {
		seedView(t, db, post.ID, now.Add(-time.Duration(i+1)*24*time.Hour))
	}
	// One view just outside both windows.
	seedView(t, db, post.ID, now.Add(-61*24*time.Hour))

	report, err := svc.Compute(now)
	require.NoError(t, err)
	assert.EqualValues(t, 8, report.TotalViews)
	assert.EqualValues(t, 7, report.ViewsLast30Days)
	assert.EqualValues(t, 0, report.ViewsPrev30Days)
	assert.Equal(t, 100, report.Growth)
}

func TestComputePrevWindowBoundaries(t *testing.T) {
	svc, db := setupService(t)
	post := seedPost(t, db, "Boundaries", "boundaries")
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedView(t, db, post.ID, now.Add(-10*24*time.Hour)) // last-30 window
	seedView(t, db, post.ID, now.Add(-40*24*time.Hour)) // prev-30 window
	seedView(t, db, post.ID, now.Add(-45*24*time.Hour)) // prev-30 window

	report, err := svc.Compute(now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.ViewsLast30Days)
	assert.EqualValues(t, 2, report.ViewsPrev30Days)
	assert.Equal(t, -50, report.Growth)
}

func TestBucketPlacement(t *testing.T) {
	svc, db := setupService(t)
	post := seedPost(t, db, "Buckets", "buckets")
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedView(t, db, post.ID, now.Add(-1*time.Hour))                    // today → slot 29
	seedView(t, db, post.ID, now.Add(-15*24*time.Hour))                // 15 days ago → slot 14
	seedView(t, db, post.ID, now.Add(-29*24*time.Hour).Add(-time.Hour)) // 29 days ago → slot 0
	seedView(t, db, post.ID, now.Add(-31*24*time.Hour))                // dropped

	report, err := svc.Compute(now)
	require.NoError(t, err)
	require.Len(t, report.ViewsByDay, TrendDays)
	assert.EqualValues(t, 1, report.ViewsByDay[29])
	assert.EqualValues(t, 1, report.ViewsByDay[14])
	assert.EqualValues(t, 1, report.ViewsByDay[0])

	var total int64
	for _, n := range report.ViewsByDay {
		total += n
	}
	assert.EqualValues(t, 3, total, "out-of-window views never land in a bucket")
}

func TestBucketDropsFutureTimestamps(t *testing.T) {
	svc, db := setupService(t)
	post := seedPost(t, db, "Clock Skew", "clock-skew")
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedView(t, db, post.ID, now.Add(time.Hour)) // future → dropped
	seedView(t, db, post.ID, now.Add(-time.Hour))

	report, err := svc.Compute(now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.ViewsByDay[29])

	var total int64
	for _, n := range report.ViewsByDay {
		total += n
	}
	assert.EqualValues(t, 1, total)
}

func TestTotalEngagementCountsOnlyApprovedComments(t *testing.T) {
	svc, db := setupService(t)
	post := seedPost(t, db, "Engagement", "engagement")

	require.NoError(t, db.Create(&models.LikeModel{PostID: post.ID, ActorKey: "ip:1.1.1.1", Address: "1.1.1.1"}).Error)
	require.NoError(t, db.Create(&models.LikeModel{PostID: post.ID, ActorKey: "ip:2.2.2.2", Address: "2.2.2.2"}).Error)
	require.NoError(t, db.Create(&models.CommentModel{
		PostID: post.ID, Content: "approved", AuthorName: "Dana", Approved: true,
	}).Error)
	require.NoError(t, db.Create(&models.CommentModel{
		PostID: post.ID, Content: "pending", AuthorName: "Eli",
	}).Error)

	report, err := svc.Compute(time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 3, report.TotalEngagement)
}

func TestPostsRankedByViews(t *testing.T) {
	svc, db := setupService(t)
	quiet := seedPost(t, db, "Quiet", "quiet")
	popular := seedPost(t, db, "Popular", "popular")
	now := time.Now()

	seedView(t, db, quiet.ID, now.Add(-time.Hour))
	for i := 0; i < 3; i++ {
		seedView(t, db, popular.ID, now.Add(-time.Duration(i+1)*time.Hour))
	}

	report, err := svc.Compute(now)
	require.NoError(t, err)
	require.Len(t, report.Posts, 2)
	assert.Equal(t, popular.ID, report.Posts[0].ID)
	assert.EqualValues(t, 3, report.Posts[0].Views)
	assert.Equal(t, quiet.ID, report.Posts[1].ID)
	assert.EqualValues(t, 1, report.Posts[1].Views)
}
