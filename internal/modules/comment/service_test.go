package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/modules/notify"
	"github.com/skykintech/skyblog-core/internal/pkg/pagination"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{}, &models.PostModel{},
		&models.CommentModel{}, &models.NotificationModel{},
	))
	return NewService(db, notify.NewService(db, zap.NewNop()), revalidate.Noop{}), db
}

func seedPost(t *testing.T, db *gorm.DB) (*models.UserModel, *models.PostModel) {
	t.Helper()
	author := models.UserModel{Username: "casey", Name: "Casey", Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	post := models.PostModel{
		Title:       "Launch Week",
		Slug:        "launch-week",
		IsPublished: true,
		AuthorID:    author.ID,
	}
	require.NoError(t, db.Create(&post).Error)
	return &author, &post
}

func TestCreateGuestComment(t *testing.T) {
	svc, db := setupService(t)
	author, post := seedPost(t, db)

	cm, err := svc.Create(post.ID, &CreateCommentDTO{
		Content:     "Great read",
		AuthorName:  "Dana",
		AuthorEmail: "dana@example.com",
	}, "")
	require.NoError(t, err)
	assert.False(t, cm.Approved, "comments always start pending")
	assert.Nil(t, cm.UserID)
	assert.Equal(t, "Dana", cm.AuthorName)

	var ns []models.NotificationModel
	require.NoError(t, db.Find(&ns).Error)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationComment, ns[0].Type)
	assert.Equal(t, author.ID, ns[0].UserID)
	assert.Equal(t, `New comment on "Launch Week" by Dana`, ns[0].Message)
}

func TestCreateGuestCommentRequiresIdentity(t *testing.T) {
	svc, db := setupService(t)
	_, post := seedPost(t, db)

	_, err := svc.Create(post.ID, &CreateCommentDTO{Content: "hi"}, "")
	assert.ErrorIs(t, err, ErrGuestIdentityRequired)

	_, err = svc.Create(post.ID, &CreateCommentDTO{Content: "hi", AuthorName: "Dana"}, "")
	assert.ErrorIs(t, err, ErrGuestIdentityRequired)

	var count int64
	require.NoError(t, db.Model(&models.CommentModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateCommentMissingPost(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Create("no-such-post", &CreateCommentDTO{
		Content: "hi", AuthorName: "Dana", AuthorEmail: "d@example.com",
	}, "")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAuthorOwnCommentStillNotifies(t *testing.T) {
	svc, db := setupService(t)
	author, post := seedPost(t, db)

	_, err := svc.Create(post.ID, &CreateCommentDTO{Content: "replying to myself"}, author.ID)
	require.NoError(t, err)

	var ns []models.NotificationModel
	require.NoError(t, db.Find(&ns).Error)
	require.Len(t, ns, 1, "comment notifications fire even for the author's own comment")
	assert.Equal(t, author.ID, ns[0].UserID)
	assert.Equal(t, `New comment on "Launch Week" by Casey`, ns[0].Message)
}

func TestCommentNotificationUsesAuthorDisplay(t *testing.T) {
	svc, db := setupService(t)
	_, post := seedPost(t, db)

	commenter := models.UserModel{Username: "river", Mail: "river@example.com", Password: "x"}
	require.NoError(t, db.Create(&commenter).Error)

	_, err := svc.Create(post.ID, &CreateCommentDTO{Content: "nice one"}, commenter.ID)
	require.NoError(t, err)

	var ns []models.NotificationModel
	require.NoError(t, db.Find(&ns).Error)
	require.Len(t, ns, 1)
	assert.Equal(t, `New comment on "Launch Week" by river@example.com`, ns[0].Message,
		"a signed-in commenter without a display name shows as their mail")
}

func TestListApprovedHidesPending(t *testing.T) {
	svc, db := setupService(t)
	_, post := seedPost(t, db)

	pending, err := svc.Create(post.ID, &CreateCommentDTO{
		Content: "first", AuthorName: "Dana", AuthorEmail: "d@example.com",
	}, "")
	require.NoError(t, err)

	visible, err := svc.ListApproved(post.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)

	_, err = svc.Approve(pending.ID)
	require.NoError(t, err)

	visible, err = svc.ListApproved(post.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.True(t, visible[0].Approved)
	assert.Equal(t, "first", visible[0].Content)
}

func TestListPendingOnlyShowsUnapproved(t *testing.T) {
	svc, db := setupService(t)
	_, post := seedPost(t, db)

	first, err := svc.Create(post.ID, &CreateCommentDTO{
		Content: "one", AuthorName: "Dana", AuthorEmail: "d@example.com",
	}, "")
	require.NoError(t, err)
	_, err = svc.Create(post.ID, &CreateCommentDTO{
		Content: "two", AuthorName: "Eli", AuthorEmail: "e@example.com",
	}, "")
	require.NoError(t, err)

	_, err = svc.Approve(first.ID)
	require.NoError(t, err)

	pending, _, err := svc.ListPending(pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "two", pending[0].Content)

	all, _, err := svc.ListAll(pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestApproveMissingComment(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Approve("no-such-comment")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWorksInEitherState(t *testing.T) {
	svc, db := setupService(t)
	_, post := seedPost(t, db)

	pending, err := svc.Create(post.ID, &CreateCommentDTO{
		Content: "one", AuthorName: "Dana", AuthorEmail: "d@example.com",
	}, "")
	require.NoError(t, err)
	approved, err := svc.Create(post.ID, &CreateCommentDTO{
		Content: "two", AuthorName: "Eli", AuthorEmail: "e@example.com",
	}, "")
	require.NoError(t, err)
	_, err = svc.Approve(approved.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(pending.ID))
	require.NoError(t, svc.Delete(approved.ID))

	var ns int64
	require.NoError(t, db.Model(&models.NotificationModel{}).Count(&ns).Error)
	assert.EqualValues(t, 2, ns, "deleting a comment never cascades to its notification")
}
