package comment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/modules/notify"
	"github.com/skykintech/skyblog-core/internal/pkg/pagination"
	"github.com/skykintech/skyblog-core/internal/pkg/response"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
	"gorm.io/gorm"
)

// Service holds comments in the moderation gate: created pending, visible
// to the public only once approved, deletable from either state.
type Service struct {
	db     *gorm.DB
	notify *notify.Service
	reval  revalidate.Invalidator
}

func NewService(db *gorm.DB, notifySvc *notify.Service, reval revalidate.Invalidator) *Service {
	return &Service{db: db, notify: notifySvc, reval: reval}
}

// Create stores a new comment in the pending state, always. The post
// author is notified for every comment, including their own; that
// asymmetry with likes matches the original behavior.
func (s *Service) Create(postID string, dto *CreateCommentDTO, userID string) (*models.CommentModel, error) {
	if userID == "" &&
		(strings.TrimSpace(dto.AuthorName) == "" || strings.TrimSpace(dto.AuthorEmail) == "") {
		return nil, ErrGuestIdentityRequired
	}

	var post models.PostModel
	if err := s.db.Select("id, title, slug, author_id").
		First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	cm := models.CommentModel{
		PostID:   postID,
		Content:  dto.Content,
		Approved: false,
	}
	if userID != "" {
		cm.UserID = &userID
	} else {
		cm.AuthorName = strings.TrimSpace(dto.AuthorName)
		cm.AuthorEmail = strings.TrimSpace(dto.AuthorEmail)
	}
	if err := s.db.Create(&cm).Error; err != nil {
		return nil, err
	}

	s.notify.Emit(models.NotificationComment, post.AuthorID,
		fmt.Sprintf("New comment on %q by %s", post.Title, s.commenterDisplay(&cm)),
		post.ID)

	s.reval.Revalidate("/blog/" + post.Slug)
	return &cm, nil
}

// ListApproved returns the public view of a post's comments: approved
// rows only, newest first.
func (s *Service) ListApproved(postID string) ([]models.CommentModel, error) {
	var comments []models.CommentModel
	err := s.db.Preload("User").
		Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// ListAll returns every comment regardless of state, for the admin list.
func (s *Service) ListAll(q pagination.Query) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Preload("Post").Preload("User").
		Order("created_at DESC")
	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

// ListPending returns comments awaiting moderation, newest first.
func (s *Service) ListPending(q pagination.Query) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Preload("Post").Preload("User").
		Where("approved = ?", false).
		Order("created_at DESC")
	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

// Approve moves a pending comment to the approved state. There is no
// transition back.
func (s *Service) Approve(id string) (*models.CommentModel, error) {
	cm, err := s.getWithPost(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(cm).Update("approved", true).Error; err != nil {
		return nil, err
	}
	if cm.Post != nil {
		s.reval.Revalidate("/blog/" + cm.Post.Slug)
	}
	return cm, nil
}

// Delete removes a comment in either state. Notifications already sent
// for it are left alone.
func (s *Service) Delete(id string) error {
	cm, err := s.getWithPost(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.CommentModel{}, "id = ?", id).Error; err != nil {
		return err
	}
	if cm.Post != nil {
		s.reval.Revalidate("/blog/" + cm.Post.Slug)
	}
	return nil
}

func (s *Service) getWithPost(id string) (*models.CommentModel, error) {
	var cm models.CommentModel
	if err := s.db.Preload("Post").First(&cm, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cm, nil
}

func (s *Service) commenterDisplay(cm *models.CommentModel) string {
	if cm.UserID != nil && cm.User == nil {
		var user models.UserModel
		if err := s.db.Select("name, mail").
			First(&user, "id = ?", *cm.UserID).Error; err == nil {
			cm.User = &user
		}
	}
	return cm.AuthorDisplay()
}
