package engagement

import (
	"errors"
	"fmt"

	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/modules/identity"
	"github.com/skykintech/skyblog-core/internal/modules/notify"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
	"gorm.io/gorm"
)

// ErrPostNotFound is returned when the referenced post does not exist.
var ErrPostNotFound = errors.New("post not found")

// LikeStatus is the result of a like read or toggle.
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// Service is the engagement ledger: it owns Like and PostView rows.
// At most one Like exists per (post, actor); views are never deduplicated.
type Service struct {
	db     *gorm.DB
	notify *notify.Service
	reval  revalidate.Invalidator
}

func NewService(db *gorm.DB, notifySvc *notify.Service, reval revalidate.Invalidator) *Service {
	return &Service{db: db, notify: notifySvc, reval: reval}
}

// ToggleLike flips the like state of the actor on the post. Toggling on
// emits a LIKE notification to the post author unless the actor is the
// author. A storage-level duplicate (concurrent double submit) is treated
// as already-liked, not an error.
func (s *Service) ToggleLike(postID string, actor identity.Actor) (LikeStatus, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return LikeStatus{}, err
	}

	var existing models.LikeModel
	err = s.db.Where("post_id = ? AND actor_key = ?", postID, actor.Key()).
		First(&existing).Error

	switch {
	case err == nil:
		// Unlike.
		if err := s.db.Delete(&existing).Error; err != nil {
			return LikeStatus{}, err
		}
		count, err := s.likeCount(postID)
		if err != nil {
			return LikeStatus{}, err
		}
		s.revalidatePost(post)
		return LikeStatus{Liked: false, Count: count}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.LikeModel{
			PostID:   postID,
			Address:  actor.Address,
			ActorKey: actor.Key(),
		}
		if actor.IsUser() {
			uid := actor.UserID
			like.UserID = &uid
		}
		if err := s.db.Create(&like).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return LikeStatus{}, err
			}
			// Lost a race against an identical toggle; the like exists.
		} else if actor.UserID != post.AuthorID {
			s.notify.Emit(models.NotificationLike, post.AuthorID,
				fmt.Sprintf("%s liked your post %q", s.actorDisplay(actor), post.Title),
				post.ID)
		}
		count, err := s.likeCount(postID)
		if err != nil {
			return LikeStatus{}, err
		}
		s.revalidatePost(post)
		return LikeStatus{Liked: true, Count: count}, nil

	default:
		return LikeStatus{}, err
	}
}

// Status reports whether the actor currently likes the post and the total
// like count. Pure read, no side effects.
func (s *Service) Status(postID string, actor identity.Actor) (LikeStatus, error) {
	if _, err := s.getPost(postID); err != nil {
		return LikeStatus{}, err
	}

	var liked int64
	if err := s.db.Model(&models.LikeModel{}).
		Where("post_id = ? AND actor_key = ?", postID, actor.Key()).
		Count(&liked).Error; err != nil {
		return LikeStatus{}, err
	}
	count, err := s.likeCount(postID)
	if err != nil {
		return LikeStatus{}, err
	}
	return LikeStatus{Liked: liked > 0, Count: count}, nil
}

// RecordView appends a view row unconditionally, then emits a VIEW
// notification to the author when the running total hits a multiple of
// ten. Notifying every view would drown the feed; every tenth keeps the
// signal. The check runs after insert, so the first view never fires.
func (s *Service) RecordView(postID string) (*models.PostViewModel, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}

	view := models.PostViewModel{PostID: postID}
	if err := s.db.Create(&view).Error; err != nil {
		return nil, err
	}

	count, err := s.ViewCount(postID)
	if err != nil {
		return nil, err
	}
	if count%10 == 0 {
		s.notify.Emit(models.NotificationView, post.AuthorID,
			fmt.Sprintf("Signal Strength: %q has reached %d views.", post.Title, count),
			post.ID)
	}
	return &view, nil
}

// ViewCount returns the total number of views for a post.
func (s *Service) ViewCount(postID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.PostViewModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *Service) likeCount(postID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.LikeModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *Service) getPost(postID string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.Select("id, title, slug, author_id").
		First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) actorDisplay(actor identity.Actor) string {
	if actor.IsUser() {
		var user models.UserModel
		if err := s.db.Select("name, mail").
			First(&user, "id = ?", actor.UserID).Error; err == nil {
			if display := user.DisplayName(); display != "" {
				return display
			}
		}
		return "A reader"
	}
	return actor.Address
}

func (s *Service) revalidatePost(post *models.PostModel) {
	s.reval.Revalidate("/", "/blog/"+post.Slug)
}
