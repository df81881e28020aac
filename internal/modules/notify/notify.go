package notify

import (
	"errors"
	"time"

	"github.com/skykintech/skyblog-core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced notification does not exist
// or belongs to someone else.
var ErrNotFound = errors.New("notification not found")

// feedLimit caps the admin notification feed.
const feedLimit = 50

// Service owns the notification feed. Emission is strictly best-effort:
// a failed insert must never fail the like/view/comment that triggered it.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Emit writes a notification for the recipient. Errors are logged and
// swallowed; the triggering operation has already committed and must not
// be rolled back or failed because of this.
func (s *Service) Emit(typ models.NotificationType, recipientID, message, postID string) {
	n := models.NotificationModel{
		UserID:  recipientID,
		Type:    typ,
		Message: message,
		PostID:  postID,
	}
	if err := s.db.Create(&n).Error; err != nil {
		s.logger.Warn("notification emission failed",
			zap.String("type", string(typ)),
			zap.String("recipient", recipientID),
			zap.String("post", postID),
			zap.Error(err),
		)
	}
}

// ListForUser returns the newest notifications for a user, capped at 50.
func (s *Service) ListForUser(userID string) ([]models.NotificationModel, error) {
	var items []models.NotificationModel
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&items).Error
	return items, err
}

// Recent returns the newest notifications up to the given limit,
// for the dashboard header dropdown.
func (s *Service) Recent(userID string, limit int) ([]models.NotificationModel, error) {
	if limit <= 0 || limit > feedLimit {
		limit = 5
	}
	var items []models.NotificationModel
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// UnreadCount returns how many notifications the user has not read yet.
func (s *Service) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.NotificationModel{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips a single notification to read. Only the owner may do so.
func (s *Service) MarkRead(id, userID string) error {
	result := s.db.Model(&models.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification of the user to read.
func (s *Service) MarkAllRead(userID string) (int64, error) {
	result := s.db.Model(&models.NotificationModel{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// PruneRead deletes read notifications older than the cutoff. Used by the
// cleanup cron; never touches unread rows.
func (s *Service) PruneRead(cutoffDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -cutoffDays)
	result := s.db.Unscoped().
		Where("`read` = ? AND created_at < ?", true, cutoff).
		Delete(&models.NotificationModel{})
	return result.RowsAffected, result.Error
}
