package models

// NotificationType classifies what engagement event produced a notification.
type NotificationType string

const (
	NotificationComment NotificationType = "COMMENT"
	NotificationLike    NotificationType = "LIKE"
	NotificationView    NotificationType = "VIEW"
)

// NotificationModel is an in-app notification for a post's author.
// Rows are only ever mutated to flip Read to true.
type NotificationModel struct {
	Base
	UserID  string           `json:"user_id" gorm:"index;not null"`
	Type    NotificationType `json:"type"    gorm:"not null;index"`
	Message string           `json:"message" gorm:"type:text;not null"`
	PostID  string           `json:"post_id" gorm:"index"`
	Read    bool             `json:"read"    gorm:"default:false;index"`
}

func (NotificationModel) TableName() string { return "notifications" }
