package models

import "time"

// LikeModel records a single like from one actor on one post.
// ActorKey is the deduplication key: the user id for signed-in actors,
// "ip:<addr>" for anonymous ones. The unique index makes a concurrent
// double toggle surface as a constraint violation instead of a second
// row. Unliking deletes the row outright; there is no soft delete here.
type LikeModel struct {
	ID        uint      `json:"-"         gorm:"primaryKey;autoIncrement"`
	PostID    string    `json:"post_id"   gorm:"index;not null;uniqueIndex:idx_like_post_actor,priority:1"`
	UserID    *string   `json:"user_id"   gorm:"index"`
	Address   string    `json:"address"`
	ActorKey  string    `json:"-"         gorm:"not null;uniqueIndex:idx_like_post_actor,priority:2"`
	CreatedAt time.Time `json:"created"`
}

func (LikeModel) TableName() string { return "likes" }

// PostViewModel is an append-only view record. Views are deliberately not
// deduplicated; every page load counts.
type PostViewModel struct {
	ID        uint      `json:"-"       gorm:"primaryKey;autoIncrement"`
	PostID    string    `json:"post_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created" gorm:"index"`
}

func (PostViewModel) TableName() string { return "post_views" }
