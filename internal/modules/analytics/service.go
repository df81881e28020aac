package analytics

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/skykintech/skyblog-core/internal/models"
)

// TrendDays is the window of the per-day view histogram.
const TrendDays = 30

// PostStat is one row of the per-post view ranking.
type PostStat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created"`
	Views     int64     `json:"views"`
}

// Report aggregates site-wide engagement numbers for the dashboard.
type Report struct {
	Posts           []PostStat `json:"posts"`
	TotalViews      int64      `json:"total_views"`
	ViewsLast30Days int64      `json:"views_last_30_days"`
	ViewsPrev30Days int64      `json:"views_prev_30_days"`
	TotalEngagement int64      `json:"total_engagement"`
	Growth          int        `json:"growth"`
	ViewsByDay      []int64    `json:"views_by_day"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Compute builds the full analytics report relative to now.
func (s *Service) Compute(now time.Time) (*Report, error) {
	thirtyDaysAgo := now.Add(-TrendDays * 24 * time.Hour)
	sixtyDaysAgo := now.Add(-2 * TrendDays * 24 * time.Hour)

	var posts []PostStat
	err := s.db.Model(&models.PostModel{}).
		Select("posts.id, posts.title, posts.created_at, count(post_views.id) as views").
		Joins("LEFT JOIN post_views ON post_views.post_id = posts.id").
		Group("posts.id, posts.title, posts.created_at").
		Order("views DESC").
		Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []PostStat{}
	}

	var totalViews int64
	if err := s.db.Model(&models.PostViewModel{}).Count(&totalViews).Error; err != nil {
		return nil, err
	}

	var last30 int64
	err = s.db.Model(&models.PostViewModel{}).
		Where("created_at >= ? AND created_at < ?", thirtyDaysAgo, now).
		Count(&last30).Error
	if err != nil {
		return nil, err
	}

	var prev30 int64
	err = s.db.Model(&models.PostViewModel{}).
		Where("created_at >= ? AND created_at < ?", sixtyDaysAgo, thirtyDaysAgo).
		Count(&prev30).Error
	if err != nil {
		return nil, err
	}

	var totalLikes int64
	if err := s.db.Model(&models.LikeModel{}).Count(&totalLikes).Error; err != nil {
		return nil, err
	}
	var approvedComments int64
	err = s.db.Model(&models.CommentModel{}).
		Where("approved = ?", true).
		Count(&approvedComments).Error
	if err != nil {
		return nil, err
	}

	buckets, err := s.bucketViews(now)
	if err != nil {
		return nil, err
	}

	return &Report{
		Posts:           posts,
		TotalViews:      totalViews,
		ViewsLast30Days: last30,
		ViewsPrev30Days: prev30,
		TotalEngagement: totalLikes + approvedComments,
		Growth:          growth(last30, prev30),
		ViewsByDay:      buckets,
	}, nil
}

// growth is the 30-day view delta as a rounded percentage. An empty
// previous window reads as exactly +100%.
func growth(last30, prev30 int64) int {
	if prev30 == 0 {
		return 100
	}
	return int(math.Floor(float64(last30-prev30)/float64(prev30)*100 + 0.5))
}

// bucketViews folds the last 30 days of views into a per-day histogram,
// oldest day first. Timestamps outside the window are dropped.
func (s *Service) bucketViews(now time.Time) ([]int64, error) {
	var timestamps []time.Time
	err := s.db.Model(&models.PostViewModel{}).
		Where("created_at >= ?", now.Add(-TrendDays*24*time.Hour)).
		Pluck("created_at", &timestamps).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]int64, TrendDays)
	for _, t := range timestamps {
		dayDiff := int(math.Floor(now.Sub(t).Hours() / 24))
		if dayDiff >= 0 && dayDiff < TrendDays {
			buckets[TrendDays-1-dayDiff]++
		}
	}
	return buckets, nil
}
