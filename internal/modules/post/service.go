package post

import (
	"errors"

	"gorm.io/gorm"

	"github.com/skykintech/skyblog-core/internal/models"
	"github.com/skykintech/skyblog-core/internal/modules/identity"
	"github.com/skykintech/skyblog-core/internal/pkg/markdown"
	"github.com/skykintech/skyblog-core/internal/pkg/revalidate"
)

// Counts are the engagement numbers attached to post reads. Only
// approved comments count.
type Counts struct {
	Comments int64 `json:"comments"`
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
}

// ListItem is one post in a listing, with its engagement counts.
type ListItem struct {
	models.PostModel
	Count Counts `json:"count"`
}

// Detail is the public detail view of a post: rendered HTML plus the
// like state of the requesting actor.
type Detail struct {
	models.PostModel
	HTML  string `json:"html"`
	Liked bool   `json:"liked"`
	Count Counts `json:"count"`
}

type Service struct {
	db    *gorm.DB
	reval revalidate.Invalidator
}

func NewService(db *gorm.DB, reval revalidate.Invalidator) *Service {
	return &Service{db: db, reval: reval}
}

func (s *Service) Create(dto *PostDTO, authorID string) (*models.PostModel, error) {
	p := models.PostModel{
		Title:           dto.Title,
		Slug:            Slugify(dto.Title),
		Content:         dto.Content,
		Excerpt:         dto.Excerpt,
		ImageURL:        dto.ImageURL,
		IsPublished:     dto.IsPublished,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
		Keywords:        dto.Keywords,
		CTAText:         dto.CTAText,
		CTALink:         dto.CTALink,
		AuthorID:        authorID,
	}
	if err := s.db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.reval.Revalidate("/")
	return &p, nil
}

func (s *Service) Update(id string, dto *PostDTO) (*models.PostModel, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.Title = dto.Title
	p.Slug = Slugify(dto.Title)
	p.Content = dto.Content
	p.Excerpt = dto.Excerpt
	p.ImageURL = dto.ImageURL
	p.IsPublished = dto.IsPublished
	p.MetaTitle = dto.MetaTitle
	p.MetaDescription = dto.MetaDescription
	p.Keywords = dto.Keywords
	p.CTAText = dto.CTAText
	p.CTALink = dto.CTALink

	if err := s.db.Save(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.reval.Revalidate("/", "/blog/"+p.Slug)
	return p, nil
}

// Delete removes the post along with its likes, views and comments.
// Notifications referencing the post are kept; the feed stays intact.
func (s *Service) Delete(id string) error {
	p, err := s.GetByID(id)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostViewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
	if err != nil {
		return err
	}
	s.reval.Revalidate("/", "/blog/"+p.Slug)
	return nil
}

// TogglePublish flips the published flag.
func (s *Service) TogglePublish(id string) (*models.PostModel, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	p.IsPublished = !p.IsPublished
	if err := s.db.Model(p).Update("is_published", p.IsPublished).Error; err != nil {
		return nil, err
	}
	s.reval.Revalidate("/", "/blog/"+p.Slug)
	return p, nil
}

// List returns posts newest first with their engagement counts.
func (s *Service) List(q ListQuery) ([]ListItem, error) {
	tx := s.db.Model(&models.PostModel{}).Preload("Author").Order("created_at DESC")
	if q.Published != nil {
		tx = tx.Where("is_published = ?", *q.Published)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ? OR excerpt LIKE ?", pattern, pattern, pattern)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var posts []models.PostModel
	if err := tx.Find(&posts).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, len(posts))
	ids := make([]string, len(posts))
	for i, p := range posts {
		items[i] = ListItem{PostModel: p}
		ids[i] = p.ID
	}
	if len(ids) == 0 {
		return items, nil
	}

	counts, err := s.countsFor(ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Count = counts[items[i].ID]
	}
	return items, nil
}

// GetByID returns the post regardless of publish state.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var p models.PostModel
	if err := s.db.Preload("Author").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns the public detail view of a published post, including
// whether the requesting actor has liked it.
func (s *Service) GetBySlug(slug string, actor identity.Actor) (*Detail, error) {
	var p models.PostModel
	err := s.db.Preload("Author").
		First(&p, "slug = ? AND is_published = ?", slug, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	counts, err := s.countsFor([]string{p.ID})
	if err != nil {
		return nil, err
	}

	var liked int64
	err = s.db.Model(&models.LikeModel{}).
		Where("post_id = ? AND actor_key = ?", p.ID, actor.Key()).
		Count(&liked).Error
	if err != nil {
		return nil, err
	}

	return &Detail{
		PostModel: p,
		HTML:      markdown.Render(p.Content),
		Liked:     liked > 0,
		Count:     counts[p.ID],
	}, nil
}

type countRow struct {
	PostID string
	N      int64
}

func (s *Service) countsFor(ids []string) (map[string]Counts, error) {
	counts := make(map[string]Counts, len(ids))

	fill := func(model interface{}, extra string, set func(c *Counts, n int64)) error {
		tx := s.db.Model(model).
			Select("post_id, count(*) as n").
			Where("post_id IN ?", ids)
		if extra != "" {
			tx = tx.Where(extra)
		}
		var rows []countRow
		if err := tx.Group("post_id").Scan(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			c := counts[r.PostID]
			set(&c, r.N)
			counts[r.PostID] = c
		}
		return nil
	}

	if err := fill(&models.CommentModel{}, "approved = true", func(c *Counts, n int64) { c.Comments = n }); err != nil {
		return nil, err
	}
	if err := fill(&models.PostViewModel{}, "", func(c *Counts, n int64) { c.Views = n }); err != nil {
		return nil, err
	}
	if err := fill(&models.LikeModel{}, "", func(c *Counts, n int64) { c.Likes = n }); err != nil {
		return nil, err
	}
	return counts, nil
}
