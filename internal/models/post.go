package models

// PostModel is a blog post.
type PostModel struct {
	Base
	Title       string `json:"title"        gorm:"not null"`
	Slug        string `json:"slug"         gorm:"uniqueIndex;not null"`
	Content     string `json:"content"      gorm:"type:longtext"`
	Excerpt     string `json:"excerpt"      gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	IsPublished bool   `json:"is_published" gorm:"default:false;index"`

	// SEO / CTA metadata edited on the admin post form.
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description" gorm:"type:text"`
	Keywords        string `json:"keywords"`
	CTAText         string `json:"cta_text"`
	CTALink         string `json:"cta_link"`

	AuthorID string     `json:"author_id" gorm:"index;not null"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (PostModel) TableName() string { return "posts" }
