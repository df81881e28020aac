package post

import "errors"

var (
	// ErrNotFound is returned when the post does not exist (or, for
	// public reads, is not published).
	ErrNotFound = errors.New("post not found")
	// ErrSlugTaken is returned when another post already owns the slug
	// generated from the title.
	ErrSlugTaken = errors.New("slug already in use")
)

// PostDTO carries the editable fields of a post. The slug is never
// accepted from the client; it is always derived from the title.
type PostDTO struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	Excerpt     string `json:"excerpt"`
	ImageURL    string `json:"image_url"`
	IsPublished bool   `json:"is_published"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	CTAText         string `json:"cta_text"`
	CTALink         string `json:"cta_link"`
}

// ListQuery filters the post listing.
type ListQuery struct {
	Published *bool
	Search    string
	Limit     int
}
