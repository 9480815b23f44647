package models

import (
	"html/template"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is the single entity of the site. Deletes are hard deletes, so the
// model carries explicit columns instead of gorm.Model (no DeletedAt
// tombstone). CreatedAt is written once on insert; UpdatedAt on every save.
type Post struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"not null" json:"title" form:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string    `json:"excerpt" form:"excerpt"`
	Category    string    `gorm:"index;not null" json:"category" form:"category"`
	Content     string    `gorm:"type:text" json:"content" form:"content"`
	ContentHTML string    `gorm:"type:text" json:"-"`
	ImageURL    string    `json:"image_url"`
	Author      string    `json:"author" form:"author"`
	Status      string    `gorm:"index;not null;default:draft" json:"status" form:"status"`
}

// Published reports whether the post is visible to unauthenticated readers.
func (p *Post) Published() bool {
	return p.Status == StatusPublished
}

// RenderedPost is a view model for displaying a post with rendered HTML content.
type RenderedPost struct {
	ID        uint
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Slug      string
	Excerpt   string
	Category  string
	Body      template.HTML // Use template.HTML to prevent escaping
	ImageURL  string
	Author    string
	Status    string
}

// PostBackup is the snapshot wire format. The slug is recomputed on restore,
// so it is not part of the snapshot.
type PostBackup struct {
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
