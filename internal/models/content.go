package models

import "time"

// NewsPost represents an article shown on the public news feed once published.
type NewsPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"size:128;uniqueIndex" json:"slug"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	CoverURL    string     `gorm:"size:512" json:"cover_url"`
	Published   bool       `gorm:"index" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GalleryItem captures media published in the public gallery.
type GalleryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Caption   string    `gorm:"type:text" json:"caption"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	MimeType  string    `gorm:"size:128" json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Panelist is a board member displayed on the public site, ordered by rank.
type Panelist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      string    `gorm:"size:128;not null" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	PhotoURL  string    `gorm:"size:512" json:"photo_url"`
	Rank      int       `gorm:"index;not null;default:0" json:"rank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
