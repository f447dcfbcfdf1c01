package dto

import (
	"time"

	"github.com/campus-itc/club-api/internal/models"
)

// NewsResponse serializes a news post.
type NewsResponse struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	CoverURL    string     `json:"cover_url"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewNewsResponse converts a news model into a DTO.
func NewNewsResponse(post models.NewsPost) NewsResponse {
	return NewsResponse{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Body:        post.Body,
		CoverURL:    post.CoverURL,
		Published:   post.Published,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// NewsRequest captures create/update payloads for news posts.
type NewsRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=255"`
	Body     string `json:"body" validate:"required,min=10"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
}

// NewsListResponse wraps a paginated news response.
type NewsListResponse struct {
	Items      []NewsResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// GalleryItemResponse serializes a gallery item.
type GalleryItemResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGalleryItemResponse converts a gallery model into a DTO.
func NewGalleryItemResponse(item models.GalleryItem) GalleryItemResponse {
	return GalleryItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Caption:   item.Caption,
		ImageURL:  item.ImageURL,
		CreatedAt: item.CreatedAt,
	}
}

// GalleryUpdateRequest captures metadata edits for a gallery item.
type GalleryUpdateRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Caption string `json:"caption" validate:"omitempty,max=2000"`
}

// PanelistResponse serializes a panelist.
type PanelistResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
	Rank     int    `json:"rank"`
}

// NewPanelistResponse converts a panelist model into a DTO.
func NewPanelistResponse(panelist models.Panelist) PanelistResponse {
	return PanelistResponse{
		ID:       panelist.ID,
		Name:     panelist.Name,
		Role:     panelist.Role,
		Bio:      panelist.Bio,
		PhotoURL: panelist.PhotoURL,
		Rank:     panelist.Rank,
	}
}

// PanelistRequest captures create/update payloads for panelists.
type PanelistRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,min=2,max=128"`
	Bio      string `json:"bio" validate:"omitempty,max=4000"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
	Rank     int    `json:"rank" validate:"gte=0"`
}
