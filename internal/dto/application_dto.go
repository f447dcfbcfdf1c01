package dto

import (
	"time"

	"github.com/campus-itc/club-api/internal/models"
)

// ApplicationRequest is the public membership application payload.
type ApplicationRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Major      string `json:"major" validate:"omitempty,max=128"`
	Year       string `json:"year" validate:"omitempty,max=32"`
	Motivation string `json:"motivation" validate:"required,min=10,max=4000"`
	Honeypot   string `json:"website" validate:"omitempty,max=0"`
}

// ApplicationResponse serializes an application.
type ApplicationResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Major      string    `json:"major"`
	Year       string    `json:"year"`
	Motivation string    `json:"motivation"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewApplicationResponse converts an application model into a DTO.
func NewApplicationResponse(application models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:         application.ID,
		Name:       application.Name,
		Email:      application.Email,
		Major:      application.Major,
		Year:       application.Year,
		Motivation: application.Motivation,
		Status:     application.Status,
		CreatedAt:  application.CreatedAt,
		UpdatedAt:  application.UpdatedAt,
	}
}

// ApplicationListRequest defines filters for listing applications.
type ApplicationListRequest struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// ApplicationListResponse wraps a paginated application response.
type ApplicationListResponse struct {
	Items      []ApplicationResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// BulkApplicationRequest selects applications for a bulk review decision.
type BulkApplicationRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}
