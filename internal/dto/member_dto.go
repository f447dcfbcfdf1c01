package dto

import (
	"time"

	"github.com/campus-itc/club-api/internal/models"
)

// MemberResponse serializes member data for admin endpoints.
type MemberResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Major     string    `json:"major"`
	Year      string    `json:"year"`
	Status    string    `json:"status"`
	JoinedAt  time.Time `json:"joined_at"`
	Notes     string    `json:"notes"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMemberResponse converts a member model into a DTO.
func NewMemberResponse(member models.Member) MemberResponse {
	return MemberResponse{
		ID:        member.ID,
		Name:      member.Name,
		Email:     member.Email,
		Major:     member.Major,
		Year:      member.Year,
		Status:    member.Status,
		JoinedAt:  member.JoinedAt,
		Notes:     member.Notes,
		PhotoURL:  member.PhotoURL,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

// PublicMemberResponse exposes the reduced public roster view.
type PublicMemberResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Major    string `json:"major"`
	Year     string `json:"year"`
	PhotoURL string `json:"photo_url"`
}

// NewPublicMemberResponse converts a member model into the public DTO.
func NewPublicMemberResponse(member models.Member) PublicMemberResponse {
	return PublicMemberResponse{
		ID:       member.ID,
		Name:     member.Name,
		Major:    member.Major,
		Year:     member.Year,
		PhotoURL: member.PhotoURL,
	}
}

// MemberListRequest defines filters for listing members.
type MemberListRequest struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// MemberListResponse wraps a paginated member response.
type MemberListResponse struct {
	Items      []MemberResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// MemberUpdateRequest captures partial update payloads for members.
type MemberUpdateRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Major  *string `json:"major" validate:"omitempty,min=1"`
	Year   *string `json:"year" validate:"omitempty,min=1"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive alumni removed"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// BulkMemberRequest selects members for a bulk status update or delete.
type BulkMemberRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive alumni removed"`
}

// BulkResult reports the aggregate outcome of a bulk workflow. Succeeded
// counts store writes only; email warnings are carried separately.
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Message   string   `json:"message"`
	Warnings  []string `json:"warnings,omitempty"`
}
