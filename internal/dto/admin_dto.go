package dto

import (
	"time"

	"github.com/campus-itc/club-api/internal/models"
)

// AdminUserResponse serializes a back-office account.
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminUserResponse converts an admin user model into a DTO.
func NewAdminUserResponse(user models.AdminUser) AdminUserResponse {
	return AdminUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// AdminUserCreateRequest captures a new back-office account.
type AdminUserCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=root admin panel"`
	Password string `json:"password" validate:"required,min=10,max=128"`
}

// AdminUserRoleRequest changes an account role.
type AdminUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=root admin panel"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      AdminUserResponse `json:"user"`
}

// SettingsResponse serializes site settings.
type SettingsResponse struct {
	ClubName           string    `json:"club_name"`
	ContactEmail       string    `json:"contact_email"`
	MessengerGroupLink string    `json:"messenger_group_link"`
	InstagramGroupLink string    `json:"instagram_group_link"`
	ApplicationsOpen   bool      `json:"applications_open"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewSettingsResponse converts settings into a DTO.
func NewSettingsResponse(settings models.SiteSettings) SettingsResponse {
	return SettingsResponse{
		ClubName:           settings.ClubName,
		ContactEmail:       settings.ContactEmail,
		MessengerGroupLink: settings.MessengerGroupLink,
		InstagramGroupLink: settings.InstagramGroupLink,
		ApplicationsOpen:   settings.ApplicationsOpen,
		UpdatedAt:          settings.UpdatedAt,
	}
}

// SettingsUpdateRequest captures partial settings edits.
type SettingsUpdateRequest struct {
	ClubName           *string `json:"club_name" validate:"omitempty,min=1,max=255"`
	ContactEmail       *string `json:"contact_email" validate:"omitempty,email"`
	MessengerGroupLink *string `json:"messenger_group_link" validate:"omitempty,url"`
	InstagramGroupLink *string `json:"instagram_group_link" validate:"omitempty,url"`
	ApplicationsOpen   *bool   `json:"applications_open"`
}

// EmailSendRequest is the payload for the outbound notification endpoint.
// Field names follow the public API contract of the original site.
type EmailSendRequest struct {
	Type               string `json:"type"`
	To                 string `json:"to"`
	MemberName         string `json:"memberName"`
	MessengerGroupLink string `json:"messengerGroupLink"`
	InstagramGroupLink string `json:"instagramGroupLink"`
}

// EmailSendResponse reports a successful send.
type EmailSendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}
