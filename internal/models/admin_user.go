package models

import "time"

// Admin roles form a closed enumeration; capabilities per role live in the
// middleware capability table.
const (
	RoleRoot  = "root"
	RoleAdmin = "admin"
	RolePanel = "panel"
)

// AdminUser is a back-office account.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:160;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         string    `gorm:"size:32;not null;default:panel" json:"role"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SiteSettings is the single-row site configuration edited from the admin
// panel. Group links are handed to notification emails as defaults.
type SiteSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ClubName           string    `gorm:"size:255;not null" json:"club_name"`
	ContactEmail       string    `gorm:"size:160" json:"contact_email"`
	MessengerGroupLink string    `gorm:"size:512" json:"messenger_group_link"`
	InstagramGroupLink string    `gorm:"size:512" json:"instagram_group_link"`
	ApplicationsOpen   bool      `gorm:"not null;default:true" json:"applications_open"`
	UpdatedAt          time.Time `json:"updated_at"`
}
