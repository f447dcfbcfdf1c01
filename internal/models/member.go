package models

import (
	"time"

	"gorm.io/gorm"
)

// Member lifecycle states.
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
	MemberStatusAlumni   = "alumni"
	MemberStatusRemoved  = "removed"
)

// Member represents an accepted club member.
type Member struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:160;uniqueIndex;not null" json:"email"`
	Major      string         `gorm:"size:128" json:"major"`
	Year       string         `gorm:"size:32" json:"year"`
	Status     string         `gorm:"size:32;index;not null;default:active" json:"status"`
	JoinedAt   time.Time      `json:"joined_at"`
	Notes      string         `gorm:"type:text" json:"notes"`
	PhotoURL   string         `gorm:"size:512" json:"photo_url"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Application status values.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// Application is a membership application submitted through the public site.
type Application struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:160;index;not null" json:"email"`
	Major      string    `gorm:"size:128" json:"major"`
	Year       string    `gorm:"size:32" json:"year"`
	Motivation string    `gorm:"type:text" json:"motivation"`
	Status     string    `gorm:"size:32;index;not null;default:pending" json:"status"`
	Checksum   string    `gorm:"size:128;index" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
