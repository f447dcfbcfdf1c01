package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit action kinds recorded by the admin back office. The column itself is a
// free string; these constants are the vocabulary callers are expected to use.
const (
	ActionMemberView         = "member_view"
	ActionMemberEdit         = "member_edit"
	ActionMemberDelete       = "member_delete"
	ActionMemberStatusChange = "member_status_change"
	ActionApplicationApprove = "application_approve"
	ActionApplicationReject  = "application_reject"
	ActionNewsCreate         = "news_create"
	ActionNewsEdit           = "news_edit"
	ActionNewsDelete         = "news_delete"
	ActionNewsPublish        = "news_publish"
	ActionGalleryUpload      = "gallery_upload"
	ActionGalleryEdit        = "gallery_edit"
	ActionGalleryDelete      = "gallery_delete"
	ActionPanelistCreate     = "panelist_create"
	ActionPanelistEdit       = "panelist_edit"
	ActionPanelistDelete     = "panelist_delete"
	ActionAdminLogin         = "admin_login"
	ActionAdminLogout        = "admin_logout"
	ActionUserCreate         = "user_create"
	ActionUserDelete         = "user_delete"
	ActionUserRoleChange     = "user_role_change"
	ActionSettingsUpdate     = "settings_update"
	ActionBulkExport         = "bulk_export"
	ActionBulkDelete         = "bulk_delete"
	ActionBulkUpdate         = "bulk_update"
)

// AuditRecord is an append-only trail entry for sensitive admin operations.
// Records are never updated or deleted once written; RecordedAt is assigned by
// the recorder, not by the database.
type AuditRecord struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	AdminID    string            `gorm:"size:64;index;not null" json:"admin_id"`
	AdminEmail string            `gorm:"size:160;index;not null" json:"admin_email"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	Target     string            `gorm:"size:64;not null" json:"target"`
	TargetID   string            `gorm:"size:128" json:"target_id"`
	Details    datatypes.JSONMap `gorm:"type:json" json:"details"`
	IPAddress  string            `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent  string            `gorm:"size:256" json:"user_agent,omitempty"`
	RecordedAt time.Time         `gorm:"index;not null" json:"timestamp"`
}
