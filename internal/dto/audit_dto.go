package dto

import (
	"time"

	"github.com/campus-itc/club-api/internal/models"
)

// AuditRecordResponse serializes a single audit trail entry.
type AuditRecordResponse struct {
	ID         uint                   `json:"id"`
	AdminID    string                 `json:"admin_id"`
	AdminEmail string                 `json:"admin_email"`
	Action     string                 `json:"action"`
	Target     string                 `json:"target"`
	TargetID   string                 `json:"target_id"`
	Details    map[string]interface{} `json:"details"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// NewAuditRecordResponse converts an audit model into a DTO.
func NewAuditRecordResponse(record models.AuditRecord) AuditRecordResponse {
	details := make(map[string]interface{}, len(record.Details))
	for key, value := range record.Details {
		details[key] = value
	}

	return AuditRecordResponse{
		ID:         record.ID,
		AdminID:    record.AdminID,
		AdminEmail: record.AdminEmail,
		Action:     record.Action,
		Target:     record.Target,
		TargetID:   record.TargetID,
		Details:    details,
		IPAddress:  record.IPAddress,
		UserAgent:  record.UserAgent,
		Timestamp:  record.RecordedAt,
	}
}

// AdminActivityCount pairs an admin with the number of actions in the window.
type AdminActivityCount struct {
	AdminEmail string `json:"admin_email"`
	Count      int    `json:"count"`
}

// ActivitySummary is the derived dashboard view over the recent audit window.
// TotalActions counts the records inside the fetch window, not the lifetime
// total.
type ActivitySummary struct {
	TotalActions     int                   `json:"total_actions"`
	RecentActions    []AuditRecordResponse `json:"recent_actions"`
	ActionsByType    map[string]int        `json:"actions_by_type"`
	MostActiveAdmins []AdminActivityCount  `json:"most_active_admins"`
}
