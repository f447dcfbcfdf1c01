package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/observability"
	"github.com/campus-itc/club-api/internal/repository"
)

const (
	// activityWindow bounds the records considered by GetAdminActivity.
	// TotalActions plateaus here once the trail outgrows the window.
	activityWindow = 500
	recentActions  = 20
	topAdmins      = 10

	defaultLogLimit = 50
)

// AuditActor identifies the authenticated admin performing an operation.
type AuditActor struct {
	ID    string
	Email string
}

// AuditMetadata carries optional request context. Both fields are routinely
// empty; absence is not an error.
type AuditMetadata struct {
	IPAddress string
	UserAgent string
}

// AuditEntry captures one admin action for the trail. Details accepts any
// shape; non-map values are stored as {"value": v}.
type AuditEntry struct {
	Actor    AuditActor
	Action   string
	Target   string
	TargetID string
	Details  interface{}
	Metadata AuditMetadata
}

// AuditRecorder appends audit entries. Recording is fire-and-forget: a failed
// write must never fail the operation that triggered it, so Record has no
// error result.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService exposes the audit trail and the derived activity dashboard.
type AuditService interface {
	AuditRecorder
	GetAuditLogs(ctx context.Context, limit int, adminEmail string) []dto.AuditRecordResponse
	GetAdminActivity(ctx context.Context) dto.ActivitySummary
}

type auditService struct {
	repo   repository.AuditRepository
	logger zerolog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewAuditService constructs the audit service.
func NewAuditService(repo repository.AuditRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
		tracer: otel.Tracer("github.com/campus-itc/club-api/internal/service/audit"),
		now:    time.Now,
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	record := models.AuditRecord{
		AdminID:    strings.TrimSpace(entry.Actor.ID),
		AdminEmail: strings.TrimSpace(entry.Actor.Email),
		Action:     strings.TrimSpace(entry.Action),
		Target:     strings.TrimSpace(entry.Target),
		TargetID:   strings.TrimSpace(entry.TargetID),
		Details:    normalizeDetails(entry.Details),
		IPAddress:  entry.Metadata.IPAddress,
		UserAgent:  entry.Metadata.UserAgent,
		RecordedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		observability.AuditWriteFailures().Inc()
		s.logger.Error().Err(err).
			Str("action", record.Action).
			Str("target", record.Target).
			Str("admin_email", record.AdminEmail).
			Msg("failed to persist audit record")
	}
}

func (s *auditService) GetAuditLogs(ctx context.Context, limit int, adminEmail string) []dto.AuditRecordResponse {
	if limit <= 0 {
		limit = defaultLogLimit
	}

	records, err := s.repo.ListRecent(ctx, limit, strings.TrimSpace(adminEmail))
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Msg("failed to list audit records")
		return []dto.AuditRecordResponse{}
	}

	responses := make([]dto.AuditRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.NewAuditRecordResponse(record))
	}
	return responses
}

func (s *auditService) GetAdminActivity(ctx context.Context) dto.ActivitySummary {
	ctx, span := s.tracer.Start(ctx, "audit.activity_summary")
	defer span.End()

	logs := s.GetAuditLogs(ctx, activityWindow, "")
	span.SetAttributes(attribute.Int("audit.window_size", len(logs)))

	actionsByType := make(map[string]int)
	adminCounts := make(map[string]int)
	adminOrder := make([]string, 0)

	for _, entry := range logs {
		actionsByType[entry.Action]++
		if _, seen := adminCounts[entry.AdminEmail]; !seen {
			adminOrder = append(adminOrder, entry.AdminEmail)
		}
		adminCounts[entry.AdminEmail]++
	}

	mostActive := make([]dto.AdminActivityCount, 0, len(adminOrder))
	for _, email := range adminOrder {
		mostActive = append(mostActive, dto.AdminActivityCount{AdminEmail: email, Count: adminCounts[email]})
	}
	sort.SliceStable(mostActive, func(i, j int) bool {
		return mostActive[i].Count > mostActive[j].Count
	})
	if len(mostActive) > topAdmins {
		mostActive = mostActive[:topAdmins]
	}

	recent := logs
	if len(recent) > recentActions {
		recent = recent[:recentActions]
	}

	return dto.ActivitySummary{
		TotalActions:     len(logs),
		RecentActions:    append([]dto.AuditRecordResponse(nil), recent...),
		ActionsByType:    actionsByType,
		MostActiveAdmins: mostActive,
	}
}

func normalizeDetails(details interface{}) datatypes.JSONMap {
	switch v := details.(type) {
	case nil:
		return datatypes.JSONMap{}
	case datatypes.JSONMap:
		normalized := datatypes.JSONMap{}
		for key, value := range v {
			normalized[key] = value
		}
		return normalized
	case map[string]interface{}:
		normalized := datatypes.JSONMap{}
		for key, value := range v {
			normalized[key] = value
		}
		return normalized
	default:
		return datatypes.JSONMap{"value": v}
	}
}

// StatusChangeDetails describes a status transition in an audit entry.
func StatusChangeDetails(oldStatus, newStatus string) map[string]interface{} {
	return map[string]interface{}{
		"old_status": oldStatus,
		"new_status": newStatus,
	}
}

// BulkOutcomeDetails describes the result of a bulk workflow.
func BulkOutcomeDetails(selected, succeeded, failed int) map[string]interface{} {
	return map[string]interface{}{
		"selected":  selected,
		"succeeded": succeeded,
		"failed":    failed,
	}
}

// ExportDetails describes a data export.
func ExportDetails(count int, format string) map[string]interface{} {
	return map[string]interface{}{
		"record_count": count,
		"format":       format,
	}
}
