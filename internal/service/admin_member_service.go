package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/observability"
	"github.com/campus-itc/club-api/internal/repository"
)

// ErrMemberNotFound indicates the member does not exist.
var ErrMemberNotFound = errors.New("member not found")

// AdminMemberService orchestrates member management use cases.
type AdminMemberService interface {
	List(ctx context.Context, req dto.MemberListRequest) (dto.MemberListResponse, error)
	Get(ctx context.Context, id uint, actor AuditActor) (dto.MemberResponse, error)
	Update(ctx context.Context, id uint, payload dto.MemberUpdateRequest, actor AuditActor) (dto.MemberResponse, error)
	Delete(ctx context.Context, id uint, actor AuditActor) error
	BulkUpdateStatus(ctx context.Context, ids []uint, status string, actor AuditActor) dto.BulkResult
	BulkDelete(ctx context.Context, ids []uint, actor AuditActor) dto.BulkResult
	ExportCSV(ctx context.Context, actor AuditActor) ([]byte, error)
}

type adminMemberService struct {
	repo      repository.MemberRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewAdminMemberService constructs the admin member service.
func NewAdminMemberService(repo repository.MemberRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminMemberService {
	return &adminMemberService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_member_service").Logger(),
		tracer:    otel.Tracer("github.com/campus-itc/club-api/internal/service/admin_member"),
	}
}

func (s *adminMemberService) List(ctx context.Context, req dto.MemberListRequest) (dto.MemberListResponse, error) {
	filter := repository.MemberFilter{
		Search:   strings.TrimSpace(req.Search),
		Status:   strings.TrimSpace(req.Status),
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
	}

	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.MemberListResponse{}, err
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, dto.NewMemberResponse(member))
	}

	return dto.MemberListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminMemberService) Get(ctx context.Context, id uint, actor AuditActor) (dto.MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MemberResponse{}, ErrMemberNotFound
		}
		return dto.MemberResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionMemberView,
		Target:   "member",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})

	return dto.NewMemberResponse(member), nil
}

func (s *adminMemberService) Update(ctx context.Context, id uint, payload dto.MemberUpdateRequest, actor AuditActor) (dto.MemberResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MemberResponse{}, err
	}

	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MemberResponse{}, ErrMemberNotFound
		}
		return dto.MemberResponse{}, err
	}

	updates := make(map[string]interface{})
	changedFields := make([]string, 0)
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
		changedFields = append(changedFields, "name")
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
		changedFields = append(changedFields, "email")
	}
	if payload.Major != nil {
		updates["major"] = strings.TrimSpace(*payload.Major)
		changedFields = append(changedFields, "major")
	}
	if payload.Year != nil {
		updates["year"] = strings.TrimSpace(*payload.Year)
		changedFields = append(changedFields, "year")
	}
	if payload.Status != nil {
		updates["status"] = strings.ToLower(strings.TrimSpace(*payload.Status))
		changedFields = append(changedFields, "status")
	}
	if payload.Notes != nil {
		updates["notes"] = strings.TrimSpace(*payload.Notes)
		changedFields = append(changedFields, "notes")
	}

	if len(updates) == 0 {
		return dto.NewMemberResponse(previous), nil
	}

	member, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MemberResponse{}, ErrMemberNotFound
		}
		return dto.MemberResponse{}, err
	}

	targetID := strconv.FormatUint(uint64(id), 10)
	if payload.Status != nil && previous.Status != member.Status {
		s.audit.Record(ctx, AuditEntry{
			Actor:    actor,
			Action:   models.ActionMemberStatusChange,
			Target:   "member",
			TargetID: targetID,
			Details:  StatusChangeDetails(previous.Status, member.Status),
		})
	}
	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionMemberEdit,
		Target:   "member",
		TargetID: targetID,
		Details:  map[string]interface{}{"fields": changedFields},
	})

	return dto.NewMemberResponse(member), nil
}

func (s *adminMemberService) Delete(ctx context.Context, id uint, actor AuditActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionMemberDelete,
		Target:   "member",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})
	return nil
}

// BulkUpdateStatus applies a status to each selected member sequentially.
// Succeeded counts store writes only; there is no rollback.
func (s *adminMemberService) BulkUpdateStatus(ctx context.Context, ids []uint, status string, actor AuditActor) dto.BulkResult {
	ctx, span := s.tracer.Start(ctx, "member.bulk_status")
	span.SetAttributes(attribute.Int("bulk.selected", len(ids)), attribute.String("bulk.status", status))
	defer span.End()

	status = strings.ToLower(strings.TrimSpace(status))
	result := dto.BulkResult{}
	for _, id := range ids {
		if _, err := s.repo.Update(ctx, id, map[string]interface{}{"status": status}); err != nil {
			result.Failed++
			observability.BulkOperations().WithLabelValues("member_status", "failed").Inc()
			s.logger.Error().Err(err).Uint("member_id", id).Msg("bulk status write failed")
			continue
		}
		result.Succeeded++
		observability.BulkOperations().WithLabelValues("member_status", "succeeded").Inc()
	}
	result.Message = fmt.Sprintf("%d members updated successfully. %d failed.", result.Succeeded, result.Failed)

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionBulkUpdate,
		Target:   "members",
		TargetID: fmt.Sprintf("bulk_%d", len(ids)),
		Details:  BulkOutcomeDetails(len(ids), result.Succeeded, result.Failed),
	})

	return result
}

// BulkDelete removes each selected member sequentially with no rollback.
func (s *adminMemberService) BulkDelete(ctx context.Context, ids []uint, actor AuditActor) dto.BulkResult {
	ctx, span := s.tracer.Start(ctx, "member.bulk_delete")
	span.SetAttributes(attribute.Int("bulk.selected", len(ids)))
	defer span.End()

	result := dto.BulkResult{}
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			result.Failed++
			observability.BulkOperations().WithLabelValues("member_delete", "failed").Inc()
			s.logger.Error().Err(err).Uint("member_id", id).Msg("bulk delete failed")
			continue
		}
		result.Succeeded++
		observability.BulkOperations().WithLabelValues("member_delete", "succeeded").Inc()
	}
	result.Message = fmt.Sprintf("%d members deleted successfully. %d failed.", result.Succeeded, result.Failed)

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionBulkDelete,
		Target:   "members",
		TargetID: fmt.Sprintf("bulk_%d", len(ids)),
		Details:  BulkOutcomeDetails(len(ids), result.Succeeded, result.Failed),
	})

	return result
}

// ExportCSV renders the full member list as CSV and records a bulk_export
// audit entry with the record count.
func (s *adminMemberService) ExportCSV(ctx context.Context, actor AuditActor) ([]byte, error) {
	members, _, err := s.repo.List(ctx, repository.MemberFilter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"id", "name", "email", "major", "year", "status", "joined_at"}); err != nil {
		return nil, err
	}
	for _, member := range members {
		row := []string{
			strconv.FormatUint(uint64(member.ID), 10),
			member.Name,
			member.Email,
			member.Major,
			member.Year,
			member.Status,
			member.JoinedAt.Format("2006-01-02"),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionBulkExport,
		Target:   "csv_export",
		TargetID: fmt.Sprintf("members_%d", len(members)),
		Details:  ExportDetails(len(members), "csv"),
	})

	return buf.Bytes(), nil
}
