package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

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

// ErrApplicationNotFound indicates the application does not exist.
var ErrApplicationNotFound = errors.New("application not found")

// Review decisions accepted by the bulk workflow.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// AdminApplicationService orchestrates application review.
type AdminApplicationService interface {
	List(ctx context.Context, req dto.ApplicationListRequest) (dto.ApplicationListResponse, error)
	Get(ctx context.Context, id uint) (dto.ApplicationResponse, error)
	Decide(ctx context.Context, id uint, decision string, actor AuditActor) (dto.ApplicationResponse, error)
	BulkDecide(ctx context.Context, ids []uint, decision string, actor AuditActor) dto.BulkResult
}

type adminApplicationService struct {
	repo     repository.ApplicationRepository
	notifier Notifier
	audit    AuditRecorder
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewAdminApplicationService constructs the admin application service.
func NewAdminApplicationService(repo repository.ApplicationRepository, notifier Notifier, audit AuditRecorder, logger zerolog.Logger) AdminApplicationService {
	return &adminApplicationService{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		logger:   logger.With().Str("component", "admin_application_service").Logger(),
		tracer:   otel.Tracer("github.com/campus-itc/club-api/internal/service/admin_application"),
	}
}

func (s *adminApplicationService) List(ctx context.Context, req dto.ApplicationListRequest) (dto.ApplicationListResponse, error) {
	filter := repository.ApplicationFilter{
		Status:   strings.TrimSpace(req.Status),
		Search:   strings.TrimSpace(req.Search),
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
	}

	applications, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ApplicationListResponse{}, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, dto.NewApplicationResponse(application))
	}

	return dto.ApplicationListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminApplicationService) Get(ctx context.Context, id uint) (dto.ApplicationResponse, error) {
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}
	return dto.NewApplicationResponse(application), nil
}

// Decide applies a single approve/reject decision. The store write is the
// primary operation; the notification email and the audit entry are
// best-effort side effects.
func (s *adminApplicationService) Decide(ctx context.Context, id uint, decision string, actor AuditActor) (dto.ApplicationResponse, error) {
	status, action, err := decisionStatus(decision)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	application, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if warning := s.notify(application, status); warning != "" {
		s.logger.Warn().Str("warning", warning).Uint("application_id", id).Msg("notification skipped")
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   action,
		Target:   "application",
		TargetID: strconv.FormatUint(uint64(id), 10),
		Details:  StatusChangeDetails(previous.Status, status),
	})

	return dto.NewApplicationResponse(application), nil
}

// BulkDecide processes the selection sequentially with no rollback and no
// mid-batch cancellation. Succeeded counts status writes only; a failed email
// becomes a warning and the record still counts as succeeded.
func (s *adminApplicationService) BulkDecide(ctx context.Context, ids []uint, decision string, actor AuditActor) dto.BulkResult {
	status, _, err := decisionStatus(decision)
	if err != nil {
		return dto.BulkResult{Message: err.Error()}
	}

	ctx, span := s.tracer.Start(ctx, "application.bulk_decide")
	span.SetAttributes(
		attribute.Int("bulk.selected", len(ids)),
		attribute.String("bulk.decision", decision),
	)
	defer span.End()

	result := dto.BulkResult{}
	for _, id := range ids {
		application, err := s.repo.UpdateStatus(ctx, id, status)
		if err != nil {
			result.Failed++
			observability.BulkOperations().WithLabelValues("application_"+decision, "failed").Inc()
			s.logger.Error().Err(err).Uint("application_id", id).Msg("bulk decision write failed")
			continue
		}

		result.Succeeded++
		observability.BulkOperations().WithLabelValues("application_"+decision, "succeeded").Inc()

		if warning := s.notify(application, status); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	verb := "approved"
	if status == models.ApplicationStatusRejected {
		verb = "rejected"
	}
	result.Message = fmt.Sprintf("%d applications %s successfully. %d failed.", result.Succeeded, verb, result.Failed)

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionBulkUpdate,
		Target:   "applications",
		TargetID: fmt.Sprintf("bulk_%d", len(ids)),
		Details:  BulkOutcomeDetails(len(ids), result.Succeeded, result.Failed),
	})

	return result
}

func (s *adminApplicationService) notify(application models.Application, status string) string {
	if s.notifier == nil {
		return ""
	}

	var err error
	switch status {
	case models.ApplicationStatusApproved:
		err = s.notifier.SendWelcome(application.Email, application.Name)
	case models.ApplicationStatusRejected:
		err = s.notifier.SendRejection(application.Email, application.Name)
	default:
		return ""
	}

	if err != nil {
		return fmt.Sprintf("notification email to %s failed", maskEmail(application.Email))
	}
	return ""
}

func decisionStatus(decision string) (status, action string, err error) {
	switch strings.ToLower(strings.TrimSpace(decision)) {
	case DecisionApprove:
		return models.ApplicationStatusApproved, models.ActionApplicationApprove, nil
	case DecisionReject:
		return models.ApplicationStatusRejected, models.ActionApplicationReject, nil
	default:
		return "", "", fmt.Errorf("unknown decision %q", decision)
	}
}
