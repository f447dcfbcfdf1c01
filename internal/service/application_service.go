package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/ratelimit"
	"github.com/campus-itc/club-api/internal/repository"
)

var (
	// ErrApplicationSpam indicates the honeypot field was filled.
	ErrApplicationSpam = errors.New("application flagged as spam")
	// ErrApplicationDuplicate indicates a matching application already exists.
	ErrApplicationDuplicate = errors.New("duplicate application")
	// ErrApplicationsClosed indicates the recruitment window is closed.
	ErrApplicationsClosed = errors.New("applications are closed")
	// ErrApplicationRateLimited indicates the submitter exceeded the budget.
	ErrApplicationRateLimited = errors.New("too many applications from this address")
)

// ApplicationService handles public membership application submissions.
type ApplicationService interface {
	Submit(ctx context.Context, req dto.ApplicationRequest, clientKey string) (dto.ApplicationResponse, error)
}

type applicationService struct {
	repo      repository.ApplicationRepository
	settings  repository.SettingsRepository
	limiter   *ratelimit.Limiter
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewApplicationService constructs the public application service.
func NewApplicationService(repo repository.ApplicationRepository, settings repository.SettingsRepository, limiter *ratelimit.Limiter, validate *validator.Validate, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		repo:      repo,
		settings:  settings,
		limiter:   limiter,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "application_service").Logger(),
		tracer:    otel.Tracer("github.com/campus-itc/club-api/internal/service/application"),
	}
}

func (s *applicationService) Submit(ctx context.Context, req dto.ApplicationRequest, clientKey string) (dto.ApplicationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "application.submit")
	defer span.End()

	if req.Honeypot != "" {
		span.SetStatus(codes.Error, "honeypot tripped")
		return dto.ApplicationResponse{}, ErrApplicationSpam
	}

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		return dto.ApplicationResponse{}, err
	}

	if s.limiter != nil && clientKey != "" {
		if !s.limiter.Allow(ctx, "apply:"+clientKey) {
			span.SetStatus(codes.Error, "rate limited")
			return dto.ApplicationResponse{}, ErrApplicationRateLimited
		}
	}

	if s.settings != nil {
		settings, err := s.settings.Get(ctx)
		if err == nil && !settings.ApplicationsOpen {
			span.SetStatus(codes.Error, "applications closed")
			return dto.ApplicationResponse{}, ErrApplicationsClosed
		}
	}

	checksum := computeChecksum(req.Name, req.Email, req.Motivation)
	exists, err := s.repo.ExistsByChecksum(ctx, checksum)
	if err != nil {
		span.RecordError(err)
		return dto.ApplicationResponse{}, err
	}
	if exists {
		span.SetStatus(codes.Error, "duplicate submission")
		return dto.ApplicationResponse{}, ErrApplicationDuplicate
	}

	application := models.Application{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Major:      strings.TrimSpace(req.Major),
		Year:       strings.TrimSpace(req.Year),
		Motivation: strings.TrimSpace(s.sanitizer.Sanitize(req.Motivation)),
		Status:     models.ApplicationStatusPending,
		Checksum:   checksum,
	}

	if err := s.repo.Create(ctx, &application); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().Uint("application_id", application.ID).Str("email", maskEmail(application.Email)).Msg("application submitted")
	return dto.NewApplicationResponse(application), nil
}
