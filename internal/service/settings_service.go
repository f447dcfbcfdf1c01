package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

const (
	settingsRetryAttempts = 3
	settingsRetryDelay    = time.Second
)

// SettingsService reads and edits the single-row site configuration.
type SettingsService interface {
	Get(ctx context.Context) (dto.SettingsResponse, error)
	Update(ctx context.Context, payload dto.SettingsUpdateRequest, actor AuditActor) (dto.SettingsResponse, error)
}

type settingsService struct {
	repo           repository.SettingsRepository
	validator      *validator.Validate
	audit          AuditRecorder
	defaultContact string
	logger         zerolog.Logger
}

// NewSettingsService constructs the settings service. The default contact
// email comes from deployment configuration and is served until an admin
// stores one.
func NewSettingsService(repo repository.SettingsRepository, validate *validator.Validate, audit AuditRecorder, defaultContact string, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:           repo,
		validator:      validate,
		audit:          audit,
		defaultContact: defaultContact,
		logger:         logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (dto.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = models.SiteSettings{ApplicationsOpen: true}
		} else {
			return dto.SettingsResponse{}, err
		}
	}
	if settings.ContactEmail == "" {
		settings.ContactEmail = s.defaultContact
	}
	return dto.NewSettingsResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, payload dto.SettingsUpdateRequest, actor AuditActor) (dto.SettingsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SettingsResponse{}, err
	}

	settings, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SettingsResponse{}, err
	}

	changed := make([]string, 0, 5)
	if payload.ClubName != nil && *payload.ClubName != settings.ClubName {
		settings.ClubName = *payload.ClubName
		changed = append(changed, "club_name")
	}
	if payload.ContactEmail != nil && *payload.ContactEmail != settings.ContactEmail {
		settings.ContactEmail = *payload.ContactEmail
		changed = append(changed, "contact_email")
	}
	if payload.MessengerGroupLink != nil && *payload.MessengerGroupLink != settings.MessengerGroupLink {
		settings.MessengerGroupLink = *payload.MessengerGroupLink
		changed = append(changed, "messenger_group_link")
	}
	if payload.InstagramGroupLink != nil && *payload.InstagramGroupLink != settings.InstagramGroupLink {
		settings.InstagramGroupLink = *payload.InstagramGroupLink
		changed = append(changed, "instagram_group_link")
	}
	if payload.ApplicationsOpen != nil && *payload.ApplicationsOpen != settings.ApplicationsOpen {
		settings.ApplicationsOpen = *payload.ApplicationsOpen
		changed = append(changed, "applications_open")
	}

	if len(changed) == 0 {
		return dto.NewSettingsResponse(settings), nil
	}

	// Settings writes hit a single contended row; retry transient failures
	// with a linear backoff before giving up.
	err = withRetry(ctx, settingsRetryAttempts, settingsRetryDelay, func() error {
		return s.repo.Save(ctx, &settings)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("settings update failed after retries")
		return dto.SettingsResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:   actor,
		Action:  models.ActionSettingsUpdate,
		Target:  "settings",
		Details: map[string]interface{}{"changed_fields": changed},
	})

	return dto.NewSettingsResponse(settings), nil
}
