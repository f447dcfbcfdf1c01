package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

// ErrPanelistNotFound indicates the panelist does not exist.
var ErrPanelistNotFound = errors.New("panelist not found")

// PanelistService exposes the public panel roster.
type PanelistService interface {
	ListRanked(ctx context.Context) ([]dto.PanelistResponse, error)
}

type panelistService struct {
	repo   repository.PanelistRepository
	logger zerolog.Logger
}

// NewPanelistService constructs the public panelist service.
func NewPanelistService(repo repository.PanelistRepository, logger zerolog.Logger) PanelistService {
	return &panelistService{
		repo:   repo,
		logger: logger.With().Str("component", "panelist_service").Logger(),
	}
}

func (s *panelistService) ListRanked(ctx context.Context) ([]dto.PanelistResponse, error) {
	panelists, err := s.repo.ListRanked(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PanelistResponse, 0, len(panelists))
	for _, panelist := range panelists {
		responses = append(responses, dto.NewPanelistResponse(panelist))
	}
	return responses, nil
}

// AdminPanelistService manages the panel roster.
type AdminPanelistService interface {
	List(ctx context.Context) ([]dto.PanelistResponse, error)
	Create(ctx context.Context, payload dto.PanelistRequest, actor AuditActor) (dto.PanelistResponse, error)
	Update(ctx context.Context, id uint, payload dto.PanelistRequest, actor AuditActor) (dto.PanelistResponse, error)
	Delete(ctx context.Context, id uint, actor AuditActor) error
}

type adminPanelistService struct {
	repo      repository.PanelistRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewAdminPanelistService constructs the admin panelist service.
func NewAdminPanelistService(repo repository.PanelistRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminPanelistService {
	return &adminPanelistService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		audit:     audit,
		logger:    logger.With().Str("component", "admin_panelist_service").Logger(),
	}
}

func (s *adminPanelistService) List(ctx context.Context) ([]dto.PanelistResponse, error) {
	panelists, err := s.repo.ListRanked(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PanelistResponse, 0, len(panelists))
	for _, panelist := range panelists {
		responses = append(responses, dto.NewPanelistResponse(panelist))
	}
	return responses, nil
}

func (s *adminPanelistService) Create(ctx context.Context, payload dto.PanelistRequest, actor AuditActor) (dto.PanelistResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PanelistResponse{}, err
	}

	panelist := models.Panelist{
		Name:     strings.TrimSpace(s.sanitizer.Sanitize(payload.Name)),
		Role:     strings.TrimSpace(s.sanitizer.Sanitize(payload.Role)),
		Bio:      strings.TrimSpace(s.sanitizer.Sanitize(payload.Bio)),
		PhotoURL: strings.TrimSpace(payload.PhotoURL),
		Rank:     payload.Rank,
	}

	if err := s.repo.Create(ctx, &panelist); err != nil {
		return dto.PanelistResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionPanelistCreate,
		Target:   "panelist",
		TargetID: strconv.FormatUint(uint64(panelist.ID), 10),
		Details:  map[string]interface{}{"name": panelist.Name},
	})

	return dto.NewPanelistResponse(panelist), nil
}

func (s *adminPanelistService) Update(ctx context.Context, id uint, payload dto.PanelistRequest, actor AuditActor) (dto.PanelistResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PanelistResponse{}, err
	}

	panelist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PanelistResponse{}, ErrPanelistNotFound
		}
		return dto.PanelistResponse{}, err
	}

	panelist.Name = strings.TrimSpace(s.sanitizer.Sanitize(payload.Name))
	panelist.Role = strings.TrimSpace(s.sanitizer.Sanitize(payload.Role))
	panelist.Bio = strings.TrimSpace(s.sanitizer.Sanitize(payload.Bio))
	panelist.PhotoURL = strings.TrimSpace(payload.PhotoURL)
	panelist.Rank = payload.Rank

	if err := s.repo.Update(ctx, &panelist); err != nil {
		return dto.PanelistResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionPanelistEdit,
		Target:   "panelist",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})

	return dto.NewPanelistResponse(panelist), nil
}

func (s *adminPanelistService) Delete(ctx context.Context, id uint, actor AuditActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPanelistNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionPanelistDelete,
		Target:   "panelist",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})
	return nil
}
