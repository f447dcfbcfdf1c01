package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

// ErrNewsNotFound indicates the news post does not exist.
var ErrNewsNotFound = errors.New("news post not found")

// NewsService exposes the public news feed.
type NewsService interface {
	ListPublished(ctx context.Context, limit int) ([]dto.NewsResponse, error)
}

type newsService struct {
	repo   repository.NewsRepository
	logger zerolog.Logger
}

// NewNewsService constructs the public news service.
func NewNewsService(repo repository.NewsRepository, logger zerolog.Logger) NewsService {
	return &newsService{
		repo:   repo,
		logger: logger.With().Str("component", "news_service").Logger(),
	}
}

func (s *newsService) ListPublished(ctx context.Context, limit int) ([]dto.NewsResponse, error) {
	posts, err := s.repo.ListPublished(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NewsResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, dto.NewNewsResponse(post))
	}
	return responses, nil
}

// AdminNewsService orchestrates news management.
type AdminNewsService interface {
	List(ctx context.Context, page, pageSize int) (dto.NewsListResponse, error)
	Create(ctx context.Context, payload dto.NewsRequest, actor AuditActor) (dto.NewsResponse, error)
	Update(ctx context.Context, id uint, payload dto.NewsRequest, actor AuditActor) (dto.NewsResponse, error)
	SetPublished(ctx context.Context, id uint, published bool, actor AuditActor) (dto.NewsResponse, error)
	Delete(ctx context.Context, id uint, actor AuditActor) error
}

type adminNewsService struct {
	repo      repository.NewsRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	audit     AuditRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAdminNewsService constructs the admin news service.
func NewAdminNewsService(repo repository.NewsRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminNewsService {
	return &adminNewsService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		audit:     audit,
		logger:    logger.With().Str("component", "admin_news_service").Logger(),
		now:       time.Now,
	}
}

func (s *adminNewsService) List(ctx context.Context, page, pageSize int) (dto.NewsListResponse, error) {
	page = normalizePage(page)
	pageSize = clampPageSize(pageSize)

	posts, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return dto.NewsListResponse{}, err
	}

	responses := make([]dto.NewsResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, dto.NewNewsResponse(post))
	}

	return dto.NewsListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}, nil
}

func (s *adminNewsService) Create(ctx context.Context, payload dto.NewsRequest, actor AuditActor) (dto.NewsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NewsResponse{}, err
	}

	post := models.NewsPost{
		Slug:     generateSlug(payload.Title),
		Title:    strings.TrimSpace(payload.Title),
		Body:     s.sanitizer.Sanitize(payload.Body),
		CoverURL: strings.TrimSpace(payload.CoverURL),
	}

	if err := s.repo.Create(ctx, &post); err != nil {
		return dto.NewsResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionNewsCreate,
		Target:   "news",
		TargetID: strconv.FormatUint(uint64(post.ID), 10),
	})

	return dto.NewNewsResponse(post), nil
}

func (s *adminNewsService) Update(ctx context.Context, id uint, payload dto.NewsRequest, actor AuditActor) (dto.NewsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NewsResponse{}, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewsResponse{}, ErrNewsNotFound
		}
		return dto.NewsResponse{}, err
	}

	post.Title = strings.TrimSpace(payload.Title)
	post.Body = s.sanitizer.Sanitize(payload.Body)
	post.CoverURL = strings.TrimSpace(payload.CoverURL)

	if err := s.repo.Update(ctx, &post); err != nil {
		return dto.NewsResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionNewsEdit,
		Target:   "news",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})

	return dto.NewNewsResponse(post), nil
}

func (s *adminNewsService) SetPublished(ctx context.Context, id uint, published bool, actor AuditActor) (dto.NewsResponse, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NewsResponse{}, ErrNewsNotFound
		}
		return dto.NewsResponse{}, err
	}

	post.Published = published
	if published {
		now := s.now().UTC()
		post.PublishedAt = &now
	} else {
		post.PublishedAt = nil
	}

	if err := s.repo.Update(ctx, &post); err != nil {
		return dto.NewsResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionNewsPublish,
		Target:   "news",
		TargetID: strconv.FormatUint(uint64(id), 10),
		Details:  map[string]interface{}{"published": published},
	})

	return dto.NewNewsResponse(post), nil
}

func (s *adminNewsService) Delete(ctx context.Context, id uint, actor AuditActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionNewsDelete,
		Target:   "news",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})
	return nil
}
