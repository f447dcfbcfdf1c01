package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/repository"
)

var (
	// ErrGalleryNotFound indicates the gallery item does not exist.
	ErrGalleryNotFound = errors.New("gallery item not found")
	// ErrUploadTooLarge indicates the file exceeds the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not an image.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts the media upload destination.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// GalleryService exposes the public gallery feed.
type GalleryService interface {
	ListRecent(ctx context.Context, limit int) ([]dto.GalleryItemResponse, error)
}

type galleryService struct {
	repo   repository.GalleryRepository
	logger zerolog.Logger
}

// NewGalleryService constructs the public gallery service.
func NewGalleryService(repo repository.GalleryRepository, logger zerolog.Logger) GalleryService {
	return &galleryService{
		repo:   repo,
		logger: logger.With().Str("component", "gallery_service").Logger(),
	}
}

func (s *galleryService) ListRecent(ctx context.Context, limit int) ([]dto.GalleryItemResponse, error) {
	items, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewGalleryItemResponse(item))
	}
	return responses, nil
}

// AdminGalleryService orchestrates gallery management including uploads.
type AdminGalleryService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, title, caption string, actor AuditActor) (dto.GalleryItemResponse, error)
	Update(ctx context.Context, id uint, payload dto.GalleryUpdateRequest, actor AuditActor) (dto.GalleryItemResponse, error)
	Delete(ctx context.Context, id uint, actor AuditActor) error
}

type adminGalleryService struct {
	repo      repository.GalleryRepository
	storage   FileStorage
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
	maxSize   int64
	tracer    trace.Tracer
}

// NewAdminGalleryService constructs the admin gallery service.
func NewAdminGalleryService(repo repository.GalleryRepository, storage FileStorage, validate *validator.Validate, audit AuditRecorder, maxSizeMB int, logger zerolog.Logger) AdminGalleryService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &adminGalleryService{
		repo:      repo,
		storage:   storage,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_gallery_service").Logger(),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		tracer:    otel.Tracer("github.com/campus-itc/club-api/internal/service/admin_gallery"),
	}
}

func (s *adminGalleryService) Upload(ctx context.Context, file *multipart.FileHeader, title, caption string, actor AuditActor) (dto.GalleryItemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "gallery.upload")
	defer span.End()

	if file == nil {
		return dto.GalleryItemResponse{}, fmt.Errorf("file is required")
	}
	if s.storage == nil {
		return dto.GalleryItemResponse{}, fmt.Errorf("media storage is not configured")
	}
	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		span.SetStatus(codes.Error, "file too large")
		return dto.GalleryItemResponse{}, ErrUploadTooLarge
	}

	source, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return dto.GalleryItemResponse{}, err
	}
	defer source.Close()

	payload, err := io.ReadAll(io.LimitReader(source, s.maxSize+1))
	if err != nil {
		span.RecordError(err)
		return dto.GalleryItemResponse{}, err
	}
	if int64(len(payload)) > s.maxSize {
		span.SetStatus(codes.Error, "file too large")
		return dto.GalleryItemResponse{}, ErrUploadTooLarge
	}

	detected := mimetype.Detect(payload)
	if !strings.HasPrefix(detected.String(), "image/") {
		span.SetStatus(codes.Error, "type not allowed")
		return dto.GalleryItemResponse{}, ErrUploadTypeNotAllowed
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage upload failed")
		return dto.GalleryItemResponse{}, err
	}

	if strings.TrimSpace(title) == "" {
		title = file.Filename
	}
	item := models.GalleryItem{
		Title:     strings.TrimSpace(title),
		Caption:   strings.TrimSpace(caption),
		ImageURL:  url,
		MimeType:  detected.String(),
		SizeBytes: int64(len(payload)),
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		span.RecordError(err)
		return dto.GalleryItemResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionGalleryUpload,
		Target:   "gallery",
		TargetID: strconv.FormatUint(uint64(item.ID), 10),
		Details: map[string]interface{}{
			"mime_type":  detected.String(),
			"size_bytes": item.SizeBytes,
		},
	})

	return dto.NewGalleryItemResponse(item), nil
}

func (s *adminGalleryService) Update(ctx context.Context, id uint, payload dto.GalleryUpdateRequest, actor AuditActor) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryNotFound
		}
		return dto.GalleryItemResponse{}, err
	}

	item.Title = strings.TrimSpace(payload.Title)
	item.Caption = strings.TrimSpace(payload.Caption)

	if err := s.repo.Update(ctx, &item); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionGalleryEdit,
		Target:   "gallery",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})

	return dto.NewGalleryItemResponse(item), nil
}

func (s *adminGalleryService) Delete(ctx context.Context, id uint, actor AuditActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryNotFound
		}
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   models.ActionGalleryDelete,
		Target:   "gallery",
		TargetID: strconv.FormatUint(uint64(id), 10),
	})
	return nil
}
