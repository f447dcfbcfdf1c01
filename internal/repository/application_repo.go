package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

// ApplicationFilter narrows application listing queries.
type ApplicationFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// ApplicationRepository manages membership application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, int64, error)
	GetByID(ctx context.Context, id uint) (models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status string) (models.Application, error)
	ExistsByChecksum(ctx context.Context, checksum string) (bool, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository constructs an application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]models.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})

	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToLower(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var applications []models.Application
	if err := query.Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).First(&application, id).Error
	return application, err
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status string) (models.Application, error) {
	result := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return models.Application{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Application{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *applicationRepository) ExistsByChecksum(ctx context.Context, checksum string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("checksum = ?", checksum).
		Count(&count).Error
	return count > 0, err
}
