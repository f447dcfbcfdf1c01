package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

// MemberFilter narrows member listing queries.
type MemberFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// MemberRepository manages member persistence.
type MemberRepository interface {
	List(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error)
	ListActive(ctx context.Context, limit int) ([]models.Member, error)
	GetByID(ctx context.Context, id uint) (models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Member, error)
	Delete(ctx context.Context, id uint) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository constructs a member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) List(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Member{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToLower(filter.Status))
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

	var members []models.Member
	if err := query.Order("created_at DESC").Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepository) ListActive(ctx context.Context, limit int) ([]models.Member, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", models.MemberStatusActive).
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var members []models.Member
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	return member, err
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Member, error) {
	result := r.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Member{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Member{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
