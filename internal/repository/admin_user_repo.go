package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

// AdminUserRepository manages back-office account persistence.
type AdminUserRepository interface {
	List(ctx context.Context) ([]models.AdminUser, error)
	GetByID(ctx context.Context, id uint) (models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	UpdateRole(ctx context.Context, id uint, role string) (models.AdminUser, error)
	Delete(ctx context.Context, id uint) error
}

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository constructs an admin user repository.
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) List(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *adminUserRepository) GetByID(ctx context.Context, id uint) (models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	return user, err
}

func (r *adminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *adminUserRepository) UpdateRole(ctx context.Context, id uint, role string) (models.AdminUser, error) {
	result := r.db.WithContext(ctx).Model(&models.AdminUser{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return models.AdminUser{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.AdminUser{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *adminUserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.AdminUser{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SettingsRepository manages the single-row site settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (models.SiteSettings, error)
	Save(ctx context.Context, settings *models.SiteSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs a settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	return settings, err
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.SiteSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
