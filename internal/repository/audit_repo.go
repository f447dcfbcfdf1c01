package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

// AuditRepository persists the append-only admin audit trail. There is no
// update or delete path on purpose.
type AuditRepository interface {
	Create(ctx context.Context, record *models.AuditRecord) error
	ListRecent(ctx context.Context, limit int, adminEmail string) ([]models.AuditRecord, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository constructs the audit repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, record *models.AuditRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int, adminEmail string) ([]models.AuditRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditRecord{})

	if email := strings.TrimSpace(adminEmail); email != "" {
		query = query.Where("admin_email = ?", email)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.AuditRecord
	if err := query.Order("recorded_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
