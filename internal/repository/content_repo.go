package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campus-itc/club-api/internal/models"
)

// NewsRepository manages news post persistence.
type NewsRepository interface {
	ListPublished(ctx context.Context, limit int) ([]models.NewsPost, error)
	List(ctx context.Context, page, pageSize int) ([]models.NewsPost, int64, error)
	GetByID(ctx context.Context, id uint) (models.NewsPost, error)
	Create(ctx context.Context, post *models.NewsPost) error
	Update(ctx context.Context, post *models.NewsPost) error
	Delete(ctx context.Context, id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository constructs a news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) ListPublished(ctx context.Context, limit int) ([]models.NewsPost, error) {
	query := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []models.NewsPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *newsRepository) List(ctx context.Context, page, pageSize int) ([]models.NewsPost, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NewsPost{})

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var posts []models.NewsPost
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (models.NewsPost, error) {
	var post models.NewsPost
	err := r.db.WithContext(ctx).First(&post, id).Error
	return post, err
}

func (r *newsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *newsRepository) Update(ctx context.Context, post *models.NewsPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.NewsPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GalleryRepository manages gallery item persistence.
type GalleryRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.GalleryItem, error)
	GetByID(ctx context.Context, id uint) (models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id uint) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository constructs a gallery repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) ListRecent(ctx context.Context, limit int) ([]models.GalleryItem, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id uint) (models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PanelistRepository manages panelist persistence.
type PanelistRepository interface {
	ListRanked(ctx context.Context) ([]models.Panelist, error)
	GetByID(ctx context.Context, id uint) (models.Panelist, error)
	Create(ctx context.Context, panelist *models.Panelist) error
	Update(ctx context.Context, panelist *models.Panelist) error
	Delete(ctx context.Context, id uint) error
}

type panelistRepository struct {
	db *gorm.DB
}

// NewPanelistRepository constructs a panelist repository.
func NewPanelistRepository(db *gorm.DB) PanelistRepository {
	return &panelistRepository{db: db}
}

func (r *panelistRepository) ListRanked(ctx context.Context) ([]models.Panelist, error) {
	var panelists []models.Panelist
	err := r.db.WithContext(ctx).Order("rank ASC, name ASC").Find(&panelists).Error
	return panelists, err
}

func (r *panelistRepository) GetByID(ctx context.Context, id uint) (models.Panelist, error) {
	var panelist models.Panelist
	err := r.db.WithContext(ctx).First(&panelist, id).Error
	return panelist, err
}

func (r *panelistRepository) Create(ctx context.Context, panelist *models.Panelist) error {
	return r.db.WithContext(ctx).Create(panelist).Error
}

func (r *panelistRepository) Update(ctx context.Context, panelist *models.Panelist) error {
	return r.db.WithContext(ctx).Save(panelist).Error
}

func (r *panelistRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Panelist{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
