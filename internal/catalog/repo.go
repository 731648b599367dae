package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateJenis inserts a submission type together with its requirements.
func (r *Repository) CreateJenis(ctx context.Context, jenis *models.JenisPengajuan) error {
	return r.db.WithContext(ctx).Create(jenis).Error
}

// ListJenis returns every submission type with its requirements preloaded.
func (r *Repository) ListJenis(ctx context.Context) ([]models.JenisPengajuan, error) {
	var list []models.JenisPengajuan
	err := r.db.WithContext(ctx).
		Preload("Persyaratan").
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindJenisByID loads one submission type with requirements.
func (r *Repository) FindJenisByID(ctx context.Context, id uuid.UUID) (*models.JenisPengajuan, error) {
	var jenis models.JenisPengajuan
	err := r.db.WithContext(ctx).
		Preload("Persyaratan").
		First(&jenis, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &jenis, nil
}

// ListPersyaratan returns requirement rows, optionally scoped to one type.
func (r *Repository) ListPersyaratan(ctx context.Context, jenisID *uuid.UUID) ([]models.Persyaratan, error) {
	q := r.db.WithContext(ctx).Order("nama_dokumen ASC")
	if jenisID != nil {
		q = q.Where("jenis_pengajuan_id = ?", *jenisID)
	}
	var list []models.Persyaratan
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CreatePersyaratan appends one requirement row.
func (r *Repository) CreatePersyaratan(ctx context.Context, req *models.Persyaratan) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// FindPersyaratanByID loads one requirement row.
func (r *Repository) FindPersyaratanByID(ctx context.Context, id uuid.UUID) (*models.Persyaratan, error) {
	var req models.Persyaratan
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdatePersyaratan applies the provided column updates.
func (r *Repository) UpdatePersyaratan(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Persyaratan{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeletePersyaratan removes one requirement row.
func (r *Repository) DeletePersyaratan(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Persyaratan{}, "id = ?", id).Error
}
