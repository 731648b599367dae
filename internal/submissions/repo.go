package submissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// Repository exposes submission persistence operations. Construct it over the
// shared connection for reads, or over a transaction handle inside WithTx for
// multi-row writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a submissions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the pengajuan aggregate. GORM persists the associated Owner,
// Lahan, and Documents rows in the same statement batch, so calling this inside
// a transaction makes the whole aggregate atomic.
func (r *Repository) Create(ctx context.Context, submission *models.Pengajuan) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// FindByID loads the full aggregate.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Pengajuan, error) {
	var submission models.Pengajuan
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Lahan").
		Preload("Documents").
		Preload("JenisPengajuan").
		Preload("User").
		First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListAll returns every submission with user and type preloaded, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Pengajuan, error) {
	var list []models.Pengajuan
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Lahan").
		Preload("Documents").
		Preload("JenisPengajuan").
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByUser returns one citizen's submissions, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Pengajuan, error) {
	var list []models.Pengajuan
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Lahan").
		Preload("Documents").
		Preload("JenisPengajuan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByStatus returns submissions in one state, most recently touched first.
func (r *Repository) ListByStatus(ctx context.Context, status enums.SubmissionStatus) ([]models.Pengajuan, error) {
	var list []models.Pengajuan
	err := r.db.WithContext(ctx).
		Preload("JenisPengajuan").
		Preload("User").
		Where("status = ?", status).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindActiveByUserAndType returns the user's live submission of a type, if any.
// Active means pending or menunggu_perbaikan.
func (r *Repository) FindActiveByUserAndType(ctx context.Context, userID, typeID uuid.UUID) (*models.Pengajuan, error) {
	var submission models.Pengajuan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND jenis_pengajuan_id = ? AND status IN ?", userID, typeID, []enums.SubmissionStatus{
			enums.SubmissionStatusPending,
			enums.SubmissionStatusAwaitingRevision,
		}).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ActiveTypeIDsForUser maps each submission type to the status of the user's
// live submission of it. Feeds the catalog listing annotation.
func (r *Repository) ActiveTypeIDsForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]enums.SubmissionStatus, error) {
	var rows []models.Pengajuan
	err := r.db.WithContext(ctx).
		Select("jenis_pengajuan_id", "status").
		Where("user_id = ? AND status IN ?", userID, []enums.SubmissionStatus{
			enums.SubmissionStatusPending,
			enums.SubmissionStatusAwaitingRevision,
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	active := make(map[uuid.UUID]enums.SubmissionStatus, len(rows))
	for _, row := range rows {
		active[row.JenisPengajuanID] = row.Status
	}
	return active, nil
}

// UpdateStatus writes the submission status and optional admin note.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SubmissionStatus, adminNote *string) error {
	updates := map[string]any{"status": status}
	if adminNote != nil {
		updates["admin_note"] = *adminNote
	}
	return r.db.WithContext(ctx).
		Model(&models.Pengajuan{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ReplaceOwner overwrites the 1:1 owner row for a submission.
func (r *Repository) ReplaceOwner(ctx context.Context, pengajuanID uuid.UUID, owner *models.Owner) error {
	if err := r.db.WithContext(ctx).
		Where("pengajuan_id = ?", pengajuanID).
		Delete(&models.Owner{}).Error; err != nil {
		return err
	}
	owner.PengajuanID = pengajuanID
	return r.db.WithContext(ctx).Create(owner).Error
}

// ReplaceLahan overwrites the 1:1 parcel row for a submission.
func (r *Repository) ReplaceLahan(ctx context.Context, pengajuanID uuid.UUID, lahan *models.Lahan) error {
	if err := r.db.WithContext(ctx).
		Where("pengajuan_id = ?", pengajuanID).
		Delete(&models.Lahan{}).Error; err != nil {
		return err
	}
	lahan.PengajuanID = pengajuanID
	return r.db.WithContext(ctx).Create(lahan).Error
}

// ReplaceDocuments swaps the document set for fresh rows.
func (r *Repository) ReplaceDocuments(ctx context.Context, pengajuanID uuid.UUID, docs []models.Document) error {
	if err := r.db.WithContext(ctx).
		Where("pengajuan_id = ?", pengajuanID).
		Delete(&models.Document{}).Error; err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		docs[i].PengajuanID = pengajuanID
	}
	return r.db.WithContext(ctx).Create(&docs).Error
}

// Delete removes the submission; child rows go with it via FK cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Pengajuan{}, "id = ?", id).Error
}

// FindDocumentByID loads one document row.
func (r *Repository) FindDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns the full document set of a submission.
func (r *Repository) ListDocuments(ctx context.Context, pengajuanID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.WithContext(ctx).
		Where("pengajuan_id = ?", pengajuanID).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// UpdateDocumentReview records an admin verdict on one document.
func (r *Repository) UpdateDocumentReview(ctx context.Context, id uuid.UUID, status enums.DocumentStatus, adminNote *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"admin_note": adminNote,
		}).Error
}

// SetDraftURL persists the uploaded draft letter location.
func (r *Repository) SetDraftURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Pengajuan{}).
		Where("id = ?", id).
		Update("draft_document_url", url).Error
}

// PromoteDraftToFinal moves the draft URL into final, clears the draft, and
// completes the submission in one statement.
func (r *Repository) PromoteDraftToFinal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Pengajuan{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"final_document_url": gorm.Expr("draft_document_url"),
			"draft_document_url": nil,
			"status":             enums.SubmissionStatusCompleted,
		}).Error
}
