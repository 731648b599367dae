package models

import (
	"github.com/google/uuid"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// Document is one uploaded file attached to a pengajuan. Each is reviewed
// independently; the parent submission status is derived from the set.
type Document struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PengajuanID  uuid.UUID            `gorm:"column:pengajuan_id;type:uuid;not null;index"`
	DocumentType string               `gorm:"column:document_type;not null"`
	FileURL      string               `gorm:"column:file_url;type:text"`
	OriginalName *string              `gorm:"column:original_name"`
	MimeType     *string              `gorm:"column:mime_type"`
	FileSize     *int64               `gorm:"column:file_size"`
	UserNote     *string              `gorm:"column:user_note"`
	Status       enums.DocumentStatus `gorm:"column:status;not null;default:'pending'"`
	AdminNote    *string              `gorm:"column:admin_note"`
}

func (Document) TableName() string { return "documents" }
