package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// Pengajuan is the root of one submission. It always owns exactly one Owner
// and one Lahan row plus any number of Documents; the three are created in the
// same transaction as the pengajuan itself.
type Pengajuan struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	KodePengajuan    string                 `gorm:"column:kode_pengajuan;not null"`
	JenisPengajuanID uuid.UUID              `gorm:"column:jenis_pengajuan_id;type:uuid;not null"`
	UserID           uuid.UUID              `gorm:"column:user_id;type:uuid;not null"`
	Status           enums.SubmissionStatus `gorm:"column:status;not null;default:'pending'"`
	DraftDocumentURL *string                `gorm:"column:draft_document_url"`
	FinalDocumentURL *string                `gorm:"column:final_document_url"`
	AdminNote        *string                `gorm:"column:admin_note"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	Owner          *Owner          `gorm:"foreignKey:PengajuanID"`
	Lahan          *Lahan          `gorm:"foreignKey:PengajuanID"`
	Documents      []Document      `gorm:"foreignKey:PengajuanID"`
	JenisPengajuan *JenisPengajuan `gorm:"foreignKey:JenisPengajuanID"`
	User           *User           `gorm:"foreignKey:UserID"`
}

func (Pengajuan) TableName() string { return "pengajuan" }
