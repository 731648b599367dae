package models

import "github.com/google/uuid"

// Persyaratan names one document a submission of a given type must (wajib) or
// may include.
type Persyaratan struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	JenisPengajuanID uuid.UUID `gorm:"column:jenis_pengajuan_id;type:uuid;not null"`
	NamaDokumen      string    `gorm:"column:nama_dokumen;not null"`
	Wajib            bool      `gorm:"column:wajib;not null;default:true"`

	JenisPengajuan *JenisPengajuan `gorm:"foreignKey:JenisPengajuanID"`
}

func (Persyaratan) TableName() string { return "persyaratan" }
