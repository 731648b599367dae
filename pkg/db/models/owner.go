package models

import (
	"time"

	"github.com/google/uuid"
)

// Owner holds the personal identity of the land owner named on a pengajuan.
// Field names follow the KTP vocabulary the frontend submits.
type Owner struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PengajuanID     uuid.UUID  `gorm:"column:pengajuan_id;type:uuid;not null;uniqueIndex"`
	Nama            string     `gorm:"column:nama;not null"`
	NIK             string     `gorm:"column:nik;not null"`
	Email           *string    `gorm:"column:email"`
	Phone           *string    `gorm:"column:phone"`
	JenisKelamin    *string    `gorm:"column:jenis_kelamin"`
	NPWP            *string    `gorm:"column:npwp"`
	Agama           *string    `gorm:"column:agama"`
	Kewarganegaraan *string    `gorm:"column:kewarganegaraan"`
	Alamat          *string    `gorm:"column:alamat"`
	Pekerjaan       *string    `gorm:"column:pekerjaan"`
	TanggalLahir    *time.Time `gorm:"column:tanggal_lahir"`
}

func (Owner) TableName() string { return "owner" }
