package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lahan carries the parcel data of a pengajuan: supporting RT letter, land
// registry number (NIB), area, and the administrative region breakdown used to
// assemble the letter address.
type Lahan struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PengajuanID      uuid.UUID        `gorm:"column:pengajuan_id;type:uuid;not null;uniqueIndex"`
	NoSuratRT        *string          `gorm:"column:no_surat_rt"`
	TanggalSuratRT   *time.Time       `gorm:"column:tanggal_surat_rt"`
	NIB              *string          `gorm:"column:nib"`
	JenisBangunan    *string          `gorm:"column:jenis_bangunan"`
	LuasLahan        *decimal.Decimal `gorm:"column:luas_lahan;type:decimal(10,2)"`
	AlamatRT         *string          `gorm:"column:alamat_rt"`
	AlamatRW         *string          `gorm:"column:alamat_rw"`
	KodePos          *string          `gorm:"column:kode_pos"`
	WilayahKelurahan *string          `gorm:"column:wilayah_kelurahan"`
	WilayahKecamatan *string          `gorm:"column:wilayah_kecamatan"`
	WilayahKota      *string          `gorm:"column:wilayah_kota"`
}

func (Lahan) TableName() string { return "lahan" }
