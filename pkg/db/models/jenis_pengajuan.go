package models

import "github.com/google/uuid"

// JenisPengajuan is a catalog entry: one kind of land/document request the
// office handles (e.g. "IMB"). The name doubles as the letter template key.
type JenisPengajuan struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string        `gorm:"column:name;not null;uniqueIndex"`
	Persyaratan []Persyaratan `gorm:"foreignKey:JenisPengajuanID"`
}

func (JenisPengajuan) TableName() string { return "jenis_pengajuan" }
