package catalog

import (
	"github.com/google/uuid"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
)

// JenisPengajuanDTO is the catalog entry returned to clients. When the lookup
// runs for a citizen it also reports whether they already have an active
// submission of this type.
type JenisPengajuanDTO struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Persyaratan         []PersyaratanDTO `json:"persyaratan"`
	HasActiveSubmission bool             `json:"has_active_submission"`
}

// PersyaratanDTO names one required or optional document of a catalog entry.
type PersyaratanDTO struct {
	ID          uuid.UUID `json:"id"`
	NamaDokumen string    `json:"nama_dokumen"`
	Wajib       bool      `json:"wajib"`
}

// CreateJenisPengajuanRequest registers a new submission type, optionally with
// its initial requirement list.
type CreateJenisPengajuanRequest struct {
	Name        string                     `json:"name" validate:"required,min=2,max=120"`
	Persyaratan []CreatePersyaratanPayload `json:"persyaratan" validate:"omitempty,dive"`
}

// CreatePersyaratanPayload is one requirement inside a create request.
type CreatePersyaratanPayload struct {
	NamaDokumen string `json:"nama_dokumen" validate:"required,min=2,max=160"`
	Wajib       *bool  `json:"wajib"`
}

// CreatePersyaratanRequest appends a requirement to an existing type.
type CreatePersyaratanRequest struct {
	JenisPengajuanID uuid.UUID `json:"jenis_pengajuan_id" validate:"required"`
	NamaDokumen      string    `json:"nama_dokumen" validate:"required,min=2,max=160"`
	Wajib            *bool     `json:"wajib"`
}

// UpdatePersyaratanRequest renames a requirement or toggles its mandatory flag.
type UpdatePersyaratanRequest struct {
	NamaDokumen *string `json:"nama_dokumen" validate:"omitempty,min=2,max=160"`
	Wajib       *bool   `json:"wajib"`
}

func persyaratanFromModel(p models.Persyaratan) PersyaratanDTO {
	return PersyaratanDTO{
		ID:          p.ID,
		NamaDokumen: p.NamaDokumen,
		Wajib:       p.Wajib,
	}
}

func jenisFromModel(j models.JenisPengajuan) JenisPengajuanDTO {
	reqs := make([]PersyaratanDTO, 0, len(j.Persyaratan))
	for _, p := range j.Persyaratan {
		reqs = append(reqs, persyaratanFromModel(p))
	}
	return JenisPengajuanDTO{
		ID:          j.ID,
		Name:        j.Name,
		Persyaratan: reqs,
	}
}
