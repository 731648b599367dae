package submissions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// Actor identifies who is calling a submission operation; ownership and role
// checks run against it.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// IsAdmin reports whether the actor holds the staff role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// OwnerPayload is the land owner identity block of a create/update request.
// Field names follow the KTP vocabulary the frontend submits.
type OwnerPayload struct {
	Nama            string  `json:"nama" validate:"required,min=2,max=160"`
	NIK             string  `json:"nik" validate:"required,len=16,numeric"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	JenisKelamin    *string `json:"jenis_kelamin" validate:"omitempty,oneof=L P"`
	NPWP            *string `json:"npwp"`
	Agama           *string `json:"agama"`
	Kewarganegaraan *string `json:"kewarganegaraan"`
	Alamat          *string `json:"alamat"`
	Pekerjaan       *string `json:"pekerjaan"`
	TanggalLahir    *string `json:"tanggal_lahir" validate:"omitempty,datetime=2006-01-02"`
}

// LahanPayload is the parcel block of a create/update request.
type LahanPayload struct {
	NoSuratRT        *string          `json:"no_surat_rt"`
	TanggalSuratRT   *string          `json:"tanggal_surat_rt" validate:"omitempty,datetime=2006-01-02"`
	NIB              *string          `json:"nib"`
	JenisBangunan    *string          `json:"jenis_bangunan"`
	LuasLahan        *decimal.Decimal `json:"luas_lahan"`
	AlamatRT         *string          `json:"alamat_rt"`
	AlamatRW         *string          `json:"alamat_rw"`
	KodePos          *string          `json:"kode_pos"`
	WilayahKelurahan *string          `json:"wilayah_kelurahan"`
	WilayahKecamatan *string          `json:"wilayah_kecamatan"`
	WilayahKota      *string          `json:"wilayah_kota"`
}

// DocumentPayload is one uploaded document reference in a create/update request.
type DocumentPayload struct {
	DocumentType string  `json:"document_type" validate:"required,min=2,max=160"`
	FileURL      string  `json:"file_url" validate:"required,url"`
	OriginalName *string `json:"original_name"`
	MimeType     *string `json:"mime_type"`
	FileSize     *int64  `json:"file_size" validate:"omitempty,min=0"`
	UserNote     *string `json:"user_note"`
}

// CreateSubmissionRequest is the full aggregate a citizen submits.
type CreateSubmissionRequest struct {
	JenisPengajuanID uuid.UUID         `json:"jenis_pengajuan_id" validate:"required"`
	Owner            OwnerPayload      `json:"owner" validate:"required"`
	Lahan            LahanPayload      `json:"lahan" validate:"required"`
	Documents        []DocumentPayload `json:"documents" validate:"required,min=1,dive"`
}

// UpdateSubmissionRequest mirrors the create shape; the whole aggregate is
// replaced and the review cycle restarts.
type UpdateSubmissionRequest struct {
	Owner     OwnerPayload      `json:"owner" validate:"required"`
	Lahan     LahanPayload      `json:"lahan" validate:"required"`
	Documents []DocumentPayload `json:"documents" validate:"required,min=1,dive"`
}

// ReviewDocumentRequest records an admin verdict on one document.
type ReviewDocumentRequest struct {
	Status    enums.DocumentStatus `json:"status" validate:"required,oneof=approved rejected"`
	AdminNote *string              `json:"admin_note"`
}

// ForceRejectRequest rejects the whole submission regardless of its documents.
type ForceRejectRequest struct {
	AdminNote string `json:"admin_note" validate:"required,min=2"`
}

// OwnerDTO mirrors the stored owner identity.
type OwnerDTO struct {
	Nama            string  `json:"nama"`
	NIK             string  `json:"nik"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	JenisKelamin    *string `json:"jenis_kelamin,omitempty"`
	NPWP            *string `json:"npwp,omitempty"`
	Agama           *string `json:"agama,omitempty"`
	Kewarganegaraan *string `json:"kewarganegaraan,omitempty"`
	Alamat          *string `json:"alamat,omitempty"`
	Pekerjaan       *string `json:"pekerjaan,omitempty"`
	TanggalLahir    *string `json:"tanggal_lahir,omitempty"`
}

// LahanDTO mirrors the stored parcel data.
type LahanDTO struct {
	NoSuratRT        *string          `json:"no_surat_rt,omitempty"`
	TanggalSuratRT   *string          `json:"tanggal_surat_rt,omitempty"`
	NIB              *string          `json:"nib,omitempty"`
	JenisBangunan    *string          `json:"jenis_bangunan,omitempty"`
	LuasLahan        *decimal.Decimal `json:"luas_lahan,omitempty"`
	AlamatRT         *string          `json:"alamat_rt,omitempty"`
	AlamatRW         *string          `json:"alamat_rw,omitempty"`
	KodePos          *string          `json:"kode_pos,omitempty"`
	WilayahKelurahan *string          `json:"wilayah_kelurahan,omitempty"`
	WilayahKecamatan *string          `json:"wilayah_kecamatan,omitempty"`
	WilayahKota      *string          `json:"wilayah_kota,omitempty"`
}

// DocumentDTO mirrors one stored document with its review verdict.
type DocumentDTO struct {
	ID           uuid.UUID            `json:"id"`
	DocumentType string               `json:"document_type"`
	FileURL      string               `json:"file_url"`
	OriginalName *string              `json:"original_name,omitempty"`
	MimeType     *string              `json:"mime_type,omitempty"`
	FileSize     *int64               `json:"file_size,omitempty"`
	UserNote     *string              `json:"user_note,omitempty"`
	Status       enums.DocumentStatus `json:"status"`
	AdminNote    *string              `json:"admin_note,omitempty"`
}

// UserSummary is the compact account block embedded in admin listings.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// SubmissionDTO is the transport shape of a full pengajuan aggregate.
type SubmissionDTO struct {
	ID                 uuid.UUID              `json:"id"`
	KodePengajuan      string                 `json:"kode_pengajuan"`
	JenisPengajuanID   uuid.UUID              `json:"jenis_pengajuan_id"`
	JenisPengajuanName string                 `json:"jenis_pengajuan_name,omitempty"`
	Status             enums.SubmissionStatus `json:"status"`
	DraftDocumentURL   *string                `json:"draft_document_url,omitempty"`
	FinalDocumentURL   *string                `json:"final_document_url,omitempty"`
	AdminNote          *string                `json:"admin_note,omitempty"`
	Owner              *OwnerDTO              `json:"owner,omitempty"`
	Lahan              *LahanDTO              `json:"lahan,omitempty"`
	Documents          []DocumentDTO          `json:"documents"`
	User               *UserSummary           `json:"user,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

/// UserGroupDTO is the admin listing unit: one citizen and their submissions.
type UserGroupDTO struct {
	User        UserSummary     `json:"user"`
	Submissions []SubmissionDTO `json:"pengajuan"`
}

const dateLayout = "2006-01-02"

func ownerFromModel(o *models.Owner) *OwnerDTO {
	if o == nil {
		return nil
	}
	dto := &OwnerDTO{
		Nama:            o.Nama,
		NIK:             o.NIK,
		Email:           o.Email,
		Phone:           o.Phone,
		JenisKelamin:    o.JenisKelamin,
		NPWP:            o.NPWP,
		Agama:           o.Agama,
		Kewarganegaraan: o.Kewarganegaraan,
		Alamat:          o.Alamat,
		Pekerjaan:       o.Pekerjaan,
	}
	if o.TanggalLahir != nil {
		formatted := o.TanggalLahir.Format(dateLayout)
		dto.TanggalLahir = &formatted
	}
	return dto
}

func lahanFromModel(l *models.Lahan) *LahanDTO {
	if l == nil {
		return nil
	}
	dto := &LahanDTO{
		NoSuratRT:        l.NoSuratRT,
		NIB:              l.NIB,
		JenisBangunan:    l.JenisBangunan,
		LuasLahan:        l.LuasLahan,
		AlamatRT:         l.AlamatRT,
		AlamatRW:         l.AlamatRW,
		KodePos:          l.KodePos,
		WilayahKelurahan: l.WilayahKelurahan,
		WilayahKecamatan: l.WilayahKecamatan,
		WilayahKota:      l.WilayahKota,
	}
	if l.TanggalSuratRT != nil {
		formatted := l.TanggalSuratRT.Format(dateLayout)
		dto.TanggalSuratRT = &formatted
	}
	return dto
}

func documentFromModel(d models.Document) DocumentDTO {
	return DocumentDTO{
		ID:           d.ID,
		DocumentType: d.DocumentType,
		FileURL:      d.FileURL,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		FileSize:     d.FileSize,
		UserNote:     d.UserNote,
		Status:       d.Status,
		AdminNote:    d.AdminNote,
	}
}

// FromModel converts a loaded pengajuan aggregate into its transport shape.
func FromModel(p *models.Pengajuan) *SubmissionDTO {
	if p == nil {
		return nil
	}

	docs := make([]DocumentDTO, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, documentFromModel(d))
	}

	dto := &SubmissionDTO{
		ID:               p.ID,
		KodePengajuan:    p.KodePengajuan,
		JenisPengajuanID: p.JenisPengajuanID,
		Status:           p.Status,
		DraftDocumentURL: p.DraftDocumentURL,
		FinalDocumentURL: p.FinalDocumentURL,
		AdminNote:        p.AdminNote,
		Owner:            ownerFromModel(p.Owner),
		Lahan:            lahanFromModel(p.Lahan),
		Documents:        docs,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.JenisPengajuan != nil {
		dto.JenisPengajuanName = p.JenisPengajuan.Name
	}
	if p.User != nil {
		dto.User = &UserSummary{
			ID:       p.User.ID,
			Username: p.User.Username,
			Email:    p.User.Email,
		}
	}
	return dto
}
