package docgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
)

// LetterContext is the typed data handed to a letter template. Templates refer
// to these fields by name, so renames here are breaking changes for the
// template files under the configured template directory.
type LetterContext struct {
	LetterNumber string
	LetterCity   string
	IssueDate    string
	ApproverName string

	OwnerName        string
	OwnerNIK         string
	OwnerBirthDate   string
	OwnerReligion    string
	OwnerNationality string
	OwnerOccupation  string
	OwnerAddress     string

	NoSuratRT      string
	TanggalSuratRT string
	NIB            string
	JenisBangunan  string
	LuasLahan      string
	LandAddress    string

	SubmissionType string
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatIndonesianDate renders "28 Agustus 2026" style dates for letters.
func FormatIndonesianDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// CompositeAddress joins the non-empty locality parts with ", " the way the
// issued letters print them.
func CompositeAddress(lahan *models.Lahan) string {
	if lahan == nil {
		return ""
	}
	parts := []string{}
	appendPart := func(prefix string, value *string) {
		if value == nil {
			return
		}
		v := strings.TrimSpace(*value)
		if v == "" {
			return
		}
		if prefix != "" {
			v = prefix + " " + v
		}
		parts = append(parts, v)
	}
	appendPart("RT", lahan.AlamatRT)
	appendPart("RW", lahan.AlamatRW)
	appendPart("Kelurahan", lahan.WilayahKelurahan)
	appendPart("Kecamatan", lahan.WilayahKecamatan)
	appendPart("", lahan.WilayahKota)
	appendPart("", lahan.KodePos)
	return strings.Join(parts, ", ")
}

// BuildLetterContext assembles the template context from a loaded aggregate.
func BuildLetterContext(submission *models.Pengajuan, city, approver string, issuedAt time.Time) LetterContext {
	ctx := LetterContext{
		LetterNumber: submission.KodePengajuan,
		LetterCity:   city,
		IssueDate:    FormatIndonesianDate(issuedAt),
		ApproverName: approver,
		LandAddress:  CompositeAddress(submission.Lahan),
	}
	if submission.JenisPengajuan != nil {
		ctx.SubmissionType = submission.JenisPengajuan.Name
	}

	if owner := submission.Owner; owner != nil {
		ctx.OwnerName = owner.Nama
		ctx.OwnerNIK = owner.NIK
		ctx.OwnerReligion = deref(owner.Agama)
		ctx.OwnerNationality = deref(owner.Kewarganegaraan)
		ctx.OwnerOccupation = deref(owner.Pekerjaan)
		ctx.OwnerAddress = deref(owner.Alamat)
		if owner.TanggalLahir != nil {
			ctx.OwnerBirthDate = FormatIndonesianDate(*owner.TanggalLahir)
		}
	}

	if lahan := submission.Lahan; lahan != nil {
		ctx.NoSuratRT = deref(lahan.NoSuratRT)
		ctx.NIB = deref(lahan.NIB)
		ctx.JenisBangunan = deref(lahan.JenisBangunan)
		if lahan.TanggalSuratRT != nil {
			ctx.TanggalSuratRT = FormatIndonesianDate(*lahan.TanggalSuratRT)
		}
		if lahan.LuasLahan != nil {
			ctx.LuasLahan = lahan.LuasLahan.String()
		}
	}

	return ctx
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
