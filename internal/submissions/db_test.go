package submissions

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// setupSubmissionsTestDB builds the schema by hand because the production
// models carry postgres defaults sqlite cannot parse.
func setupSubmissionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  status TEXT NOT NULL DEFAULT 'pending',
  activation_token_hash TEXT,
  activation_expires_at DATETIME,
  reset_token_hash TEXT,
  reset_expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE jenis_pengajuan (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);`,
		`CREATE TABLE persyaratan (
  id TEXT PRIMARY KEY,
  jenis_pengajuan_id TEXT NOT NULL,
  nama_dokumen TEXT NOT NULL,
  wajib INTEGER NOT NULL DEFAULT 1
);`,
		`CREATE TABLE pengajuan (
  id TEXT PRIMARY KEY,
  kode_pengajuan TEXT NOT NULL UNIQUE,
  jenis_pengajuan_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  draft_document_url TEXT,
  final_document_url TEXT,
  admin_note TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE owner (
  id TEXT PRIMARY KEY,
  pengajuan_id TEXT NOT NULL UNIQUE,
  nama TEXT NOT NULL,
  nik TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  jenis_kelamin TEXT,
  npwp TEXT,
  agama TEXT,
  kewarganegaraan TEXT,
  alamat TEXT,
  pekerjaan TEXT,
  tanggal_lahir DATETIME
);`,
		`CREATE TABLE lahan (
  id TEXT PRIMARY KEY,
  pengajuan_id TEXT NOT NULL UNIQUE,
  no_surat_rt TEXT,
  tanggal_surat_rt DATETIME,
  nib TEXT,
  jenis_bangunan TEXT,
  luas_lahan NUMERIC,
  alamat_rt TEXT,
  alamat_rw TEXT,
  kode_pos TEXT,
  wilayah_kelurahan TEXT,
  wilayah_kecamatan TEXT,
  wilayah_kota TEXT
);`,
		`CREATE TABLE documents (
  id TEXT PRIMARY KEY,
  pengajuan_id TEXT NOT NULL,
  document_type TEXT NOT NULL,
  file_url TEXT,
  original_name TEXT,
  mime_type TEXT,
  file_size INTEGER,
  user_note TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  admin_note TEXT
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     "warga",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         enums.UserRoleUser,
		Status:       enums.UserStatusActive,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func seedJenis(t *testing.T, conn *gorm.DB, name string, requirements ...models.Persyaratan) *models.JenisPengajuan {
	t.Helper()
	jenis := &models.JenisPengajuan{ID: uuid.New(), Name: name}
	require.NoError(t, conn.Create(jenis).Error)
	for i := range requirements {
		requirements[i].ID = uuid.New()
		requirements[i].JenisPengajuanID = jenis.ID
		require.NoError(t, conn.Create(&requirements[i]).Error)
		jenis.Persyaratan = append(jenis.Persyaratan, requirements[i])
	}
	return jenis
}

func seedSubmission(t *testing.T, conn *gorm.DB, user *models.User, jenis *models.JenisPengajuan, status enums.SubmissionStatus, docStatuses ...enums.DocumentStatus) *models.Pengajuan {
	t.Helper()

	submission := &models.Pengajuan{
		ID:               uuid.New(),
		KodePengajuan:    GenerateKode(time.Now()) + "-" + uuid.NewString()[:8],
		JenisPengajuanID: jenis.ID,
		UserID:           user.ID,
		Status:           status,
		Owner: &models.Owner{
			ID:   uuid.New(),
			Nama: "Budi Santoso",
			NIK:  "6471012508900001",
		},
		Lahan: &models.Lahan{
			ID: uuid.New(),
		},
	}
	for i, st := range docStatuses {
		submission.Documents = append(submission.Documents, models.Document{
			ID:           uuid.New(),
			DocumentType: "Dokumen " + string(rune('A'+i)),
			FileURL:      "https://files.example.com/doc.pdf",
			Status:       st,
		})
	}
	require.NoError(t, conn.Create(submission).Error)
	return submission
}
