package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// passthroughTx satisfies txRunner by handing the callback the plain
// connection. sqlite in-memory keeps the assertions honest without a
// postgres instance.
type passthroughTx struct {
	conn *gorm.DB
}

func (p passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(p.conn)
}

// Schema is created by hand because the production models carry postgres
// defaults sqlite cannot parse.
func setupAdminTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

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
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func countRows(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func TestResetDatabaseWipesSubmissionsAndCitizens(t *testing.T) {
	conn := setupAdminTestDB(t)
	ctx := context.Background()

	admin := &models.User{
		ID:           uuid.New(),
		Username:     "petugas",
		Email:        "petugas@example.com",
		PasswordHash: "x",
		Role:         enums.UserRoleAdmin,
		Status:       enums.UserStatusActive,
	}
	citizen := &models.User{
		ID:           uuid.New(),
		Username:     "warga",
		Email:        "warga@example.com",
		PasswordHash: "x",
		Role:         enums.UserRoleUser,
		Status:       enums.UserStatusActive,
	}
	for _, u := range []*models.User{admin, citizen} {
		if err := conn.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	jenis := &models.JenisPengajuan{ID: uuid.New(), Name: "Surat Keterangan Tanah"}
	if err := conn.Create(jenis).Error; err != nil {
		t.Fatalf("seed jenis: %v", err)
	}
	req := &models.Persyaratan{ID: uuid.New(), JenisPengajuanID: jenis.ID, NamaDokumen: "KTP", Wajib: true}
	if err := conn.Create(req).Error; err != nil {
		t.Fatalf("seed persyaratan: %v", err)
	}

	submission := &models.Pengajuan{
		ID:               uuid.New(),
		KodePengajuan:    "PJN-20260828-090507",
		JenisPengajuanID: jenis.ID,
		UserID:           citizen.ID,
		Status:           enums.SubmissionStatusPending,
		Owner: &models.Owner{
			ID:   uuid.New(),
			Nama: "Budi Santoso",
			NIK:  "6471012508900001",
		},
		Lahan: &models.Lahan{ID: uuid.New()},
		Documents: []models.Document{
			{ID: uuid.New(), DocumentType: "KTP", Status: enums.DocumentStatusPending},
		},
	}
	if err := conn.Create(submission).Error; err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	svc, err := NewService(ServiceParams{DB: passthroughTx{conn: conn}})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.ResetDatabase(ctx); err != nil {
		t.Fatalf("reset database: %v", err)
	}

	checks := []struct {
		name  string
		model any
		want  int64
	}{
		{"documents", &models.Document{}, 0},
		{"owner", &models.Owner{}, 0},
		{"lahan", &models.Lahan{}, 0},
		{"pengajuan", &models.Pengajuan{}, 0},
		{"users", &models.User{}, 1},
		{"jenis_pengajuan", &models.JenisPengajuan{}, 1},
		{"persyaratan", &models.Persyaratan{}, 1},
	}
	for _, check := range checks {
		if got := countRows(t, conn, check.model); got != check.want {
			t.Fatalf("%s: expected %d rows, got %d", check.name, check.want, got)
		}
	}

	var survivor models.User
	if err := conn.First(&survivor).Error; err != nil {
		t.Fatalf("load surviving user: %v", err)
	}
	if survivor.ID != admin.ID {
		t.Fatalf("expected the admin account to survive, got %s", survivor.Username)
	}
}

func TestNewServiceRequiresTxRunner(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without database client")
	}
}
