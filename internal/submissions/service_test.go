package submissions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
)

// passthroughTx satisfies the service's transaction surface without a real
// transaction; sqlite runs each statement directly.
type passthroughTx struct {
	conn *gorm.DB
}

func (p passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(p.conn)
}

type stubTypeRepo struct {
	jenis *models.JenisPengajuan
}

func (s stubTypeRepo) FindJenisByID(ctx context.Context, id uuid.UUID) (*models.JenisPengajuan, error) {
	if s.jenis == nil || s.jenis.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.jenis, nil
}

func buildSubmissionsService(t *testing.T, conn *gorm.DB, jenis *models.JenisPengajuan, policy enums.RejectionPolicy) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		DB:              passthroughTx{conn: conn},
		Repo:            NewRepository(conn),
		Types:           stubTypeRepo{jenis: jenis},
		RejectionPolicy: policy,
	})
	require.NoError(t, err)
	return svc
}

func validCreateRequest(jenisID uuid.UUID) CreateSubmissionRequest {
	birth := "1990-08-25"
	return CreateSubmissionRequest{
		JenisPengajuanID: jenisID,
		Owner: OwnerPayload{
			Nama:         "Budi Santoso",
			NIK:          "6471012508900001",
			TanggalLahir: &birth,
		},
		Lahan: LahanPayload{},
		Documents: []DocumentPayload{
			{DocumentType: "KTP", FileURL: "https://files.example.com/ktp.pdf"},
			{DocumentType: "Surat RT", FileURL: "https://files.example.com/rt.pdf"},
		},
	}
}

func TestServiceCreateSubmission(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	user := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT",
		models.Persyaratan{NamaDokumen: "KTP", Wajib: true},
		models.Persyaratan{NamaDokumen: "Surat RT", Wajib: true},
	)
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)
	actor := Actor{ID: user.ID, Role: enums.UserRoleUser}

	dto, err := svc.Create(context.Background(), actor, validCreateRequest(jenis.ID))
	require.NoError(t, err)
	assert.Equal(t, enums.SubmissionStatusPending, dto.Status)
	assert.NotEmpty(t, dto.KodePengajuan)
	assert.Len(t, dto.Documents, 2)
	for _, doc := range dto.Documents {
		assert.Equal(t, enums.DocumentStatusPending, doc.Status)
	}

	// a second live submission of the same type is refused
	_, err = svc.Create(context.Background(), actor, validCreateRequest(jenis.ID))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceCreateValidatesDocumentSet(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	user := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT",
		models.Persyaratan{NamaDokumen: "KTP", Wajib: true},
		models.Persyaratan{NamaDokumen: "NPWP", Wajib: false},
	)
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)
	actor := Actor{ID: user.ID, Role: enums.UserRoleUser}

	req := validCreateRequest(jenis.ID)
	req.Documents = []DocumentPayload{
		{DocumentType: "Surat RT", FileURL: "https://files.example.com/rt.pdf"},
	}

	_, err := svc.Create(context.Background(), actor, req)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"KTP"}, details["missing"])
	assert.Equal(t, []string{"Surat RT"}, details["unexpected"])
}

func TestServiceReviewDocumentDerivesStatus(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	user := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT")
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)

	submission := seedSubmission(t, conn, user, jenis, enums.SubmissionStatusPending,
		enums.DocumentStatusPending, enums.DocumentStatusPending)

	note := "unreadable"
	dto, err := svc.ReviewDocument(context.Background(), submission.Documents[0].ID, ReviewDocumentRequest{
		Status:    enums.DocumentStatusRejected,
		AdminNote: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SubmissionStatusAwaitingRevision, dto.Status)

	// approving everything promotes the submission
	note2 := "ok"
	_, err = svc.ReviewDocument(context.Background(), submission.Documents[0].ID, ReviewDocumentRequest{
		Status:    enums.DocumentStatusApproved,
		AdminNote: &note2,
	})
	require.NoError(t, err)
	dto, err = svc.ReviewDocument(context.Background(), submission.Documents[1].ID, ReviewDocumentRequest{
		Status: enums.DocumentStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SubmissionStatusApproved, dto.Status)
}

func TestServiceReviewDocumentRejectsPendingVerdict(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	jenis := seedJenis(t, conn, "SKT")
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)

	_, err := svc.ReviewDocument(context.Background(), uuid.New(), ReviewDocumentRequest{
		Status: enums.DocumentStatusPending,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateRestartsReview(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	user := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT",
		models.Persyaratan{NamaDokumen: "KTP", Wajib: true},
		models.Persyaratan{NamaDokumen: "Surat RT", Wajib: true},
	)
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)
	actor := Actor{ID: user.ID, Role: enums.UserRoleUser}

	submission := seedSubmission(t, conn, user, jenis, enums.SubmissionStatusAwaitingRevision,
		enums.DocumentStatusRejected, enums.DocumentStatusApproved)

	req := UpdateSubmissionRequest{
		Owner: OwnerPayload{Nama: "Siti Aminah", NIK: "6471014107910002"},
		Lahan: LahanPayload{},
		Documents: []DocumentPayload{
			{DocumentType: "KTP", FileURL: "https://files.example.com/ktp2.pdf"},
			{DocumentType: "Surat RT", FileURL: "https://files.example.com/rt2.pdf"},
		},
	}

	dto, err := svc.Update(context.Background(), actor, submission.ID, req)
	require.NoError(t, err)
	assert.Equal(t, enums.SubmissionStatusPending, dto.Status)
	require.NotNil(t, dto.Owner)
	assert.Equal(t, "Siti Aminah", dto.Owner.Nama)
	require.Len(t, dto.Documents, 2)
	for _, doc := range dto.Documents {
		assert.Equal(t, enums.DocumentStatusPending, doc.Status)
		assert.Nil(t, doc.AdminNote)
	}
}

func TestServiceTerminalSubmissionIsImmutable(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	user := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT")
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)
	actor := Actor{ID: user.ID, Role: enums.UserRoleUser}

	submission := seedSubmission(t, conn, user, jenis, enums.SubmissionStatusCompleted,
		enums.DocumentStatusApproved)

	_, err := svc.Update(context.Background(), actor, submission.ID, UpdateSubmissionRequest{
		Documents: []DocumentPayload{{DocumentType: "KTP", FileURL: "https://files.example.com/x.pdf"}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeState, typed.Code())

	_, err = svc.ForceReject(context.Background(), submission.ID, ForceRejectRequest{AdminNote: "no"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeState, typed.Code())
}

func TestServiceForceReject(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	user := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT")
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)

	submission := seedSubmission(t, conn, user, jenis, enums.SubmissionStatusPending,
		enums.DocumentStatusPending)

	_, err := svc.ForceReject(context.Background(), submission.ID, ForceRejectRequest{AdminNote: "   "})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	dto, err := svc.ForceReject(context.Background(), submission.ID, ForceRejectRequest{AdminNote: "duplicate filing"})
	require.NoError(t, err)
	assert.Equal(t, enums.SubmissionStatusRejected, dto.Status)
	require.NotNil(t, dto.AdminNote)
	assert.Equal(t, "duplicate filing", *dto.AdminNote)
}

func TestServiceGetAuthorization(t *testing.T) {
	conn := setupSubmissionsTestDB(t)
	owner := seedUser(t, conn)
	other := seedUser(t, conn)
	jenis := seedJenis(t, conn, "SKT")
	svc := buildSubmissionsService(t, conn, jenis, enums.RejectionPolicyAwaitRevision)

	submission := seedSubmission(t, conn, owner, jenis, enums.SubmissionStatusPending)

	_, err := svc.Get(context.Background(), Actor{ID: other.ID, Role: enums.UserRoleUser}, submission.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Get(context.Background(), Actor{ID: other.ID, Role: enums.UserRoleAdmin}, submission.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), Actor{ID: owner.ID, Role: enums.UserRoleUser}, submission.ID)
	require.NoError(t, err)
}
