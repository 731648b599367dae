package docgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
)

type stubSubmissionRepo struct {
	submission *models.Pengajuan
	draftURL   *string
	promoted   bool
}

func (r *stubSubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Pengajuan, error) {
	if r.submission == nil || r.submission.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.submission, nil
}

func (r *stubSubmissionRepo) SetDraftURL(ctx context.Context, id uuid.UUID, url string) error {
	r.draftURL = &url
	r.submission.DraftDocumentURL = &url
	return nil
}

func (r *stubSubmissionRepo) PromoteDraftToFinal(ctx context.Context, id uuid.UUID) error {
	r.promoted = true
	r.submission.FinalDocumentURL = r.submission.DraftDocumentURL
	r.submission.DraftDocumentURL = nil
	r.submission.Status = enums.SubmissionStatusCompleted
	return nil
}

type stubRenderer struct {
	out []byte
	err error
}

func (r stubRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return r.out, r.err
}

type stubUploader struct {
	url string
	err error

	lastFilename string
}

func (u *stubUploader) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	u.lastFilename = filename
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func approvedSubmission(typeName string) *models.Pengajuan {
	nama := "Budi Santoso"
	return &models.Pengajuan{
		ID:               uuid.New(),
		KodePengajuan:    "PJN-20260828-090507",
		Status:           enums.SubmissionStatusApproved,
		JenisPengajuan:   &models.JenisPengajuan{ID: uuid.New(), Name: typeName},
		Owner:            &models.Owner{Nama: nama, NIK: "6471012508900001"},
		Lahan:            &models.Lahan{},
		JenisPengajuanID: uuid.New(),
	}
}

func buildDocgenService(t *testing.T, repo *stubSubmissionRepo, renderer stubRenderer, uploader *stubUploader, templateDir string) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Renderer: renderer,
		Uploader: uploader,
		Config: config.DocGenConfig{
			TemplateDir:  templateDir,
			ApproverName: "Kepala Dinas",
			LetterCity:   "Balikpapan",
		},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServicePrepareExecutesTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := `<p>{{.LetterNumber}} - {{.OwnerName}} - {{.ApproverName}} - {{.LetterCity}}</p>`
	if err := os.WriteFile(filepath.Join(dir, "SKT.html"), []byte(tmpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	svc := buildDocgenService(t, repo, stubRenderer{}, &stubUploader{}, dir)

	resp, err := svc.Prepare(context.Background(), repo.submission.ID)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for _, want := range []string{"PJN-20260828-090507", "Budi Santoso", "Kepala Dinas", "Balikpapan"} {
		if !strings.Contains(resp.HTML, want) {
			t.Fatalf("expected rendered html to contain %q, got %q", want, resp.HTML)
		}
	}
}

func TestServicePrepareMissingTemplate(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("Tanpa Template")}
	svc := buildDocgenService(t, repo, stubRenderer{}, &stubUploader{}, t.TempDir())

	_, err := svc.Prepare(context.Background(), repo.submission.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error for missing template, got %v", err)
	}
}

func TestServicePrepareRequiresApproval(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	repo.submission.Status = enums.SubmissionStatusPending
	svc := buildDocgenService(t, repo, stubRenderer{}, &stubUploader{}, t.TempDir())

	_, err := svc.Prepare(context.Background(), repo.submission.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state error, got %v", err)
	}
}

func TestServiceGenerateDraft(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	uploader := &stubUploader{url: "https://files.example.com/PJN.pdf"}
	svc := buildDocgenService(t, repo, stubRenderer{out: []byte("%PDF-1.7")}, uploader, t.TempDir())

	resp, err := svc.GenerateDraft(context.Background(), repo.submission.ID, GenerateDraftRequest{HTML: "<p>surat</p>"})
	if err != nil {
		t.Fatalf("generate draft: %v", err)
	}
	if resp.DraftDocumentURL != uploader.url {
		t.Fatalf("expected draft url %q, got %q", uploader.url, resp.DraftDocumentURL)
	}
	if uploader.lastFilename != "PJN-20260828-090507.pdf" {
		t.Fatalf("expected filename from kode, got %q", uploader.lastFilename)
	}
	if repo.draftURL == nil || *repo.draftURL != uploader.url {
		t.Fatalf("expected draft url persisted")
	}
}

func TestServiceGenerateDraftRefusesAfterSend(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	final := "https://files.example.com/final.pdf"
	repo.submission.FinalDocumentURL = &final
	svc := buildDocgenService(t, repo, stubRenderer{out: []byte("x")}, &stubUploader{url: "u"}, t.TempDir())

	_, err := svc.GenerateDraft(context.Background(), repo.submission.ID, GenerateDraftRequest{HTML: "<p>x</p>"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state error, got %v", err)
	}
}

func TestServiceGenerateDraftRenderFailure(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	svc := buildDocgenService(t, repo, stubRenderer{err: context.DeadlineExceeded}, &stubUploader{}, t.TempDir())

	_, err := svc.GenerateDraft(context.Background(), repo.submission.ID, GenerateDraftRequest{HTML: "<p>x</p>"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if repo.draftURL != nil {
		t.Fatalf("expected nothing persisted on render failure")
	}
}

func TestServiceSendPromotesDraft(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	draft := "https://files.example.com/draft.pdf"
	repo.submission.DraftDocumentURL = &draft
	svc := buildDocgenService(t, repo, stubRenderer{}, &stubUploader{}, t.TempDir())

	resp, err := svc.Send(context.Background(), repo.submission.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp.FinalDocumentURL != draft {
		t.Fatalf("expected final url %q, got %q", draft, resp.FinalDocumentURL)
	}
	if !repo.promoted {
		t.Fatalf("expected promote to run")
	}

	// sending twice is refused
	_, err = svc.Send(context.Background(), repo.submission.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state error on resend, got %v", err)
	}
}

func TestServiceSendRequiresDraft(t *testing.T) {
	repo := &stubSubmissionRepo{submission: approvedSubmission("SKT")}
	svc := buildDocgenService(t, repo, stubRenderer{}, &stubUploader{}, t.TempDir())

	_, err := svc.Send(context.Background(), repo.submission.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state error without draft, got %v", err)
	}
}
