package docgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
	"github.com/rahmadfadli/silahan-backend/pkg/pdf"
	"github.com/rahmadfadli/silahan-backend/pkg/storage/filehost"
)

// Service drives the letter pipeline: populate the type's HTML template,
// render the admin-approved HTML to PDF, host it as a draft, then promote the
// draft to the final hand-off.
type Service interface {
	Prepare(ctx context.Context, id uuid.UUID) (*PrepareResponse, error)
	GenerateDraft(ctx context.Context, id uuid.UUID, req GenerateDraftRequest) (*DraftResponse, error)
	Send(ctx context.Context, id uuid.UUID) (*SendResponse, error)
}

type submissionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pengajuan, error)
	SetDraftURL(ctx context.Context, id uuid.UUID, url string) error
	PromoteDraftToFinal(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     submissionRepository
	renderer pdf.Renderer
	uploader filehost.Uploader
	cfg      config.DocGenConfig
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build a docgen service.
type ServiceParams struct {
	Repo     submissionRepository
	Renderer pdf.Renderer
	Uploader filehost.Uploader
	Config   config.DocGenConfig
	Logger   *logger.Logger
}

// NewService constructs a docgen service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("submissions repository is required")
	}
	if params.Renderer == nil {
		return nil, fmt.Errorf("pdf renderer is required")
	}
	if params.Uploader == nil {
		return nil, fmt.Errorf("file host uploader is required")
	}
	return &service{
		repo:     params.Repo,
		renderer: params.Renderer,
		uploader: params.Uploader,
		cfg:      params.Config,
		logg:     params.Logger,
	}, nil
}

// Prepare loads the letter template named after the submission type and
// executes it with the aggregate's data.
func (s *service) Prepare(ctx context.Context, id uuid.UUID) (*PrepareResponse, error) {
	submission, err := s.loadApproved(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.JenisPengajuan == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "submission type not loaded")
	}

	path := filepath.Join(s.cfg.TemplateDir, submission.JenisPengajuan.Name+".html")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency,
				fmt.Sprintf("no letter template for type %q", submission.JenisPengajuan.Name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read letter template")
	}

	tmpl, err := template.New(submission.JenisPengajuan.Name).Parse(string(raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse letter template")
	}

	letterCtx := BuildLetterContext(submission, s.cfg.LetterCity, s.cfg.ApproverName, time.Now())
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, letterCtx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "execute letter template")
	}

	return &PrepareResponse{HTML: buf.String()}, nil
}

// GenerateDraft renders the HTML to PDF, uploads it, and records the hosted
// draft URL. Nothing is persisted unless every stage succeeds.
func (s *service) GenerateDraft(ctx context.Context, id uuid.UUID, req GenerateDraftRequest) (*DraftResponse, error) {
	submission, err := s.loadApproved(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.FinalDocumentURL != nil {
		return nil, pkgerrors.New(pkgerrors.CodeState, "final document already sent")
	}
	if req.HTML == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "html is required")
	}

	pdfBytes, err := s.renderer.RenderPDF(ctx, req.HTML)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "render pdf")
	}

	filename := fmt.Sprintf("%s.pdf", submission.KodePengajuan)
	hostedURL, err := s.uploader.Upload(ctx, filename, pdfBytes)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload draft")
	}

	if err := s.repo.SetDraftURL(ctx, submission.ID, hostedURL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store draft url")
	}

	if s.logg != nil {
		fields := map[string]any{"pengajuan_id": submission.ID.String(), "draft_url": hostedURL}
		s.logg.Info(s.logg.WithFields(ctx, fields), "draft document generated")
	}
	return &DraftResponse{DraftDocumentURL: hostedURL}, nil
}

// Send promotes the draft to the final document and completes the submission.
// It requires a draft and refuses once a final exists.
func (s *service) Send(ctx context.Context, id uuid.UUID) (*SendResponse, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.FinalDocumentURL != nil {
		return nil, pkgerrors.New(pkgerrors.CodeState, "final document already sent")
	}
	if submission.DraftDocumentURL == nil {
		return nil, pkgerrors.New(pkgerrors.CodeState, "no draft document to send")
	}

	finalURL := *submission.DraftDocumentURL
	if err := s.repo.PromoteDraftToFinal(ctx, submission.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote draft")
	}

	if s.logg != nil {
		fields := map[string]any{"pengajuan_id": submission.ID.String(), "final_url": finalURL}
		s.logg.Info(s.logg.WithFields(ctx, fields), "final document sent")
	}
	return &SendResponse{FinalDocumentURL: finalURL}, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Pengajuan, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load submission")
	}
	return submission, nil
}

func (s *service) loadApproved(ctx context.Context, id uuid.UUID) (*models.Pengajuan, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Status != enums.SubmissionStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeState, "submission must be approved before generating documents")
	}
	return submission, nil
}
