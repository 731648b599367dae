package submissions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db"
	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
)

// Service defines the behavior needed by the submission controllers.
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateSubmissionRequest) (*SubmissionDTO, error)
	ListGroupedByUser(ctx context.Context) ([]UserGroupDTO, error)
	ListMine(ctx context.Context, actor Actor) ([]SubmissionDTO, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*SubmissionDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateSubmissionRequest) (*SubmissionDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	ReviewDocument(ctx context.Context, documentID uuid.UUID, req ReviewDocumentRequest) (*SubmissionDTO, error)
	ForceReject(ctx context.Context, id uuid.UUID, req ForceRejectRequest) (*SubmissionDTO, error)
	ActiveTypeIDsForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]enums.SubmissionStatus, error)
}

type typeRepository interface {
	FindJenisByID(ctx context.Context, id uuid.UUID) (*models.JenisPengajuan, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db     txRunner
	repo   *Repository
	types  typeRepository
	policy enums.RejectionPolicy
	logg   *logger.Logger
}

// ServiceParams bundles the dependencies required to build a submissions service.
type ServiceParams struct {
	DB              txRunner
	Repo            *Repository
	Types           typeRepository
	RejectionPolicy enums.RejectionPolicy
	Logger          *logger.Logger
}

// NewService constructs a submissions service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("submissions repository is required")
	}
	if params.Types == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if !params.RejectionPolicy.IsValid() {
		return nil, fmt.Errorf("invalid rejection policy %q", params.RejectionPolicy)
	}
	return &service{
		db:     params.DB,
		repo:   params.Repo,
		types:  params.Types,
		policy: params.RejectionPolicy,
		logg:   params.Logger,
	}, nil
}

// Create validates the aggregate against the type's requirement list and
// persists pengajuan, owner, lahan, and documents inside one transaction.
func (s *service) Create(ctx context.Context, actor Actor, req CreateSubmissionRequest) (*SubmissionDTO, error) {
	jenis, err := s.types.FindJenisByID(ctx, req.JenisPengajuanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load submission type")
	}

	if _, err := s.repo.FindActiveByUserAndType(ctx, actor.ID, jenis.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "you still have an active submission of this type")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check active submission")
	}

	if err := validateDocumentSet(req.Documents, jenis.Persyaratan); err != nil {
		return nil, err
	}

	owner, err := ownerFromPayload(req.Owner)
	if err != nil {
		return nil, err
	}
	lahan, err := lahanFromPayload(req.Lahan)
	if err != nil {
		return nil, err
	}

	submission := &models.Pengajuan{
		ID:               uuid.New(),
		KodePengajuan:    GenerateKode(time.Now()),
		JenisPengajuanID: jenis.ID,
		UserID:           actor.ID,
		Status:           enums.SubmissionStatusPending,
		Owner:            owner,
		Lahan:            lahan,
		Documents:        documentsFromPayloads(req.Documents),
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return NewRepository(tx).Create(ctx, submission)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "submission code collision, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create submission")
	}

	if s.logg != nil {
		fields := map[string]any{"pengajuan_id": submission.ID.String(), "kode": submission.KodePengajuan}
		s.logg.Info(s.logg.WithFields(ctx, fields), "submission created")
	}

	return s.reload(ctx, submission.ID)
}

// ListGroupedByUser returns every submission bucketed per citizen for the
// admin review screen.
func (s *service) ListGroupedByUser(ctx context.Context) ([]UserGroupDTO, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list submissions")
	}

	groups := map[uuid.UUID]*UserGroupDTO{}
	order := []uuid.UUID{}
	for i := range list {
		submission := &list[i]
		dto := FromModel(submission)

		group, ok := groups[submission.UserID]
		if !ok {
			summary := UserSummary{ID: submission.UserID}
			if dto.User != nil {
				summary = *dto.User
			}
			group = &UserGroupDTO{User: summary}
			groups[submission.UserID] = group
			order = append(order, submission.UserID)
		}
		dto.User = nil
		group.Submissions = append(group.Submissions, *dto)
	}

	out := make([]UserGroupDTO, 0, len(order))
	for _, id := range order {
		out = append(out, *groups[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].User.Username < out[j].User.Username
	})
	return out, nil
}

// ListMine returns the caller's own submissions.
func (s *service) ListMine(ctx context.Context, actor Actor) ([]SubmissionDTO, error) {
	list, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list submissions")
	}
	out := make([]SubmissionDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out, nil
}

// Get loads one submission; citizens can only see their own.
func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*SubmissionDTO, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, submission); err != nil {
		return nil, err
	}
	return FromModel(submission), nil
}

// Update replaces the whole aggregate and restarts the review cycle: every
// document returns to pending with no admin note, and the submission drops
// back to pending. Completed submissions are immutable.
func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateSubmissionRequest) (*SubmissionDTO, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, submission); err != nil {
		return nil, err
	}
	if submission.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeState, "completed submissions cannot be modified")
	}

	jenis, err := s.types.FindJenisByID(ctx, submission.JenisPengajuanID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load submission type")
	}
	if err := validateDocumentSet(req.Documents, jenis.Persyaratan); err != nil {
		return nil, err
	}

	owner, err := ownerFromPayload(req.Owner)
	if err != nil {
		return nil, err
	}
	lahan, err := lahanFromPayload(req.Lahan)
	if err != nil {
		return nil, err
	}
	docs := documentsFromPayloads(req.Documents)

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		if err := txRepo.ReplaceOwner(ctx, submission.ID, owner); err != nil {
			return err
		}
		if err := txRepo.ReplaceLahan(ctx, submission.ID, lahan); err != nil {
			return err
		}
		if err := txRepo.ReplaceDocuments(ctx, submission.ID, docs); err != nil {
			return err
		}
		return txRepo.UpdateStatus(ctx, submission.ID, enums.SubmissionStatusPending, nil)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update submission")
	}

	return s.reload(ctx, submission.ID)
}

// Delete removes the aggregate; citizens can only delete their own.
func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	submission, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, submission); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, submission.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete submission")
	}
	return nil
}

// ReviewDocument records the verdict on one document, then recomputes the
// parent submission status from the full document set.
func (s *service) ReviewDocument(ctx context.Context, documentID uuid.UUID, req ReviewDocumentRequest) (*SubmissionDTO, error) {
	if !req.Status.IsValid() || req.Status == enums.DocumentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	doc, err := s.repo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load document")
	}

	submission, err := s.load(ctx, doc.PengajuanID)
	if err != nil {
		return nil, err
	}
	if submission.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeState, "completed submissions cannot be reviewed")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := NewRepository(tx)
		if err := txRepo.UpdateDocumentReview(ctx, documentID, req.Status, req.AdminNote); err != nil {
			return err
		}
		docs, err := txRepo.ListDocuments(ctx, submission.ID)
		if err != nil {
			return err
		}
		next := NextStatus(submission.Status, docs, s.policy)
		if next == submission.Status {
			return nil
		}
		return txRepo.UpdateStatus(ctx, submission.ID, next, nil)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "review document")
	}

	return s.reload(ctx, submission.ID)
}

// ForceReject drops the submission to rejected regardless of its documents.
func (s *service) ForceReject(ctx context.Context, id uuid.UUID, req ForceRejectRequest) (*SubmissionDTO, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeState, "completed submissions cannot be rejected")
	}

	note := strings.TrimSpace(req.AdminNote)
	if note == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin_note is required")
	}
	if err := s.repo.UpdateStatus(ctx, submission.ID, enums.SubmissionStatusRejected, &note); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reject submission")
	}

	return s.reload(ctx, submission.ID)
}

// ActiveTypeIDsForUser reports which submission types the user currently has
// live submissions for.
func (s *service) ActiveTypeIDsForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]enums.SubmissionStatus, error) {
	return s.repo.ActiveTypeIDsForUser(ctx, userID)
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

func (s *service) reload(ctx context.Context, id uuid.UUID) (*SubmissionDTO, error) {
	submission, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(submission), nil
}

func authorize(actor Actor, submission *models.Pengajuan) error {
	if actor.IsAdmin() || submission.UserID == actor.ID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
}

// validateDocumentSet checks the submitted document types against the
// requirement list: every mandatory (wajib) name must be present, and nothing
// outside the full requirement set is accepted. Both violations are reported
// with the offending names.
func validateDocumentSet(docs []DocumentPayload, requirements []models.Persyaratan) error {
	submitted := map[string]bool{}
	for _, doc := range docs {
		submitted[strings.TrimSpace(doc.DocumentType)] = true
	}

	known := map[string]bool{}
	missing := []string{}
	for _, req := range requirements {
		name := strings.TrimSpace(req.NamaDokumen)
		known[name] = true
		if req.Wajib && !submitted[name] {
			missing = append(missing, name)
		}
	}

	unexpected := []string{}
	for name := range submitted {
		if !known[name] {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)

	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "document set does not satisfy the requirements").
		WithDetails(map[string][]string{
			"missing":    missing,
			"unexpected": unexpected,
		})
}

func ownerFromPayload(p OwnerPayload) (*models.Owner, error) {
	owner := &models.Owner{
		ID:              uuid.New(),
		Nama:            strings.TrimSpace(p.Nama),
		NIK:             strings.TrimSpace(p.NIK),
		Email:           p.Email,
		Phone:           p.Phone,
		JenisKelamin:    p.JenisKelamin,
		NPWP:            p.NPWP,
		Agama:           p.Agama,
		Kewarganegaraan: p.Kewarganegaraan,
		Alamat:          p.Alamat,
		Pekerjaan:       p.Pekerjaan,
	}
	if p.TanggalLahir != nil && *p.TanggalLahir != "" {
		parsed, err := time.Parse(dateLayout, *p.TanggalLahir)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tanggal_lahir must be YYYY-MM-DD")
		}
		owner.TanggalLahir = &parsed
	}
	return owner, nil
}

func lahanFromPayload(p LahanPayload) (*models.Lahan, error) {
	lahan := &models.Lahan{
		ID:               uuid.New(),
		NoSuratRT:        p.NoSuratRT,
		NIB:              p.NIB,
		JenisBangunan:    p.JenisBangunan,
		LuasLahan:        p.LuasLahan,
		AlamatRT:         p.AlamatRT,
		AlamatRW:         p.AlamatRW,
		KodePos:          p.KodePos,
		WilayahKelurahan: p.WilayahKelurahan,
		WilayahKecamatan: p.WilayahKecamatan,
		WilayahKota:      p.WilayahKota,
	}
	if p.TanggalSuratRT != nil && *p.TanggalSuratRT != "" {
		parsed, err := time.Parse(dateLayout, *p.TanggalSuratRT)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tanggal_surat_rt must be YYYY-MM-DD")
		}
		lahan.TanggalSuratRT = &parsed
	}
	return lahan, nil
}

func documentsFromPayloads(payloads []DocumentPayload) []models.Document {
	docs := make([]models.Document, 0, len(payloads))
	for _, p := range payloads {
		docs = append(docs, models.Document{
			ID:           uuid.New(),
			DocumentType: strings.TrimSpace(p.DocumentType),
			FileURL:      p.FileURL,
			OriginalName: p.OriginalName,
			MimeType:     p.MimeType,
			FileSize:     p.FileSize,
			UserNote:     p.UserNote,
			Status:       enums.DocumentStatusPending,
		})
	}
	return docs
}
