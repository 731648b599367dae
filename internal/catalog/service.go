package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db"
	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
)

// Service defines the behavior needed by the catalog controllers.
type Service interface {
	CreateJenis(ctx context.Context, req CreateJenisPengajuanRequest) (*JenisPengajuanDTO, error)
	ListJenis(ctx context.Context, forUserID *uuid.UUID) ([]JenisPengajuanDTO, error)
	GetJenis(ctx context.Context, id uuid.UUID) (*JenisPengajuanDTO, error)
	ListPersyaratan(ctx context.Context, jenisID *uuid.UUID) ([]PersyaratanDTO, error)
	CreatePersyaratan(ctx context.Context, req CreatePersyaratanRequest) (*PersyaratanDTO, error)
	UpdatePersyaratan(ctx context.Context, id uuid.UUID, req UpdatePersyaratanRequest) (*PersyaratanDTO, error)
	DeletePersyaratan(ctx context.Context, id uuid.UUID) error
}

type catalogRepository interface {
	CreateJenis(ctx context.Context, jenis *models.JenisPengajuan) error
	ListJenis(ctx context.Context) ([]models.JenisPengajuan, error)
	FindJenisByID(ctx context.Context, id uuid.UUID) (*models.JenisPengajuan, error)
	ListPersyaratan(ctx context.Context, jenisID *uuid.UUID) ([]models.Persyaratan, error)
	CreatePersyaratan(ctx context.Context, req *models.Persyaratan) error
	FindPersyaratanByID(ctx context.Context, id uuid.UUID) (*models.Persyaratan, error)
	UpdatePersyaratan(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeletePersyaratan(ctx context.Context, id uuid.UUID) error
}

type activeSubmissionChecker interface {
	ActiveTypeIDsForUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]enums.SubmissionStatus, error)
}

type service struct {
	repo        catalogRepository
	submissions activeSubmissionChecker
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	Repo        catalogRepository
	Submissions activeSubmissionChecker
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.Submissions == nil {
		return nil, fmt.Errorf("submissions checker is required")
	}
	return &service{repo: params.Repo, submissions: params.Submissions}, nil
}

func (s *service) CreateJenis(ctx context.Context, req CreateJenisPengajuanRequest) (*JenisPengajuanDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	jenis := &models.JenisPengajuan{Name: name}
	for _, p := range req.Persyaratan {
		wajib := true
		if p.Wajib != nil {
			wajib = *p.Wajib
		}
		jenis.Persyaratan = append(jenis.Persyaratan, models.Persyaratan{
			NamaDokumen: strings.TrimSpace(p.NamaDokumen),
			Wajib:       wajib,
		})
	}

	if err := s.repo.CreateJenis(ctx, jenis); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "submission type already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create submission type")
	}

	dto := jenisFromModel(*jenis)
	return &dto, nil
}

// ListJenis returns the catalog. When forUserID is set (citizen listing) each
// entry is annotated with whether that user already has an active submission
// of the type, which the frontend uses to disable the "ajukan" button.
func (s *service) ListJenis(ctx context.Context, forUserID *uuid.UUID) ([]JenisPengajuanDTO, error) {
	list, err := s.repo.ListJenis(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list submission types")
	}

	var active map[uuid.UUID]enums.SubmissionStatus
	if forUserID != nil {
		active, err = s.submissions.ActiveTypeIDsForUser(ctx, *forUserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check active submissions")
		}
	}

	out := make([]JenisPengajuanDTO, 0, len(list))
	for _, jenis := range list {
		dto := jenisFromModel(jenis)
		if active != nil {
			_, dto.HasActiveSubmission = active[jenis.ID]
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) GetJenis(ctx context.Context, id uuid.UUID) (*JenisPengajuanDTO, error) {
	jenis, err := s.repo.FindJenisByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load submission type")
	}
	dto := jenisFromModel(*jenis)
	return &dto, nil
}

// ListPersyaratan returns requirements, scoped to one type when jenisID is set.
func (s *service) ListPersyaratan(ctx context.Context, jenisID *uuid.UUID) ([]PersyaratanDTO, error) {
	if jenisID != nil {
		if _, err := s.repo.FindJenisByID(ctx, *jenisID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission type not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load submission type")
		}
	}

	rows, err := s.repo.ListPersyaratan(ctx, jenisID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list requirements")
	}
	out := make([]PersyaratanDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, persyaratanFromModel(row))
	}
	return out, nil
}

func (s *service) CreatePersyaratan(ctx context.Context, req CreatePersyaratanRequest) (*PersyaratanDTO, error) {
	if _, err := s.repo.FindJenisByID(ctx, req.JenisPengajuanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "submission type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load submission type")
	}

	wajib := true
	if req.Wajib != nil {
		wajib = *req.Wajib
	}
	row := &models.Persyaratan{
		JenisPengajuanID: req.JenisPengajuanID,
		NamaDokumen:      strings.TrimSpace(req.NamaDokumen),
		Wajib:            wajib,
	}
	if err := s.repo.CreatePersyaratan(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create requirement")
	}

	dto := persyaratanFromModel(*row)
	return &dto, nil
}

func (s *service) UpdatePersyaratan(ctx context.Context, id uuid.UUID, req UpdatePersyaratanRequest) (*PersyaratanDTO, error) {
	row, err := s.repo.FindPersyaratanByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "requirement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load requirement")
	}

	updates := map[string]any{}
	if req.NamaDokumen != nil {
		name := strings.TrimSpace(*req.NamaDokumen)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nama_dokumen cannot be empty")
		}
		updates["nama_dokumen"] = name
		row.NamaDokumen = name
	}
	if req.Wajib != nil {
		updates["wajib"] = *req.Wajib
		row.Wajib = *req.Wajib
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdatePersyaratan(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update requirement")
	}

	dto := persyaratanFromModel(*row)
	return &dto, nil
}

func (s *service) DeletePersyaratan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindPersyaratanByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "requirement not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load requirement")
	}
	if err := s.repo.DeletePersyaratan(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete requirement")
	}
	return nil
}
