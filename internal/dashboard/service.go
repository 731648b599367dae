package dashboard

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/internal/submissions"
	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
)

// Statistics is the headline counter block of the admin dashboard.
type Statistics struct {
	TotalPengajuan int64 `json:"total_pengajuan"`
	TotalDokumen   int64 `json:"total_dokumen"`
	Approved       int64 `json:"approved"`
	Pending        int64 `json:"pending"`
	Rejected       int64 `json:"rejected"`
}

// Overview is the full dashboard payload: counters plus per-status listings
// ordered by last activity.
type Overview struct {
	Statistics Statistics                  `json:"statistics"`
	Pending    []submissions.SubmissionDTO `json:"pending"`
	Approved   []submissions.SubmissionDTO `json:"approved"`
	Revision   []submissions.SubmissionDTO `json:"menunggu_perbaikan"`
	Rejected   []submissions.SubmissionDTO `json:"rejected"`
	Completed  []submissions.SubmissionDTO `json:"completed"`
}

// Service defines the behavior needed by the dashboard controller.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

type statusLister interface {
	ListByStatus(ctx context.Context, status enums.SubmissionStatus) ([]models.Pengajuan, error)
}

type service struct {
	db   *gorm.DB
	subs statusLister
}

// ServiceParams bundles the dependencies required to build a dashboard service.
type ServiceParams struct {
	DB          *gorm.DB
	Submissions statusLister
}

// NewService constructs a dashboard service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	if params.Submissions == nil {
		return nil, fmt.Errorf("submissions lister is required")
	}
	return &service{db: params.DB, subs: params.Submissions}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	stats, err := s.collectStatistics(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{Statistics: *stats}
	lists := []struct {
		status enums.SubmissionStatus
		target *[]submissions.SubmissionDTO
	}{
		{enums.SubmissionStatusPending, &overview.Pending},
		{enums.SubmissionStatusApproved, &overview.Approved},
		{enums.SubmissionStatusAwaitingRevision, &overview.Revision},
		{enums.SubmissionStatusRejected, &overview.Rejected},
		{enums.SubmissionStatusCompleted, &overview.Completed},
	}
	for _, entry := range lists {
		rows, err := s.subs.ListByStatus(ctx, entry.status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list submissions by status")
		}
		dtos := make([]submissions.SubmissionDTO, 0, len(rows))
		for i := range rows {
			dtos = append(dtos, *submissions.FromModel(&rows[i]))
		}
		*entry.target = dtos
	}

	return overview, nil
}

func (s *service) collectStatistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics

	if err := s.db.WithContext(ctx).Model(&models.Pengajuan{}).Count(&stats.TotalPengajuan).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count submissions")
	}
	if err := s.db.WithContext(ctx).Model(&models.Document{}).Count(&stats.TotalDokumen).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count documents")
	}

	counts := []struct {
		status enums.SubmissionStatus
		target *int64
	}{
		{enums.SubmissionStatusApproved, &stats.Approved},
		{enums.SubmissionStatusPending, &stats.Pending},
		{enums.SubmissionStatusRejected, &stats.Rejected},
	}
	for _, entry := range counts {
		err := s.db.WithContext(ctx).
			Model(&models.Pengajuan{}).
			Where("status = ?", entry.status).
			Count(entry.target).Error
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count submissions by status")
		}
	}

	return &stats, nil
}
