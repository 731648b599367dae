package admin

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
)

// Service holds the destructive maintenance operations.
type Service interface {
	ResetDatabase(ctx context.Context) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db   txRunner
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build the admin service.
type ServiceParams struct {
	DB     txRunner
	Logger *logger.Logger
}

// NewService constructs the admin service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB, logg: params.Logger}, nil
}

// ResetDatabase wipes all submission data and every citizen account in one
// transaction. Deletion runs child-first so no FK constraint trips. Master
// data (submission types, requirements) and admin accounts survive.
func (s *service) ResetDatabase(ctx context.Context) error {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("1 = 1").Delete(&models.Document{}).Error; err != nil {
			return fmt.Errorf("delete documents: %w", err)
		}
		if err := tx.WithContext(ctx).Where("1 = 1").Delete(&models.Owner{}).Error; err != nil {
			return fmt.Errorf("delete owners: %w", err)
		}
		if err := tx.WithContext(ctx).Where("1 = 1").Delete(&models.Lahan{}).Error; err != nil {
			return fmt.Errorf("delete lahan: %w", err)
		}
		if err := tx.WithContext(ctx).Where("1 = 1").Delete(&models.Pengajuan{}).Error; err != nil {
			return fmt.Errorf("delete pengajuan: %w", err)
		}
		if err := tx.WithContext(ctx).Where("role <> ?", enums.UserRoleAdmin).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("delete non-admin users: %w", err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reset database")
	}

	if s.logg != nil {
		s.logg.Warn(ctx, "database reset executed")
	}
	return nil
}
