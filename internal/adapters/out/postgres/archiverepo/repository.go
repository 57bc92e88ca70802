package archiverepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormArchiveRepository is append-only: entries are inserted once and never
// updated or deleted.
type GormArchiveRepository struct {
	db *gorm.DB
}

func NewGormArchiveRepository(db *gorm.DB) *GormArchiveRepository {
	return &GormArchiveRepository{db: db}
}

func (r *GormArchiveRepository) Add(ctx context.Context, archived *assignment.ArchivedAssignment) error {
	if err := archived.Validate(); err != nil {
		return err
	}

	dto := fromDomain(archived)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormArchiveRepository) ExistsByOriginalID(ctx context.Context, originalID kernel.UUID) (bool, error) {
	if err := originalID.Validate(); err != nil {
		return false, err
	}

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&ArchivedAssignmentDTO{}).
		Where("original_id = ?", originalID.Bytes()).
		Count(&n).Error; err != nil {
		return false, err
	}

	return n > 0, nil
}

// GetByOriginalID returns the archive entry of a former working-set record.
func (r *GormArchiveRepository) GetByOriginalID(
	ctx context.Context,
	originalID kernel.UUID,
) (*assignment.ArchivedAssignment, error) {
	if err := originalID.Validate(); err != nil {
		return nil, err
	}

	var dto ArchivedAssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "original_id = ?", originalID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("archived assignment", originalID)
		}
		return nil, err
	}

	return toDomain(dto)
}
