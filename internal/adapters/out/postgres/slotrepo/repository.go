package slotrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDriverSlotRepository struct {
	db *gorm.DB
}

func NewGormDriverSlotRepository(db *gorm.DB) *GormDriverSlotRepository {
	return &GormDriverSlotRepository{db: db}
}

// Claim inserts the slot with ON CONFLICT DO NOTHING. A concurrent claim for
// the same driver blocks on the primary key until the first transaction ends
// and then affects zero rows, so at most one claim commits.
func (r *GormDriverSlotRepository) Claim(ctx context.Context, driverEmail string, assignmentID kernel.UUID) error {
	if driverEmail == "" {
		return errs.NewValueIsRequiredError("driverEmail")
	}
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	dto := DriverSlotDTO{
		DriverEmail:  driverEmail,
		AssignmentID: assignmentID.Bytes(),
		ClaimedAt:    time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return assignment.ErrActiveDeliveryExists
	}

	return nil
}

// Release deletes the slot only if assignmentID holds it.
func (r *GormDriverSlotRepository) Release(ctx context.Context, driverEmail string, assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("driver_email = ? AND assignment_id = ?", driverEmail, assignmentID.Bytes()).
		Delete(&DriverSlotDTO{}).Error
}
