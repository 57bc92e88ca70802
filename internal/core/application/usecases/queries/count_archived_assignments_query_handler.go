package queries

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

type CountArchivedAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewCountArchivedAssignmentsQueryHandler(db *gorm.DB) CountArchivedAssignmentsQueryHandler {
	return CountArchivedAssignmentsQueryHandler{db: db}
}

// Handle counts only completed deliveries. Cancelled records archived under
// ARCHIVE_CANCELLED are excluded. Returns 0 for a driver with no history.
func (h CountArchivedAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query CountArchivedAssignmentsQuery,
) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM archived_assignments
		WHERE driver_email = ? AND status = ?
	`, query.DriverEmail(), int(assignment.Delivered)).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
