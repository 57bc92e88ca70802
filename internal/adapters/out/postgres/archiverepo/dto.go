package archiverepo

import (
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ArchivedAssignmentDTO struct {
	ID         uuid.UUID               `gorm:"type:uuid;primaryKey"`
	OriginalID uuid.UUID               `gorm:"type:uuid;uniqueIndex;not null"`
	State      assignmentrepo.StateDTO `gorm:"embedded"`
	ArchivedAt time.Time               `gorm:"not null"`
}

func (ArchivedAssignmentDTO) TableName() string {
	return "archived_assignments"
}

func fromDomain(a *assignment.ArchivedAssignment) ArchivedAssignmentDTO {
	return ArchivedAssignmentDTO{
		ID:         a.ID().Bytes(),
		OriginalID: a.OriginalID().Bytes(),
		State:      assignmentrepo.StateFromDomain(a.State()),
		ArchivedAt: a.ArchivedAt(),
	}
}

func toDomain(dto ArchivedAssignmentDTO) (*assignment.ArchivedAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := dto.State.ToDomain(dto.OriginalID)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreArchivedAssignment(id, state, dto.ArchivedAt.UTC())
}
