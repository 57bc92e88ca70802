package slotrepo

import (
	"time"

	"github.com/google/uuid"
)

// DriverSlotDTO is the per-driver "has active delivery" flag. The primary key
// on driver_email makes claiming a slot an atomic conditional insert.
type DriverSlotDTO struct {
	DriverEmail  string    `gorm:"primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClaimedAt    time.Time `gorm:"not null"`
}

func (DriverSlotDTO) TableName() string {
	return "driver_slots"
}
