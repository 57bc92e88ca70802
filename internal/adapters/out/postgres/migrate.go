package postgres

import (
	"dispatch/internal/adapters/out/postgres/archiverepo"
	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/productrepo"
	"dispatch/internal/adapters/out/postgres/slotrepo"

	"gorm.io/gorm"
)

// Models lists every table of the schema, in creation order.
func Models() []any {
	return []any{
		&productrepo.ProductDTO{},
		&assignmentrepo.AssignmentDTO{},
		&archiverepo.ArchivedAssignmentDTO{},
		&slotrepo.DriverSlotDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// TruncateAll empties every table. Integration tests call it between cases.
func TruncateAll(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE products, assignments, archived_assignments, driver_slots").Error
}
