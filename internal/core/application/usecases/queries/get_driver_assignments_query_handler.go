package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverAssignmentsQueryHandler reads assignments straight from the
// assignments table, bypassing the aggregate.
type GetDriverAssignmentsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetDriverAssignmentsQueryHandler(db *gorm.DB) GetDriverAssignmentsQueryHandler {
	return GetDriverAssignmentsQueryHandler{db: db, now: time.Now}
}

// Handle returns an empty slice when the driver has no assignments.
func (h GetDriverAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverAssignmentsQuery,
) ([]GetDriverAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]GetDriverAssignmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			product_image_url,
			product_sku,
			product_quantity,
			driver_id,
			driver_name,
			driver_email,
			destination,
			latitude,
			longitude,
			note,
			status,
			assigned_at,
			started_at,
			delivered_at,
			estimated_delivery,
			marked_by_email
		FROM assignments
		WHERE driver_email = ?
		ORDER BY assigned_at DESC, id
	`, query.DriverEmail()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.now()
	for rows.Next() {
		var resp GetDriverAssignmentsQueryResponse
		var id, productID uuid.UUID
		var lat, lng *float64
		var status int

		err = rows.Scan(
			&id,
			&productID,
			&resp.ProductName,
			&resp.ProductImageURL,
			&resp.ProductSKU,
			&resp.Quantity,
			&resp.DriverID,
			&resp.DriverName,
			&resp.DriverEmail,
			&resp.Destination,
			&lat,
			&lng,
			&resp.Note,
			&status,
			&resp.AssignedAt,
			&resp.StartedAt,
			&resp.DeliveredAt,
			&resp.EstimatedDelivery,
			&resp.MarkedByEmail,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			coords, coordErr := kernel.NewCoordinates(*lat, *lng)
			if coordErr != nil {
				return nil, coordErr
			}
			resp.Coordinates = &coords
		}

		s := assignment.Status(status)
		if err = s.Validate(); err != nil {
			return nil, err
		}
		resp.Status = s.String()
		resp.Overdue = !s.IsTerminal() &&
			resp.EstimatedDelivery != nil &&
			now.After(*resp.EstimatedDelivery)

		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
