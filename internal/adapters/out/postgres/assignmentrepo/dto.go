package assignmentrepo

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	State StateDTO  `gorm:"embedded"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

// StateDTO holds the columns of an assignment. The archive embeds it too,
// so an archived row is structurally identical to a working-set row.
type StateDTO struct {
	Product           ProductSnapshotDTO `gorm:"embedded;embeddedPrefix:product_"`
	Driver            DriverDTO          `gorm:"embedded;embeddedPrefix:driver_"`
	Destination       string             `gorm:"not null"`
	Latitude          *float64
	Longitude         *float64
	Note              string
	Status            int       `gorm:"not null;index"`
	AssignedAt        time.Time `gorm:"not null"`
	StartedAt         *time.Time
	DeliveredAt       *time.Time
	EstimatedDelivery *time.Time
	MarkedByUserID    string           `gorm:"not null"`
	MarkedByEmail     string           `gorm:"not null"`
	Notifications     NotificationsDTO `gorm:"type:jsonb;not null"`
}

type ProductSnapshotDTO struct {
	ID       uuid.UUID `gorm:"type:uuid"`
	Name     string
	ImageURL string
	SKU      string
	Quantity int
}

type DriverDTO struct {
	ID    string
	Name  string
	Email string `gorm:"index"`
}

type NotificationDTO struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Read bool      `json:"read"`
}

// NotificationsDTO is stored as a jsonb array.
type NotificationsDTO []NotificationDTO

func (n NotificationsDTO) Value() (driver.Value, error) {
	if n == nil {
		n = NotificationsDTO{}
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (n *NotificationsDTO) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*n = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("notifications: unsupported type %T", src)
	}
	return json.Unmarshal(raw, n)
}

// StateFromDomain maps an assignment state onto columns.
func StateFromDomain(s assignment.State) StateDTO {
	dto := StateDTO{
		Product: ProductSnapshotDTO{
			ID:       s.Product.ProductID.Bytes(),
			Name:     s.Product.Name,
			ImageURL: s.Product.ImageURL,
			SKU:      s.Product.SKU,
			Quantity: s.Product.Quantity,
		},
		Driver: DriverDTO{
			ID:    s.Driver.ID,
			Name:  s.Driver.Name,
			Email: s.Driver.Email,
		},
		Destination:       s.Destination.Address,
		Note:              s.Note,
		Status:            int(s.Status),
		AssignedAt:        s.AssignedAt,
		StartedAt:         s.StartedAt,
		DeliveredAt:       s.DeliveredAt,
		EstimatedDelivery: s.EstimatedDelivery,
		MarkedByUserID:    s.MarkedBy.UserID(),
		MarkedByEmail:     s.MarkedBy.Email(),
		Notifications:     make(NotificationsDTO, 0, len(s.Notifications)),
	}

	if c := s.Destination.Coordinates; c != nil {
		lat, lng := c.Lat(), c.Lng()
		dto.Latitude, dto.Longitude = &lat, &lng
	}

	for _, n := range s.Notifications {
		dto.Notifications = append(dto.Notifications, NotificationDTO{Type: string(n.Type), At: n.At, Read: n.Read})
	}

	return dto
}

// ToDomain rebuilds the state of the assignment identified by id.
func (d StateDTO) ToDomain(id uuid.UUID) (assignment.State, error) {
	assignmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return assignment.State{}, err
	}

	productID, err := kernel.UUIDFromBytes(d.Product.ID[:])
	if err != nil {
		return assignment.State{}, err
	}

	markedBy, err := kernel.NewIdentity(d.MarkedByUserID, d.MarkedByEmail)
	if err != nil {
		return assignment.State{}, err
	}

	destination := assignment.Destination{Address: d.Destination}
	if d.Latitude != nil && d.Longitude != nil {
		c, coordErr := kernel.NewCoordinates(*d.Latitude, *d.Longitude)
		if coordErr != nil {
			return assignment.State{}, coordErr
		}
		destination.Coordinates = &c
	} else if d.Latitude != nil || d.Longitude != nil {
		return assignment.State{}, errors.New("coordinates must have both latitude and longitude")
	}

	notifications := make([]assignment.Notification, 0, len(d.Notifications))
	for _, n := range d.Notifications {
		notifications = append(notifications, assignment.Notification{
			Type: assignment.NotificationType(n.Type),
			At:   n.At.UTC(),
			Read: n.Read,
		})
	}

	return assignment.State{
		ID: assignmentID,
		Product: assignment.ProductSnapshot{
			ProductID: productID,
			Name:      d.Product.Name,
			ImageURL:  d.Product.ImageURL,
			SKU:       d.Product.SKU,
			Quantity:  d.Product.Quantity,
		},
		Driver: assignment.Driver{
			ID:    d.Driver.ID,
			Name:  d.Driver.Name,
			Email: d.Driver.Email,
		},
		Destination:       destination,
		Note:              d.Note,
		Status:            assignment.Status(d.Status),
		AssignedAt:        d.AssignedAt.UTC(),
		StartedAt:         utc(d.StartedAt),
		DeliveredAt:       utc(d.DeliveredAt),
		EstimatedDelivery: utc(d.EstimatedDelivery),
		MarkedBy:          markedBy,
		Notifications:     notifications,
	}, nil
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:    a.ID().Bytes(),
		State: StateFromDomain(a.State()),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	state, err := dto.State.ToDomain(dto.ID)
	if err != nil {
		return nil, err
	}
	return assignment.RestoreAssignment(state)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
