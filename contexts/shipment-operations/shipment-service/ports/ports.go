package ports

import (
	"context"
	"io"
	"time"

	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
)

type ShipmentFilter struct {
	OwnerID   string // empty means unscoped (admin)
	Status    entities.Status
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ShipmentPage struct {
	Items []entities.Shipment
	Total int64
}

type ShipmentRepository interface {
	CreateShipment(ctx context.Context, shipment entities.Shipment) error
	UpdateShipment(ctx context.Context, shipment entities.Shipment) error
	// UpdateShipmentStatus applies a transition conditionally on the previous
	// status so racing transitions fail instead of clobbering each other.
	UpdateShipmentStatus(
		ctx context.Context,
		shipmentID string,
		from entities.Status,
		to entities.Status,
		actualDelivery *time.Time,
		updatedBy string,
		now time.Time,
	) error
	GetShipment(ctx context.Context, shipmentID string) (entities.Shipment, error)
	GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (entities.Shipment, error)
	ListShipments(ctx context.Context, filter ShipmentFilter) (ShipmentPage, error)
	// DeleteShipment removes the shipment with its attachments and history.
	DeleteShipment(ctx context.Context, shipmentID string) error
	CountByStatus(ctx context.Context, ownerID string) (map[entities.Status]int64, error)
}

type AttachmentRepository interface {
	AddAttachment(ctx context.Context, attachment entities.Attachment) error
	GetAttachment(ctx context.Context, attachmentID string) (entities.Attachment, error)
	ListAttachmentsByShipment(ctx context.Context, shipmentID string) ([]entities.Attachment, error)
	RemoveAttachment(ctx context.Context, attachmentID string) error
}

type HistoryRepository interface {
	AppendStatus(ctx context.Context, event entities.StatusEvent) error
	ListStatusHistory(ctx context.Context, shipmentID string) ([]entities.StatusEvent, error)
}

type TrackingNumberGenerator interface {
	NewTrackingNumber(ctx context.Context) (string, error)
}

// BlobStore persists attachment bytes. Metadata is recorded only after
// Store confirms.
type BlobStore interface {
	Store(ctx context.Context, fileName string, content io.Reader) (path string, size int64, err error)
	Remove(ctx context.Context, path string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
