package entities

import (
	"math"
	"strings"
	"time"
)

type Shipment struct {
	ShipmentID        string
	TrackingNumber    string
	SenderName        string
	ReceiverName      string
	Origin            string
	Destination       string
	Status            Status
	Weight            *float64
	Description       string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	CreatedBy         string
	UpdatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Attachment is file metadata only; bytes live in the blob store.
type Attachment struct {
	AttachmentID string
	ShipmentID   string
	FileName     string
	OriginalName string
	StoragePath  string
	ContentType  string
	SizeBytes    int64
	UploadedBy   string
	UploadedAt   time.Time
}

// StatusEvent is one entry of the append-only status history log.
type StatusEvent struct {
	EventID    string
	ShipmentID string
	Status     Status
	ChangedBy  string
	Notes      string
	CreatedAt  time.Time
}

func (s Shipment) ValidateBasics() bool {
	sender := strings.TrimSpace(s.SenderName)
	receiver := strings.TrimSpace(s.ReceiverName)
	origin := strings.TrimSpace(s.Origin)
	destination := strings.TrimSpace(s.Destination)

	return sender != "" &&
		len(sender) <= 100 &&
		receiver != "" &&
		len(receiver) <= 100 &&
		origin != "" &&
		len(origin) <= 200 &&
		destination != "" &&
		len(destination) <= 200 &&
		len(s.Description) <= 2000 &&
		(s.Weight == nil || *s.Weight >= 0) &&
		IsSupportedStatus(s.Status)
}

// DaysInTransit counts whole days between creation and delivery (or now for
// undelivered shipments), rounding up. Pending shipments report zero.
func (s Shipment) DaysInTransit(now time.Time) int {
	if s.Status == StatusPending {
		return 0
	}
	end := now
	if s.ActualDelivery != nil {
		end = *s.ActualDelivery
	}
	elapsed := end.Sub(s.CreatedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

// IsOverdue reports whether an open shipment has passed its estimate.
func (s Shipment) IsOverdue(now time.Time) bool {
	if s.Status == StatusDelivered || s.Status == StatusCancelled {
		return false
	}
	return s.EstimatedDelivery != nil && now.After(*s.EstimatedDelivery)
}

// Deletable is the non-admin deletion guard.
func (s Shipment) Deletable() bool {
	return s.Status == StatusPending || s.Status == StatusCancelled
}

// NormalizeTrackingNumber uppercases for lookups; stored values are already
// uppercase and immutable.
func NormalizeTrackingNumber(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
