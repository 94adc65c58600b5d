package memory

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory shipment persistence used by unit tests and local
// runs. It implements the repository, history, attachment, blob, clock,
// id-generator and tracking-number ports.
type Store struct {
	mu sync.RWMutex

	shipments   map[string]entities.Shipment
	attachments map[string]entities.Attachment
	history     []entities.StatusEvent
	blobs       map[string][]byte
}

func NewStore(seed []entities.Shipment) *Store {
	shipments := make(map[string]entities.Shipment, len(seed))
	for _, item := range seed {
		shipments[item.ShipmentID] = item
	}
	return &Store{
		shipments:   shipments,
		attachments: make(map[string]entities.Attachment),
		history:     make([]entities.StatusEvent, 0),
		blobs:       make(map[string][]byte),
	}
}

func (s *Store) CreateShipment(_ context.Context, shipment entities.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shipments[shipment.ShipmentID]; exists {
		return domainerrors.ErrInvalidShipmentInput
	}
	for _, existing := range s.shipments {
		if existing.TrackingNumber == shipment.TrackingNumber {
			return domainerrors.ErrTrackingNumberTaken
		}
	}
	s.shipments[shipment.ShipmentID] = shipment
	return nil
}

func (s *Store) UpdateShipment(_ context.Context, shipment entities.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.shipments[shipment.ShipmentID]
	if !exists {
		return domainerrors.ErrShipmentNotFound
	}
	// Immutable columns survive whatever the caller sends.
	shipment.TrackingNumber = existing.TrackingNumber
	shipment.CreatedBy = existing.CreatedBy
	shipment.CreatedAt = existing.CreatedAt
	s.shipments[shipment.ShipmentID] = shipment
	return nil
}

func (s *Store) UpdateShipmentStatus(
	_ context.Context,
	shipmentID string,
	from entities.Status,
	to entities.Status,
	actualDelivery *time.Time,
	updatedBy string,
	now time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, exists := s.shipments[strings.TrimSpace(shipmentID)]
	if !exists {
		return domainerrors.ErrShipmentNotFound
	}
	if shipment.Status != from {
		return &domainerrors.TransitionError{
			Current:   string(shipment.Status),
			Requested: string(to),
		}
	}
	shipment.Status = to
	shipment.UpdatedBy = updatedBy
	shipment.UpdatedAt = now
	if actualDelivery != nil && shipment.ActualDelivery == nil {
		shipment.ActualDelivery = actualDelivery
	}
	s.shipments[shipment.ShipmentID] = shipment
	return nil
}

func (s *Store) GetShipment(_ context.Context, shipmentID string) (entities.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shipment, exists := s.shipments[strings.TrimSpace(shipmentID)]
	if !exists {
		return entities.Shipment{}, domainerrors.ErrShipmentNotFound
	}
	return shipment, nil
}

func (s *Store) GetShipmentByTrackingNumber(_ context.Context, trackingNumber string) (entities.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	normalized := entities.NormalizeTrackingNumber(trackingNumber)
	for _, shipment := range s.shipments {
		if shipment.TrackingNumber == normalized {
			return shipment, nil
		}
	}
	return entities.Shipment{}, domainerrors.ErrShipmentNotFound
}

func (s *Store) ListShipments(_ context.Context, filter ports.ShipmentFilter) (ports.ShipmentPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]entities.Shipment, 0, len(s.shipments))
	for _, shipment := range s.shipments {
		if filter.OwnerID != "" && shipment.CreatedBy != filter.OwnerID {
			continue
		}
		if filter.Status != "" && shipment.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(shipment.TrackingNumber), search) &&
			!strings.Contains(strings.ToLower(shipment.SenderName), search) &&
			!strings.Contains(strings.ToLower(shipment.ReceiverName), search) {
			continue
		}
		items = append(items, shipment)
	}

	sortShipments(items, filter.SortBy, filter.SortOrder)

	total := int64(len(items))
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(items)
	}
	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return ports.ShipmentPage{Items: items[start:end], Total: total}, nil
}

func sortShipments(items []entities.Shipment, sortBy string, sortOrder string) {
	less := func(i, j int) bool {
		switch sortBy {
		case "updated_at":
			return items[i].UpdatedAt.Before(items[j].UpdatedAt)
		case "status":
			return items[i].Status < items[j].Status
		case "estimated_delivery":
			left, right := items[i].EstimatedDelivery, items[j].EstimatedDelivery
			if left == nil {
				return right != nil
			}
			if right == nil {
				return false
			}
			return left.Before(*right)
		default:
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
	}
	if sortOrder == "desc" || sortOrder == "" {
		sort.Slice(items, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.Slice(items, less)
}

func (s *Store) DeleteShipment(_ context.Context, shipmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(shipmentID)
	if _, exists := s.shipments[id]; !exists {
		return domainerrors.ErrShipmentNotFound
	}
	delete(s.shipments, id)
	for attachmentID, attachment := range s.attachments {
		if attachment.ShipmentID == id {
			delete(s.attachments, attachmentID)
		}
	}
	kept := s.history[:0]
	for _, event := range s.history {
		if event.ShipmentID != id {
			kept = append(kept, event)
		}
	}
	s.history = kept
	return nil
}

func (s *Store) CountByStatus(_ context.Context, ownerID string) (map[entities.Status]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[entities.Status]int64)
	for _, shipment := range s.shipments {
		if ownerID != "" && shipment.CreatedBy != ownerID {
			continue
		}
		counts[shipment.Status]++
	}
	return counts, nil
}

func (s *Store) AddAttachment(_ context.Context, attachment entities.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.attachments[attachment.AttachmentID]; exists {
		return domainerrors.ErrInvalidShipmentInput
	}
	s.attachments[attachment.AttachmentID] = attachment
	return nil
}

func (s *Store) GetAttachment(_ context.Context, attachmentID string) (entities.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attachment, exists := s.attachments[strings.TrimSpace(attachmentID)]
	if !exists {
		return entities.Attachment{}, domainerrors.ErrAttachmentNotFound
	}
	return attachment, nil
}

func (s *Store) ListAttachmentsByShipment(_ context.Context, shipmentID string) ([]entities.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Attachment, 0)
	for _, attachment := range s.attachments {
		if attachment.ShipmentID == strings.TrimSpace(shipmentID) {
			items = append(items, attachment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UploadedAt.Before(items[j].UploadedAt)
	})
	return items, nil
}

func (s *Store) RemoveAttachment(_ context.Context, attachmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(attachmentID)
	if _, exists := s.attachments[id]; !exists {
		return domainerrors.ErrAttachmentNotFound
	}
	delete(s.attachments, id)
	return nil
}

func (s *Store) AppendStatus(_ context.Context, event entities.StatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, event)
	return nil
}

func (s *Store) ListStatusHistory(_ context.Context, shipmentID string) ([]entities.StatusEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.StatusEvent, 0)
	for _, event := range s.history {
		if event.ShipmentID == strings.TrimSpace(shipmentID) {
			items = append(items, event)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Store(_ context.Context, fileName string, content io.Reader) (string, int64, error) {
	var buf bytes.Buffer
	size, err := io.Copy(&buf, content)
	if err != nil {
		return "", 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path := "memory://" + fileName
	s.blobs[path] = buf.Bytes()
	return path, size, nil
}

func (s *Store) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, path)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) NewTrackingNumber(_ context.Context) (string, error) {
	id := uuid.New()
	return "SHP-" + strings.ToUpper(hex.EncodeToString(id[:5])), nil
}
