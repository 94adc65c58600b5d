package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "shipline/contexts/shipment-operations/shipment-service/application"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

// trackingMaxAttempts bounds collision retries against the store; generation
// is collision-checked rather than counter-based so multiple instances can
// run against the same database.
const trackingMaxAttempts = 5

type CreateShipmentCommand struct {
	ActorID           string
	SenderName        string
	ReceiverName      string
	Origin            string
	Destination       string
	Status            string
	Weight            *float64
	Description       string
	EstimatedDelivery *time.Time
}

type CreateShipmentUseCase struct {
	Shipments ports.ShipmentRepository
	History   ports.HistoryRepository
	Tracking  ports.TrackingNumberGenerator
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateShipmentUseCase) Execute(ctx context.Context, cmd CreateShipmentCommand) (entities.Shipment, error) {
	logger := application.ResolveLogger(uc.Logger)

	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Shipment{}, domainerrors.ErrInvalidShipmentInput
	}
	status := entities.StatusPending
	if raw := strings.TrimSpace(cmd.Status); raw != "" {
		status = entities.Status(raw)
	}

	now := uc.Clock.Now().UTC()
	shipmentID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Shipment{}, err
	}
	shipment := entities.Shipment{
		ShipmentID:        shipmentID,
		SenderName:        strings.TrimSpace(cmd.SenderName),
		ReceiverName:      strings.TrimSpace(cmd.ReceiverName),
		Origin:            strings.TrimSpace(cmd.Origin),
		Destination:       strings.TrimSpace(cmd.Destination),
		Status:            status,
		Weight:            cmd.Weight,
		Description:       strings.TrimSpace(cmd.Description),
		EstimatedDelivery: cmd.EstimatedDelivery,
		CreatedBy:         strings.TrimSpace(cmd.ActorID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if !shipment.ValidateBasics() {
		return entities.Shipment{}, domainerrors.ErrInvalidShipmentInput
	}

	created := false
	for attempt := 0; attempt < trackingMaxAttempts; attempt++ {
		trackingNumber, err := uc.Tracking.NewTrackingNumber(ctx)
		if err != nil {
			return entities.Shipment{}, err
		}
		shipment.TrackingNumber = entities.NormalizeTrackingNumber(trackingNumber)

		err = uc.Shipments.CreateShipment(ctx, shipment)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, domainerrors.ErrTrackingNumberTaken) {
			continue
		}
		return entities.Shipment{}, err
	}
	if !created {
		return entities.Shipment{}, domainerrors.ErrTrackingNumberTaken
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Shipment{}, err
	}
	if err := uc.History.AppendStatus(ctx, entities.StatusEvent{
		EventID:    eventID,
		ShipmentID: shipment.ShipmentID,
		Status:     shipment.Status,
		ChangedBy:  shipment.CreatedBy,
		Notes:      "shipment created",
		CreatedAt:  now,
	}); err != nil {
		return entities.Shipment{}, err
	}

	logger.Info("shipment created",
		"event", "shipment_created",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"shipment_id", shipment.ShipmentID,
		"tracking_number", shipment.TrackingNumber,
		"status", string(shipment.Status),
	)
	return shipment, nil
}
