package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "shipline/contexts/shipment-operations/shipment-service/application"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

type ChangeStatusCommand struct {
	Actor      services.Actor
	ShipmentID string
	Status     string
	Notes      string
}

// ChangeStatusUseCase drives the shipment lifecycle: transition-table check,
// history append, delivery timestamp. History is append-only; tracking
// number and owner are never touched here.
type ChangeStatusUseCase struct {
	Shipments ports.ShipmentRepository
	History   ports.HistoryRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (entities.Shipment, error) {
	logger := application.ResolveLogger(uc.Logger)

	requested := entities.Status(strings.TrimSpace(cmd.Status))

	shipment, err := uc.Shipments.GetShipment(ctx, strings.TrimSpace(cmd.ShipmentID))
	if err != nil {
		return entities.Shipment{}, err
	}
	if !services.CanAccess(cmd.Actor, shipment.CreatedBy) {
		return entities.Shipment{}, domainerrors.ErrForbidden
	}

	// Idempotent no-op: no history entry, no delivery timestamp change.
	if shipment.Status == requested {
		return shipment, nil
	}
	// CanTransitionTo rejects unknown statuses too, so the error payload
	// always names the shipment's real current state.
	if !shipment.Status.CanTransitionTo(requested) {
		return entities.Shipment{}, &domainerrors.TransitionError{
			Current:   string(shipment.Status),
			Requested: string(requested),
		}
	}

	now := uc.Clock.Now().UTC()
	from := shipment.Status
	var actualDelivery *time.Time
	if requested == entities.StatusDelivered && shipment.ActualDelivery == nil {
		actualDelivery = &now
	}
	if err := uc.Shipments.UpdateShipmentStatus(
		ctx,
		shipment.ShipmentID,
		from,
		requested,
		actualDelivery,
		cmd.Actor.UserID,
		now,
	); err != nil {
		return entities.Shipment{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Shipment{}, err
	}
	if err := uc.History.AppendStatus(ctx, entities.StatusEvent{
		EventID:    eventID,
		ShipmentID: shipment.ShipmentID,
		Status:     requested,
		ChangedBy:  cmd.Actor.UserID,
		Notes:      strings.TrimSpace(cmd.Notes),
		CreatedAt:  now,
	}); err != nil {
		return entities.Shipment{}, err
	}

	shipment.Status = requested
	shipment.UpdatedBy = cmd.Actor.UserID
	shipment.UpdatedAt = now
	if actualDelivery != nil {
		shipment.ActualDelivery = actualDelivery
	}

	logger.Info("shipment status changed",
		"event", "shipment_status_changed",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"shipment_id", shipment.ShipmentID,
		"from_status", string(from),
		"to_status", string(requested),
	)
	return shipment, nil
}
