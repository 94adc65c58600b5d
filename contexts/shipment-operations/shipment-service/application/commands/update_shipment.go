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

type UpdateShipmentCommand struct {
	Actor             services.Actor
	ShipmentID        string
	SenderName        string
	ReceiverName      string
	Origin            string
	Destination       string
	Weight            *float64
	Description       string
	EstimatedDelivery *time.Time
}

// UpdateShipmentUseCase mutates descriptive fields. Tracking number, owner,
// status and history are out of reach here.
type UpdateShipmentUseCase struct {
	Shipments ports.ShipmentRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc UpdateShipmentUseCase) Execute(ctx context.Context, cmd UpdateShipmentCommand) (entities.Shipment, error) {
	logger := application.ResolveLogger(uc.Logger)

	shipment, err := uc.Shipments.GetShipment(ctx, strings.TrimSpace(cmd.ShipmentID))
	if err != nil {
		return entities.Shipment{}, err
	}
	if !services.CanAccess(cmd.Actor, shipment.CreatedBy) {
		return entities.Shipment{}, domainerrors.ErrForbidden
	}

	shipment.SenderName = strings.TrimSpace(cmd.SenderName)
	shipment.ReceiverName = strings.TrimSpace(cmd.ReceiverName)
	shipment.Origin = strings.TrimSpace(cmd.Origin)
	shipment.Destination = strings.TrimSpace(cmd.Destination)
	shipment.Weight = cmd.Weight
	shipment.Description = strings.TrimSpace(cmd.Description)
	shipment.EstimatedDelivery = cmd.EstimatedDelivery
	shipment.UpdatedBy = cmd.Actor.UserID
	shipment.UpdatedAt = uc.Clock.Now().UTC()
	if !shipment.ValidateBasics() {
		return entities.Shipment{}, domainerrors.ErrInvalidShipmentInput
	}

	if err := uc.Shipments.UpdateShipment(ctx, shipment); err != nil {
		return entities.Shipment{}, err
	}

	logger.Info("shipment updated",
		"event", "shipment_updated",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"shipment_id", shipment.ShipmentID,
	)
	return shipment, nil
}
