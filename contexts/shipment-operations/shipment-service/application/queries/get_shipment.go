package queries

import (
	"context"
	"log/slog"
	"strings"

	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

// ShipmentDetails is the read aggregate: record plus attachments and the
// status history log.
type ShipmentDetails struct {
	Shipment    entities.Shipment
	Attachments []entities.Attachment
	History     []entities.StatusEvent
}

type GetShipmentQuery struct {
	Actor      services.Actor
	ShipmentID string
}

type GetShipmentUseCase struct {
	Shipments   ports.ShipmentRepository
	Attachments ports.AttachmentRepository
	History     ports.HistoryRepository
	Logger      *slog.Logger
}

func (uc GetShipmentUseCase) Execute(ctx context.Context, query GetShipmentQuery) (ShipmentDetails, error) {
	shipment, err := uc.Shipments.GetShipment(ctx, strings.TrimSpace(query.ShipmentID))
	if err != nil {
		return ShipmentDetails{}, err
	}
	if !services.CanAccess(query.Actor, shipment.CreatedBy) {
		return ShipmentDetails{}, domainerrors.ErrForbidden
	}

	attachments, err := uc.Attachments.ListAttachmentsByShipment(ctx, shipment.ShipmentID)
	if err != nil {
		return ShipmentDetails{}, err
	}
	history, err := uc.History.ListStatusHistory(ctx, shipment.ShipmentID)
	if err != nil {
		return ShipmentDetails{}, err
	}
	return ShipmentDetails{
		Shipment:    shipment,
		Attachments: attachments,
		History:     history,
	}, nil
}
