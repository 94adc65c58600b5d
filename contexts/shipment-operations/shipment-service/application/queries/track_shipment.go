package queries

import (
	"context"
	"log/slog"

	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

// TrackShipmentUseCase is the public, unauthenticated tracking lookup.
// Owner identity must never leave this query: the result type simply has no
// field for it.
type TrackShipmentUseCase struct {
	Shipments ports.ShipmentRepository
	History   ports.HistoryRepository
	Logger    *slog.Logger
}

func (uc TrackShipmentUseCase) Execute(ctx context.Context, trackingNumber string) (entities.Shipment, []entities.StatusEvent, error) {
	normalized := entities.NormalizeTrackingNumber(trackingNumber)
	if normalized == "" {
		return entities.Shipment{}, nil, domainerrors.ErrShipmentNotFound
	}
	shipment, err := uc.Shipments.GetShipmentByTrackingNumber(ctx, normalized)
	if err != nil {
		return entities.Shipment{}, nil, err
	}
	history, err := uc.History.ListStatusHistory(ctx, shipment.ShipmentID)
	if err != nil {
		return entities.Shipment{}, nil, err
	}
	return shipment, history, nil
}
