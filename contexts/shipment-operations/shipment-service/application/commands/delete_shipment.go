package commands

import (
	"context"
	"log/slog"
	"strings"

	application "shipline/contexts/shipment-operations/shipment-service/application"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

type DeleteShipmentCommand struct {
	Actor      services.Actor
	ShipmentID string
}

// DeleteShipmentUseCase removes a shipment with its history and attachment
// records. Non-admin owners may only delete pending or cancelled shipments;
// admins bypass the state guard.
type DeleteShipmentUseCase struct {
	Shipments   ports.ShipmentRepository
	Attachments ports.AttachmentRepository
	Blobs       ports.BlobStore
	Logger      *slog.Logger
}

func (uc DeleteShipmentUseCase) Execute(ctx context.Context, cmd DeleteShipmentCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	shipment, err := uc.Shipments.GetShipment(ctx, strings.TrimSpace(cmd.ShipmentID))
	if err != nil {
		return err
	}
	if !services.CanAccess(cmd.Actor, shipment.CreatedBy) {
		return domainerrors.ErrForbidden
	}
	if !cmd.Actor.IsAdmin() && !shipment.Deletable() {
		return domainerrors.ErrShipmentNotDeletable
	}

	attachments, err := uc.Attachments.ListAttachmentsByShipment(ctx, shipment.ShipmentID)
	if err != nil {
		return err
	}
	if err := uc.Shipments.DeleteShipment(ctx, shipment.ShipmentID); err != nil {
		return err
	}

	// Blob removal is best-effort; the records are already gone.
	for _, attachment := range attachments {
		if err := uc.Blobs.Remove(ctx, attachment.StoragePath); err != nil {
			logger.Warn("attachment blob removal failed",
				"event", "attachment_blob_remove_failed",
				"module", "shipment-operations/shipment-service",
				"layer", "application",
				"shipment_id", shipment.ShipmentID,
				"attachment_id", attachment.AttachmentID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("shipment deleted",
		"event", "shipment_deleted",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"shipment_id", shipment.ShipmentID,
		"status", string(shipment.Status),
		"by_admin", cmd.Actor.IsAdmin(),
	)
	return nil
}
