package commands

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	application "shipline/contexts/shipment-operations/shipment-service/application"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

type AddAttachmentCommand struct {
	Actor        services.Actor
	ShipmentID   string
	OriginalName string
	ContentType  string
	Content      io.Reader
}

type AddAttachmentUseCase struct {
	Shipments   ports.ShipmentRepository
	Attachments ports.AttachmentRepository
	Blobs       ports.BlobStore
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (entities.Attachment, error) {
	logger := application.ResolveLogger(uc.Logger)

	originalName := path.Base(strings.TrimSpace(cmd.OriginalName))
	if originalName == "" || originalName == "." || originalName == "/" || cmd.Content == nil {
		return entities.Attachment{}, domainerrors.ErrInvalidShipmentInput
	}

	shipment, err := uc.Shipments.GetShipment(ctx, strings.TrimSpace(cmd.ShipmentID))
	if err != nil {
		return entities.Attachment{}, err
	}
	if !services.CanAccess(cmd.Actor, shipment.CreatedBy) {
		return entities.Attachment{}, domainerrors.ErrForbidden
	}

	attachmentID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Attachment{}, err
	}
	fileName := attachmentID + path.Ext(originalName)

	// Metadata is recorded only after byte storage confirms.
	storagePath, size, err := uc.Blobs.Store(ctx, fileName, cmd.Content)
	if err != nil {
		return entities.Attachment{}, err
	}

	attachment := entities.Attachment{
		AttachmentID: attachmentID,
		ShipmentID:   shipment.ShipmentID,
		FileName:     fileName,
		OriginalName: originalName,
		StoragePath:  storagePath,
		ContentType:  strings.TrimSpace(cmd.ContentType),
		SizeBytes:    size,
		UploadedBy:   cmd.Actor.UserID,
		UploadedAt:   uc.Clock.Now().UTC(),
	}
	if err := uc.Attachments.AddAttachment(ctx, attachment); err != nil {
		if removeErr := uc.Blobs.Remove(ctx, storagePath); removeErr != nil {
			logger.Warn("orphan blob cleanup failed",
				"event", "attachment_blob_remove_failed",
				"module", "shipment-operations/shipment-service",
				"layer", "application",
				"attachment_id", attachmentID,
				"error", removeErr.Error(),
			)
		}
		return entities.Attachment{}, err
	}

	logger.Info("attachment added",
		"event", "attachment_added",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"shipment_id", shipment.ShipmentID,
		"attachment_id", attachment.AttachmentID,
		"size_bytes", attachment.SizeBytes,
	)
	return attachment, nil
}

type RemoveAttachmentCommand struct {
	Actor        services.Actor
	ShipmentID   string
	AttachmentID string
}

type RemoveAttachmentUseCase struct {
	Shipments   ports.ShipmentRepository
	Attachments ports.AttachmentRepository
	Blobs       ports.BlobStore
	Logger      *slog.Logger
}

func (uc RemoveAttachmentUseCase) Execute(ctx context.Context, cmd RemoveAttachmentCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	shipment, err := uc.Shipments.GetShipment(ctx, strings.TrimSpace(cmd.ShipmentID))
	if err != nil {
		return err
	}
	if !services.CanAccess(cmd.Actor, shipment.CreatedBy) {
		return domainerrors.ErrForbidden
	}

	attachment, err := uc.Attachments.GetAttachment(ctx, strings.TrimSpace(cmd.AttachmentID))
	if err != nil {
		return err
	}
	if attachment.ShipmentID != shipment.ShipmentID {
		return domainerrors.ErrAttachmentNotFound
	}

	if err := uc.Attachments.RemoveAttachment(ctx, attachment.AttachmentID); err != nil {
		return err
	}
	if err := uc.Blobs.Remove(ctx, attachment.StoragePath); err != nil {
		logger.Warn("attachment blob removal failed",
			"event", "attachment_blob_remove_failed",
			"module", "shipment-operations/shipment-service",
			"layer", "application",
			"attachment_id", attachment.AttachmentID,
			"error", err.Error(),
		)
	}

	logger.Info("attachment removed",
		"event", "attachment_removed",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"shipment_id", shipment.ShipmentID,
		"attachment_id", attachment.AttachmentID,
	)
	return nil
}
