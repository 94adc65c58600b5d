package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"shipline/contexts/shipment-operations/shipment-service/application/commands"
	"shipline/contexts/shipment-operations/shipment-service/application/queries"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
	httptransport "shipline/contexts/shipment-operations/shipment-service/transport/http"
)

type Handler struct {
	CreateShipment   commands.CreateShipmentUseCase
	UpdateShipment   commands.UpdateShipmentUseCase
	ChangeStatus     commands.ChangeStatusUseCase
	DeleteShipment   commands.DeleteShipmentUseCase
	AddAttachment    commands.AddAttachmentUseCase
	RemoveAttachment commands.RemoveAttachmentUseCase
	GetShipment      queries.GetShipmentUseCase
	ListShipments    queries.ListShipmentsUseCase
	TrackShipment    queries.TrackShipmentUseCase
	Stats            queries.StatsUseCase
	Clock            ports.Clock
	Logger           *slog.Logger
}

// CreateShipmentHandler godoc
// @Summary Create a shipment
// @Description Creates a shipment with a generated tracking number and an initial history entry.
// @Tags shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateShipmentRequest true "Shipment payload"
// @Success 201 {object} httptransport.ShipmentDTO
// @Failure 422 {string} string "validation failed"
// @Router /shipments [post]
func (h Handler) CreateShipmentHandler(ctx context.Context, actor services.Actor, req httptransport.CreateShipmentRequest) (httptransport.ShipmentDTO, error) {
	estimated, err := parseOptionalTime(req.EstimatedDelivery)
	if err != nil {
		return httptransport.ShipmentDTO{}, domainerrors.ErrInvalidShipmentInput
	}
	shipment, err := h.CreateShipment.Execute(ctx, commands.CreateShipmentCommand{
		ActorID:           actor.UserID,
		SenderName:        req.SenderName,
		ReceiverName:      req.ReceiverName,
		Origin:            req.Origin,
		Destination:       req.Destination,
		Status:            req.Status,
		Weight:            req.Weight,
		Description:       req.Description,
		EstimatedDelivery: estimated,
	})
	if err != nil {
		return httptransport.ShipmentDTO{}, err
	}
	return h.mapShipment(shipment), nil
}

// UpdateShipmentHandler godoc
// @Summary Update shipment details
// @Description Updates descriptive fields only. Status changes go through the status endpoint.
// @Tags shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment id"
// @Param request body httptransport.UpdateShipmentRequest true "Shipment fields"
// @Success 200 {object} httptransport.ShipmentDTO
// @Failure 403 {string} string "not owner or admin"
// @Failure 404 {string} string "not found"
// @Router /shipments/{id} [put]
func (h Handler) UpdateShipmentHandler(ctx context.Context, actor services.Actor, shipmentID string, req httptransport.UpdateShipmentRequest) (httptransport.ShipmentDTO, error) {
	estimated, err := parseOptionalTime(req.EstimatedDelivery)
	if err != nil {
		return httptransport.ShipmentDTO{}, domainerrors.ErrInvalidShipmentInput
	}
	shipment, err := h.UpdateShipment.Execute(ctx, commands.UpdateShipmentCommand{
		Actor:             actor,
		ShipmentID:        shipmentID,
		SenderName:        req.SenderName,
		ReceiverName:      req.ReceiverName,
		Origin:            req.Origin,
		Destination:       req.Destination,
		Weight:            req.Weight,
		Description:       req.Description,
		EstimatedDelivery: estimated,
	})
	if err != nil {
		return httptransport.ShipmentDTO{}, err
	}
	return h.mapShipment(shipment), nil
}

// ChangeStatusHandler godoc
// @Summary Change shipment status
// @Description Applies a lifecycle transition and appends a history entry. Re-sending the current status is a no-op.
// @Tags shipments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment id"
// @Param request body httptransport.ChangeStatusRequest true "Target status and optional notes"
// @Success 200 {object} httptransport.ShipmentDTO
// @Failure 400 {string} string "invalid transition"
// @Router /shipments/{id}/status [patch]
func (h Handler) ChangeStatusHandler(ctx context.Context, actor services.Actor, shipmentID string, req httptransport.ChangeStatusRequest) (httptransport.ShipmentDTO, error) {
	shipment, err := h.ChangeStatus.Execute(ctx, commands.ChangeStatusCommand{
		Actor:      actor,
		ShipmentID: shipmentID,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		return httptransport.ShipmentDTO{}, err
	}
	return h.mapShipment(shipment), nil
}

// DeleteShipmentHandler godoc
// @Summary Delete a shipment
// @Description Removes the shipment with its history, attachment records and stored files.
// @Tags shipments
// @Security BearerAuth
// @Param id path string true "Shipment id"
// @Success 200 {string} string "deleted"
// @Failure 400 {string} string "shipment not deletable in its current status"
// @Router /shipments/{id} [delete]
func (h Handler) DeleteShipmentHandler(ctx context.Context, actor services.Actor, shipmentID string) error {
	return h.DeleteShipment.Execute(ctx, commands.DeleteShipmentCommand{
		Actor:      actor,
		ShipmentID: shipmentID,
	})
}

// GetShipmentHandler godoc
// @Summary Get a shipment
// @Description Returns the shipment with its attachments and full status history.
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment id"
// @Success 200 {object} httptransport.ShipmentDetailsResponse
// @Failure 403 {string} string "not owner or admin"
// @Failure 404 {string} string "not found"
// @Router /shipments/{id} [get]
func (h Handler) GetShipmentHandler(ctx context.Context, actor services.Actor, shipmentID string) (httptransport.ShipmentDetailsResponse, error) {
	details, err := h.GetShipment.Execute(ctx, queries.GetShipmentQuery{
		Actor:      actor,
		ShipmentID: shipmentID,
	})
	if err != nil {
		return httptransport.ShipmentDetailsResponse{}, err
	}

	attachments := make([]httptransport.AttachmentDTO, 0, len(details.Attachments))
	for _, item := range details.Attachments {
		attachments = append(attachments, mapAttachment(item))
	}
	history := make([]httptransport.StatusEventDTO, 0, len(details.History))
	for _, item := range details.History {
		history = append(history, mapStatusEvent(item))
	}
	return httptransport.ShipmentDetailsResponse{
		Shipment:    h.mapShipment(details.Shipment),
		Attachments: attachments,
		History:     history,
	}, nil
}

// ListShipmentsHandler godoc
// @Summary List shipments
// @Description Paginated listing with status filter, search and sorting. Non-admins only see their own shipments.
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param search query string false "Tracking number, sender or receiver search"
// @Param sortBy query string false "created_at, updated_at, status or estimated_delivery"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httptransport.ListShipmentsResponse
// @Router /shipments [get]
func (h Handler) ListShipmentsHandler(ctx context.Context, actor services.Actor, query queries.ListShipmentsQuery) (httptransport.ListShipmentsResponse, error) {
	query.Actor = actor
	page, filter, err := h.ListShipments.Execute(ctx, query)
	if err != nil {
		return httptransport.ListShipmentsResponse{}, err
	}
	items := make([]httptransport.ShipmentDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, h.mapShipment(item))
	}
	return httptransport.ListShipmentsResponse{
		Items: items,
		Total: page.Total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// TrackShipmentHandler godoc
// @Summary Track a shipment
// @Description Public lookup by tracking number. The response never includes account identifiers.
// @Tags tracking
// @Produce json
// @Param trackingNumber path string true "Tracking number"
// @Success 200 {object} httptransport.TrackingResponse
// @Failure 404 {string} string "not found"
// @Router /track/{trackingNumber} [get]
func (h Handler) TrackShipmentHandler(ctx context.Context, trackingNumber string) (httptransport.TrackingResponse, error) {
	shipment, history, err := h.TrackShipment.Execute(ctx, trackingNumber)
	if err != nil {
		return httptransport.TrackingResponse{}, err
	}

	now := h.Clock.Now().UTC()
	events := make([]httptransport.TrackingEventDTO, 0, len(history))
	for _, item := range history {
		events = append(events, httptransport.TrackingEventDTO{
			Status:    string(item.Status),
			Notes:     item.Notes,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
	}
	resp := httptransport.TrackingResponse{
		TrackingNumber: shipment.TrackingNumber,
		SenderName:     shipment.SenderName,
		ReceiverName:   shipment.ReceiverName,
		Status:         string(shipment.Status),
		Origin:         shipment.Origin,
		Destination:    shipment.Destination,
		DaysInTransit:  shipment.DaysInTransit(now),
		IsOverdue:      shipment.IsOverdue(now),
		CreatedAt:      shipment.CreatedAt.Format(time.RFC3339),
		History:        events,
	}
	if shipment.EstimatedDelivery != nil {
		resp.EstimatedDelivery = shipment.EstimatedDelivery.Format(time.RFC3339)
	}
	if shipment.ActualDelivery != nil {
		resp.ActualDelivery = shipment.ActualDelivery.Format(time.RFC3339)
	}
	return resp, nil
}

// StatsHandler godoc
// @Summary Shipment counts per status
// @Description Admins see global counts unless mine=true; other roles always get their own.
// @Tags shipments
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Scope to own shipments"
// @Success 200 {object} httptransport.StatsResponse
// @Router /shipments/stats [get]
// @Router /shipments/my-stats [get]
func (h Handler) StatsHandler(ctx context.Context, actor services.Actor, ownerOnly bool) (httptransport.StatsResponse, error) {
	stats, err := h.Stats.Execute(ctx, queries.StatsQuery{
		Actor:     actor,
		OwnerOnly: ownerOnly,
	})
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	return httptransport.StatsResponse{
		Pending:   stats.Pending,
		InTransit: stats.InTransit,
		Delivered: stats.Delivered,
		Cancelled: stats.Cancelled,
		Total:     stats.Total,
	}, nil
}

// AddAttachmentHandler godoc
// @Summary Upload an attachment
// @Description Stores the uploaded file and records it against the shipment.
// @Tags shipments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shipment id"
// @Param file formData file true "File to attach"
// @Success 201 {object} httptransport.AttachmentDTO
// @Failure 422 {string} string "missing file"
// @Router /shipments/{id}/attachments [post]
func (h Handler) AddAttachmentHandler(ctx context.Context, actor services.Actor, shipmentID string, originalName string, contentType string, content io.Reader) (httptransport.AttachmentDTO, error) {
	attachment, err := h.AddAttachment.Execute(ctx, commands.AddAttachmentCommand{
		Actor:        actor,
		ShipmentID:   shipmentID,
		OriginalName: originalName,
		ContentType:  contentType,
		Content:      content,
	})
	if err != nil {
		return httptransport.AttachmentDTO{}, err
	}
	return mapAttachment(attachment), nil
}

// RemoveAttachmentHandler godoc
// @Summary Remove an attachment
// @Tags shipments
// @Security BearerAuth
// @Param id path string true "Shipment id"
// @Param attachmentId path string true "Attachment id"
// @Success 200 {string} string "removed"
// @Failure 404 {string} string "not found"
// @Router /shipments/{id}/attachments/{attachmentId} [delete]
func (h Handler) RemoveAttachmentHandler(ctx context.Context, actor services.Actor, shipmentID string, attachmentID string) error {
	return h.RemoveAttachment.Execute(ctx, commands.RemoveAttachmentCommand{
		Actor:        actor,
		ShipmentID:   shipmentID,
		AttachmentID: attachmentID,
	})
}

func (h Handler) mapShipment(item entities.Shipment) httptransport.ShipmentDTO {
	now := h.Clock.Now().UTC()
	dto := httptransport.ShipmentDTO{
		ShipmentID:     item.ShipmentID,
		TrackingNumber: item.TrackingNumber,
		SenderName:     item.SenderName,
		ReceiverName:   item.ReceiverName,
		Origin:         item.Origin,
		Destination:    item.Destination,
		Status:         string(item.Status),
		Weight:         item.Weight,
		Description:    item.Description,
		DaysInTransit:  item.DaysInTransit(now),
		IsOverdue:      item.IsOverdue(now),
		CreatedBy:      item.CreatedBy,
		UpdatedBy:      item.UpdatedBy,
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
	if item.EstimatedDelivery != nil {
		dto.EstimatedDelivery = item.EstimatedDelivery.Format(time.RFC3339)
	}
	if item.ActualDelivery != nil {
		dto.ActualDelivery = item.ActualDelivery.Format(time.RFC3339)
	}
	return dto
}

func mapAttachment(item entities.Attachment) httptransport.AttachmentDTO {
	return httptransport.AttachmentDTO{
		AttachmentID: item.AttachmentID,
		ShipmentID:   item.ShipmentID,
		FileName:     item.FileName,
		OriginalName: item.OriginalName,
		ContentType:  item.ContentType,
		SizeBytes:    item.SizeBytes,
		UploadedBy:   item.UploadedBy,
		UploadedAt:   item.UploadedAt.Format(time.RFC3339),
	}
}

func mapStatusEvent(item entities.StatusEvent) httptransport.StatusEventDTO {
	return httptransport.StatusEventDTO{
		EventID:   item.EventID,
		Status:    string(item.Status),
		ChangedBy: item.ChangedBy,
		Notes:     item.Notes,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}

// parseOptionalTime accepts RFC3339 or a bare date.
func parseOptionalTime(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		utc := parsed.UTC()
		return &utc, nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	utc := parsed.UTC()
	return &utc, nil
}
