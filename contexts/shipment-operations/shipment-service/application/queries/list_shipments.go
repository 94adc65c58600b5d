package queries

import (
	"context"
	"log/slog"
	"strings"

	application "shipline/contexts/shipment-operations/shipment-service/application"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var supportedSortFields = map[string]bool{
	"created_at":         true,
	"updated_at":         true,
	"status":             true,
	"estimated_delivery": true,
}

type ListShipmentsQuery struct {
	Actor     services.Actor
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ListShipmentsUseCase struct {
	Shipments ports.ShipmentRepository
	Logger    *slog.Logger
}

func (uc ListShipmentsUseCase) Execute(ctx context.Context, query ListShipmentsQuery) (ports.ShipmentPage, ports.ShipmentFilter, error) {
	logger := application.ResolveLogger(uc.Logger)

	filter := ports.ShipmentFilter{
		Search:    strings.TrimSpace(query.Search),
		SortBy:    strings.TrimSpace(query.SortBy),
		SortOrder: strings.ToLower(strings.TrimSpace(query.SortOrder)),
		Page:      query.Page,
		Limit:     query.Limit,
	}
	// Non-admin callers only ever see their own shipments.
	if !query.Actor.IsAdmin() {
		filter.OwnerID = query.Actor.UserID
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		if !entities.IsSupportedStatus(entities.Status(status)) {
			return ports.ShipmentPage{}, filter, domainerrors.ErrInvalidShipmentInput
		}
		filter.Status = entities.Status(status)
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if !supportedSortFields[filter.SortBy] {
		return ports.ShipmentPage{}, filter, domainerrors.ErrInvalidShipmentInput
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		return ports.ShipmentPage{}, filter, domainerrors.ErrInvalidShipmentInput
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	page, err := uc.Shipments.ListShipments(ctx, filter)
	if err != nil {
		return ports.ShipmentPage{}, filter, err
	}

	logger.Info("shipments listed",
		"event", "shipments_listed",
		"module", "shipment-operations/shipment-service",
		"layer", "application",
		"count", len(page.Items),
		"total", page.Total,
	)
	return page, filter, nil
}
