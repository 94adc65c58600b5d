package queries

import (
	"context"
	"log/slog"

	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

type StatsQuery struct {
	Actor services.Actor
	// OwnerOnly scopes to the caller even for admins (the "my-stats" view).
	OwnerOnly bool
}

type Stats struct {
	Pending   int64
	InTransit int64
	Delivered int64
	Cancelled int64
	Total     int64
}

// StatsUseCase counts shipments per status. Admins see the whole store
// unless they ask for their own; everyone else is always scoped to self.
type StatsUseCase struct {
	Shipments ports.ShipmentRepository
	Logger    *slog.Logger
}

func (uc StatsUseCase) Execute(ctx context.Context, query StatsQuery) (Stats, error) {
	ownerID := query.Actor.UserID
	if query.Actor.IsAdmin() && !query.OwnerOnly {
		ownerID = ""
	}

	counts, err := uc.Shipments.CountByStatus(ctx, ownerID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Pending:   counts[entities.StatusPending],
		InTransit: counts[entities.StatusInTransit],
		Delivered: counts[entities.StatusDelivered],
		Cancelled: counts[entities.StatusCancelled],
	}
	stats.Total = stats.Pending + stats.InTransit + stats.Delivered + stats.Cancelled
	return stats, nil
}
