package shipmentservice

import (
	"log/slog"

	httpadapter "shipline/contexts/shipment-operations/shipment-service/adapters/http"
	"shipline/contexts/shipment-operations/shipment-service/adapters/memory"
	"shipline/contexts/shipment-operations/shipment-service/application/commands"
	"shipline/contexts/shipment-operations/shipment-service/application/queries"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	"shipline/contexts/shipment-operations/shipment-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Shipments   ports.ShipmentRepository
	Attachments ports.AttachmentRepository
	History     ports.HistoryRepository
	Blobs       ports.BlobStore
	Tracking    ports.TrackingNumberGenerator
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createShipment := commands.CreateShipmentUseCase{
		Shipments: deps.Shipments,
		History:   deps.History,
		Tracking:  deps.Tracking,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	updateShipment := commands.UpdateShipmentUseCase{
		Shipments: deps.Shipments,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	changeStatus := commands.ChangeStatusUseCase{
		Shipments: deps.Shipments,
		History:   deps.History,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	deleteShipment := commands.DeleteShipmentUseCase{
		Shipments:   deps.Shipments,
		Attachments: deps.Attachments,
		Blobs:       deps.Blobs,
		Logger:      deps.Logger,
	}
	addAttachment := commands.AddAttachmentUseCase{
		Shipments:   deps.Shipments,
		Attachments: deps.Attachments,
		Blobs:       deps.Blobs,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		Logger:      deps.Logger,
	}
	removeAttachment := commands.RemoveAttachmentUseCase{
		Shipments:   deps.Shipments,
		Attachments: deps.Attachments,
		Blobs:       deps.Blobs,
		Logger:      deps.Logger,
	}

	getShipment := queries.GetShipmentUseCase{
		Shipments:   deps.Shipments,
		Attachments: deps.Attachments,
		History:     deps.History,
		Logger:      deps.Logger,
	}
	listShipments := queries.ListShipmentsUseCase{
		Shipments: deps.Shipments,
		Logger:    deps.Logger,
	}
	trackShipment := queries.TrackShipmentUseCase{
		Shipments: deps.Shipments,
		History:   deps.History,
		Logger:    deps.Logger,
	}
	stats := queries.StatsUseCase{
		Shipments: deps.Shipments,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateShipment:   createShipment,
			UpdateShipment:   updateShipment,
			ChangeStatus:     changeStatus,
			DeleteShipment:   deleteShipment,
			AddAttachment:    addAttachment,
			RemoveAttachment: removeAttachment,
			GetShipment:      getShipment,
			ListShipments:    listShipments,
			TrackShipment:    trackShipment,
			Stats:            stats,
			Clock:            deps.Clock,
			Logger:           deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store, which also
// serves as blob store, clock and generators.
func NewInMemoryModule(seed []entities.Shipment, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Shipments:   store,
		Attachments: store,
		History:     store,
		Blobs:       store,
		Tracking:    store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
