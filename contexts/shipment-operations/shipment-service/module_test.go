package shipmentservice

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"shipline/contexts/shipment-operations/shipment-service/application/queries"
	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/domain/services"
	httptransport "shipline/contexts/shipment-operations/shipment-service/transport/http"
)

var (
	owner     = services.Actor{UserID: "user-owner", Role: "user"}
	otherUser = services.Actor{UserID: "user-other", Role: "user"}
	admin     = services.Actor{UserID: "user-admin", Role: "admin"}
)

func createShipment(t *testing.T, module Module, actor services.Actor) httptransport.ShipmentDTO {
	t.Helper()
	shipment, err := module.Handler.CreateShipmentHandler(context.Background(), actor, httptransport.CreateShipmentRequest{
		SenderName:   "Acme Logistics",
		ReceiverName: "Jane Doe",
		Origin:       "Rotterdam",
		Destination:  "Hamburg",
	})
	if err != nil {
		t.Fatalf("create shipment: %v", err)
	}
	return shipment
}

func changeStatus(t *testing.T, module Module, actor services.Actor, shipmentID string, status string) httptransport.ShipmentDTO {
	t.Helper()
	shipment, err := module.Handler.ChangeStatusHandler(context.Background(), actor, shipmentID, httptransport.ChangeStatusRequest{
		Status: status,
	})
	if err != nil {
		t.Fatalf("change status to %s: %v", status, err)
	}
	return shipment
}

func TestCreateShipmentDefaults(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)

	if shipment.Status != string(entities.StatusPending) {
		t.Fatalf("new shipments must start pending, got %s", shipment.Status)
	}
	if !strings.HasPrefix(shipment.TrackingNumber, "SHP-") || len(shipment.TrackingNumber) != 14 {
		t.Fatalf("unexpected tracking number format: %q", shipment.TrackingNumber)
	}
	if shipment.CreatedBy != owner.UserID {
		t.Fatalf("creator must own the shipment, got %s", shipment.CreatedBy)
	}

	details, err := module.Handler.GetShipmentHandler(context.Background(), owner, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("get shipment: %v", err)
	}
	if len(details.History) != 1 {
		t.Fatalf("creation must write one history entry, got %d", len(details.History))
	}
	if details.History[0].Status != string(entities.StatusPending) {
		t.Fatalf("initial history entry must be pending, got %s", details.History[0].Status)
	}
}

func TestCreateShipmentValidation(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	_, err := module.Handler.CreateShipmentHandler(context.Background(), owner, httptransport.CreateShipmentRequest{
		SenderName:   "",
		ReceiverName: "Jane Doe",
		Origin:       "Rotterdam",
		Destination:  "Hamburg",
	})
	if !errors.Is(err, domainerrors.ErrInvalidShipmentInput) {
		t.Fatalf("expected ErrInvalidShipmentInput, got %v", err)
	}

	_, err = module.Handler.CreateShipmentHandler(context.Background(), owner, httptransport.CreateShipmentRequest{
		SenderName:   "Acme Logistics",
		ReceiverName: "Jane Doe",
		Origin:       "Rotterdam",
		Destination:  "Hamburg",
		Status:       "returned",
	})
	if !errors.Is(err, domainerrors.ErrInvalidShipmentInput) {
		t.Fatalf("unsupported initial status: expected ErrInvalidShipmentInput, got %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)

	moved := changeStatus(t, module, owner, shipment.ShipmentID, "in_transit")
	if moved.ActualDelivery != "" {
		t.Fatal("in_transit must not set the delivery timestamp")
	}

	delivered := changeStatus(t, module, owner, shipment.ShipmentID, "delivered")
	if delivered.ActualDelivery == "" {
		t.Fatal("delivery must set the actual delivery timestamp")
	}

	details, err := module.Handler.GetShipmentHandler(context.Background(), owner, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("get shipment: %v", err)
	}
	if len(details.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(details.History))
	}
	want := []string{"pending", "in_transit", "delivered"}
	for i, entry := range details.History {
		if entry.Status != want[i] {
			t.Fatalf("history[%d] = %s, want %s", i, entry.Status, want[i])
		}
	}
}

func TestStatusSelfTransitionIsNoOp(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)

	same := changeStatus(t, module, owner, shipment.ShipmentID, "pending")
	if same.Status != string(entities.StatusPending) {
		t.Fatalf("self transition changed status to %s", same.Status)
	}

	details, err := module.Handler.GetShipmentHandler(context.Background(), owner, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("get shipment: %v", err)
	}
	if len(details.History) != 1 {
		t.Fatalf("self transition must not append history, got %d entries", len(details.History))
	}
}

func TestStatusInvalidTransitions(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)
	ctx := context.Background()

	_, err := module.Handler.ChangeStatusHandler(ctx, owner, shipment.ShipmentID, httptransport.ChangeStatusRequest{Status: "delivered"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("pending to delivered: expected ErrInvalidStatusTransition, got %v", err)
	}

	_, err = module.Handler.ChangeStatusHandler(ctx, owner, shipment.ShipmentID, httptransport.ChangeStatusRequest{Status: "lost"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("unknown status: expected ErrInvalidStatusTransition, got %v", err)
	}
	var transitionErr *domainerrors.TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("unknown status: expected a transition error payload, got %v", err)
	}
	if transitionErr.Current != "pending" || transitionErr.Requested != "lost" {
		t.Fatalf("transition error must name the real current state, got %+v", transitionErr)
	}

	changeStatus(t, module, owner, shipment.ShipmentID, "in_transit")
	changeStatus(t, module, owner, shipment.ShipmentID, "delivered")
	_, err = module.Handler.ChangeStatusHandler(ctx, owner, shipment.ShipmentID, httptransport.ChangeStatusRequest{Status: "cancelled"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("delivered is terminal: expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestUpdateShipmentKeepsImmutableFields(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)

	weight := 12.5
	updated, err := module.Handler.UpdateShipmentHandler(context.Background(), owner, shipment.ShipmentID, httptransport.UpdateShipmentRequest{
		SenderName:   "Acme Logistics BV",
		ReceiverName: "Jane Doe",
		Origin:       "Rotterdam",
		Destination:  "Munich",
		Weight:       &weight,
		Description:  "fragile",
	})
	if err != nil {
		t.Fatalf("update shipment: %v", err)
	}
	if updated.Destination != "Munich" || updated.Description != "fragile" {
		t.Fatalf("descriptive fields not applied: %+v", updated)
	}
	if updated.TrackingNumber != shipment.TrackingNumber {
		t.Fatal("tracking number must never change on update")
	}
	if updated.CreatedBy != shipment.CreatedBy {
		t.Fatal("ownership must never change on update")
	}
	if updated.Status != shipment.Status {
		t.Fatal("update must not touch the status")
	}
}

func TestOwnershipGuards(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)
	ctx := context.Background()

	if _, err := module.Handler.GetShipmentHandler(ctx, otherUser, shipment.ShipmentID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("foreign read: expected ErrForbidden, got %v", err)
	}
	if _, err := module.Handler.ChangeStatusHandler(ctx, otherUser, shipment.ShipmentID, httptransport.ChangeStatusRequest{Status: "in_transit"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("foreign status change: expected ErrForbidden, got %v", err)
	}
	if err := module.Handler.DeleteShipmentHandler(ctx, otherUser, shipment.ShipmentID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("foreign delete: expected ErrForbidden, got %v", err)
	}
	if _, err := module.Handler.GetShipmentHandler(ctx, admin, shipment.ShipmentID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestDeleteStateGuard(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	shipment := createShipment(t, module, owner)
	ctx := context.Background()
	changeStatus(t, module, owner, shipment.ShipmentID, "in_transit")

	if err := module.Handler.DeleteShipmentHandler(ctx, owner, shipment.ShipmentID); !errors.Is(err, domainerrors.ErrShipmentNotDeletable) {
		t.Fatalf("owner deleting in_transit: expected ErrShipmentNotDeletable, got %v", err)
	}
	// Admins bypass the state guard.
	if err := module.Handler.DeleteShipmentHandler(ctx, admin, shipment.ShipmentID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := module.Handler.GetShipmentHandler(ctx, admin, shipment.ShipmentID); !errors.Is(err, domainerrors.ErrShipmentNotFound) {
		t.Fatalf("deleted shipment lookup: expected ErrShipmentNotFound, got %v", err)
	}

	cancelled := createShipment(t, module, owner)
	changeStatus(t, module, owner, cancelled.ShipmentID, "cancelled")
	if err := module.Handler.DeleteShipmentHandler(ctx, owner, cancelled.ShipmentID); err != nil {
		t.Fatalf("owner deleting cancelled: %v", err)
	}
}

func TestListShipmentsScoping(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	first := createShipment(t, module, owner)
	createShipment(t, module, owner)
	createShipment(t, module, otherUser)
	changeStatus(t, module, owner, first.ShipmentID, "in_transit")

	mine, err := module.Handler.ListShipmentsHandler(ctx, owner, queries.ListShipmentsQuery{})
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if mine.Total != 2 {
		t.Fatalf("owner must only see own shipments, got %d", mine.Total)
	}

	all, err := module.Handler.ListShipmentsHandler(ctx, admin, queries.ListShipmentsQuery{})
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("admin must see all shipments, got %d", all.Total)
	}

	moving, err := module.Handler.ListShipmentsHandler(ctx, admin, queries.ListShipmentsQuery{Status: "in_transit"})
	if err != nil {
		t.Fatalf("status filter: %v", err)
	}
	if moving.Total != 1 {
		t.Fatalf("expected 1 in_transit shipment, got %d", moving.Total)
	}

	if _, err := module.Handler.ListShipmentsHandler(ctx, admin, queries.ListShipmentsQuery{SortBy: "weight"}); !errors.Is(err, domainerrors.ErrInvalidShipmentInput) {
		t.Fatalf("unsupported sort field: expected ErrInvalidShipmentInput, got %v", err)
	}
}

func TestListShipmentsSearch(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	target := createShipment(t, module, owner)
	createShipment(t, module, owner)

	found, err := module.Handler.ListShipmentsHandler(ctx, owner, queries.ListShipmentsQuery{
		Search: strings.ToLower(target.TrackingNumber),
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if found.Total != 1 || found.Items[0].ShipmentID != target.ShipmentID {
		t.Fatalf("tracking number search must match exactly one shipment, got %d", found.Total)
	}
}

func TestStats(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	first := createShipment(t, module, owner)
	createShipment(t, module, owner)
	foreign := createShipment(t, module, otherUser)
	changeStatus(t, module, owner, first.ShipmentID, "in_transit")
	changeStatus(t, module, otherUser, foreign.ShipmentID, "cancelled")

	mine, err := module.Handler.StatsHandler(ctx, owner, false)
	if err != nil {
		t.Fatalf("stats as owner: %v", err)
	}
	if mine.Total != 2 || mine.Pending != 1 || mine.InTransit != 1 {
		t.Fatalf("unexpected owner stats: %+v", mine)
	}

	global, err := module.Handler.StatsHandler(ctx, admin, false)
	if err != nil {
		t.Fatalf("stats as admin: %v", err)
	}
	if global.Total != 3 || global.Cancelled != 1 {
		t.Fatalf("unexpected global stats: %+v", global)
	}

	adminOwn, err := module.Handler.StatsHandler(ctx, admin, true)
	if err != nil {
		t.Fatalf("admin own stats: %v", err)
	}
	if adminOwn.Total != 0 {
		t.Fatalf("admin owns no shipments, got total %d", adminOwn.Total)
	}
}

func TestTracking(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	shipment := createShipment(t, module, owner)
	changeStatus(t, module, owner, shipment.ShipmentID, "in_transit")

	tracked, err := module.Handler.TrackShipmentHandler(ctx, strings.ToLower(shipment.TrackingNumber))
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if tracked.Status != "in_transit" {
		t.Fatalf("unexpected tracked status %s", tracked.Status)
	}
	if tracked.SenderName != shipment.SenderName || tracked.ReceiverName != shipment.ReceiverName {
		t.Fatalf("tracking must carry the shipment names, got %q/%q", tracked.SenderName, tracked.ReceiverName)
	}
	if len(tracked.History) != 2 {
		t.Fatalf("expected 2 public history entries, got %d", len(tracked.History))
	}

	if _, err := module.Handler.TrackShipmentHandler(ctx, "SHP-DOESNOTEX1"); !errors.Is(err, domainerrors.ErrShipmentNotFound) {
		t.Fatalf("unknown tracking number: expected ErrShipmentNotFound, got %v", err)
	}
	if _, err := module.Handler.TrackShipmentHandler(ctx, "   "); !errors.Is(err, domainerrors.ErrShipmentNotFound) {
		t.Fatalf("blank tracking number: expected ErrShipmentNotFound, got %v", err)
	}
}

func TestAttachments(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	shipment := createShipment(t, module, owner)

	attachment, err := module.Handler.AddAttachmentHandler(
		ctx, owner, shipment.ShipmentID,
		"invoice.pdf", "application/pdf",
		bytes.NewReader([]byte("%PDF-1.4 test payload")),
	)
	if err != nil {
		t.Fatalf("add attachment: %v", err)
	}
	if attachment.OriginalName != "invoice.pdf" {
		t.Fatalf("unexpected original name %q", attachment.OriginalName)
	}
	if attachment.SizeBytes == 0 {
		t.Fatal("attachment size must be recorded")
	}
	if !strings.HasSuffix(attachment.FileName, ".pdf") {
		t.Fatalf("stored file name must keep the extension, got %q", attachment.FileName)
	}

	details, err := module.Handler.GetShipmentHandler(ctx, owner, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("get shipment: %v", err)
	}
	if len(details.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(details.Attachments))
	}

	second := createShipment(t, module, owner)
	if err := module.Handler.RemoveAttachmentHandler(ctx, owner, second.ShipmentID, attachment.AttachmentID); !errors.Is(err, domainerrors.ErrAttachmentNotFound) {
		t.Fatalf("attachment under the wrong shipment: expected ErrAttachmentNotFound, got %v", err)
	}

	if err := module.Handler.RemoveAttachmentHandler(ctx, owner, shipment.ShipmentID, attachment.AttachmentID); err != nil {
		t.Fatalf("remove attachment: %v", err)
	}
	details, err = module.Handler.GetShipmentHandler(ctx, owner, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("get shipment after removal: %v", err)
	}
	if len(details.Attachments) != 0 {
		t.Fatalf("expected no attachments after removal, got %d", len(details.Attachments))
	}
}
