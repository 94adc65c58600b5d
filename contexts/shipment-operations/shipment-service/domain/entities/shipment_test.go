package entities

import (
	"testing"
	"time"
)

func validShipment() Shipment {
	return Shipment{
		ShipmentID:   "ship-1",
		SenderName:   "Acme Logistics",
		ReceiverName: "Jane Doe",
		Origin:       "Rotterdam",
		Destination:  "Hamburg",
		Status:       StatusPending,
		CreatedBy:    "user-1",
	}
}

func TestValidateBasics(t *testing.T) {
	if !validShipment().ValidateBasics() {
		t.Fatal("expected valid shipment to pass")
	}

	negative := -1.5
	cases := []struct {
		name   string
		mutate func(*Shipment)
	}{
		{name: "blank sender", mutate: func(s *Shipment) { s.SenderName = "  " }},
		{name: "blank receiver", mutate: func(s *Shipment) { s.ReceiverName = "" }},
		{name: "blank origin", mutate: func(s *Shipment) { s.Origin = "" }},
		{name: "blank destination", mutate: func(s *Shipment) { s.Destination = "" }},
		{name: "negative weight", mutate: func(s *Shipment) { s.Weight = &negative }},
		{name: "unsupported status", mutate: func(s *Shipment) { s.Status = "returned" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shipment := validShipment()
			tc.mutate(&shipment)
			if shipment.ValidateBasics() {
				t.Fatal("expected validation to fail")
			}
		})
	}
}

func TestDaysInTransit(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pending := validShipment()
	pending.CreatedAt = created
	if got := pending.DaysInTransit(created.Add(72 * time.Hour)); got != 0 {
		t.Fatalf("pending shipment reported %d days in transit", got)
	}

	moving := validShipment()
	moving.Status = StatusInTransit
	moving.CreatedAt = created
	if got := moving.DaysInTransit(created.Add(25 * time.Hour)); got != 2 {
		t.Fatalf("expected partial days to round up to 2, got %d", got)
	}

	delivered := validShipment()
	delivered.Status = StatusDelivered
	delivered.CreatedAt = created
	deliveredAt := created.Add(48 * time.Hour)
	delivered.ActualDelivery = &deliveredAt
	// Clock keeps running after delivery; the count must not.
	if got := delivered.DaysInTransit(created.Add(300 * time.Hour)); got != 2 {
		t.Fatalf("expected delivery timestamp to cap the count at 2, got %d", got)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	estimate := now.Add(-24 * time.Hour)

	open := validShipment()
	open.Status = StatusInTransit
	open.EstimatedDelivery = &estimate
	if !open.IsOverdue(now) {
		t.Fatal("in_transit past estimate must be overdue")
	}

	open.EstimatedDelivery = nil
	if open.IsOverdue(now) {
		t.Fatal("no estimate means never overdue")
	}

	done := validShipment()
	done.Status = StatusDelivered
	done.EstimatedDelivery = &estimate
	if done.IsOverdue(now) {
		t.Fatal("delivered shipment must not be overdue")
	}

	cancelled := validShipment()
	cancelled.Status = StatusCancelled
	cancelled.EstimatedDelivery = &estimate
	if cancelled.IsOverdue(now) {
		t.Fatal("cancelled shipment must not be overdue")
	}
}

func TestDeletable(t *testing.T) {
	shipment := validShipment()
	for status, want := range map[Status]bool{
		StatusPending:   true,
		StatusCancelled: true,
		StatusInTransit: false,
		StatusDelivered: false,
	} {
		shipment.Status = status
		if got := shipment.Deletable(); got != want {
			t.Fatalf("Deletable() with status %s = %v, want %v", status, got, want)
		}
	}
}

func TestNormalizeTrackingNumber(t *testing.T) {
	if got := NormalizeTrackingNumber("  shp-ab12cd34ef "); got != "SHP-AB12CD34EF" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
