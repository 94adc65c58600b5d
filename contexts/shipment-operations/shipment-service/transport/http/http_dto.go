// Package httptransport holds the wire-level request and response shapes for
// the shipment service. Owner identifiers never appear on the public tracking
// types.
package httptransport

type CreateShipmentRequest struct {
	SenderName        string   `json:"senderName"`
	ReceiverName      string   `json:"receiverName"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Status            string   `json:"status,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	Description       string   `json:"description,omitempty"`
	EstimatedDelivery string   `json:"estimatedDelivery,omitempty"`
}

type UpdateShipmentRequest struct {
	SenderName        string   `json:"senderName"`
	ReceiverName      string   `json:"receiverName"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Weight            *float64 `json:"weight,omitempty"`
	Description       string   `json:"description,omitempty"`
	EstimatedDelivery string   `json:"estimatedDelivery,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type ShipmentDTO struct {
	ShipmentID        string   `json:"id"`
	TrackingNumber    string   `json:"trackingNumber"`
	SenderName        string   `json:"senderName"`
	ReceiverName      string   `json:"receiverName"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Status            string   `json:"status"`
	Weight            *float64 `json:"weight,omitempty"`
	Description       string   `json:"description,omitempty"`
	EstimatedDelivery string   `json:"estimatedDelivery,omitempty"`
	ActualDelivery    string   `json:"actualDelivery,omitempty"`
	DaysInTransit     int      `json:"daysInTransit"`
	IsOverdue         bool     `json:"isOverdue"`
	CreatedBy         string   `json:"createdBy"`
	UpdatedBy         string   `json:"updatedBy,omitempty"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

type AttachmentDTO struct {
	AttachmentID string `json:"id"`
	ShipmentID   string `json:"shipmentId"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	ContentType  string `json:"contentType,omitempty"`
	SizeBytes    int64  `json:"sizeBytes"`
	UploadedBy   string `json:"uploadedBy"`
	UploadedAt   string `json:"uploadedAt"`
}

type StatusEventDTO struct {
	EventID   string `json:"id"`
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type ShipmentDetailsResponse struct {
	Shipment    ShipmentDTO      `json:"shipment"`
	Attachments []AttachmentDTO  `json:"attachments"`
	History     []StatusEventDTO `json:"history"`
}

type ListShipmentsResponse struct {
	Items []ShipmentDTO `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// TrackingResponse is the public view. It carries the shipment's own fields,
// names included, but no account identifiers, neither on the shipment nor on
// its history entries.
type TrackingResponse struct {
	TrackingNumber    string              `json:"trackingNumber"`
	SenderName        string              `json:"senderName"`
	ReceiverName      string              `json:"receiverName"`
	Status            string              `json:"status"`
	Origin            string              `json:"origin"`
	Destination       string              `json:"destination"`
	EstimatedDelivery string              `json:"estimatedDelivery,omitempty"`
	ActualDelivery    string              `json:"actualDelivery,omitempty"`
	DaysInTransit     int                 `json:"daysInTransit"`
	IsOverdue         bool                `json:"isOverdue"`
	CreatedAt         string              `json:"createdAt"`
	History           []TrackingEventDTO  `json:"history"`
}

type TrackingEventDTO struct {
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type StatsResponse struct {
	Pending   int64 `json:"pending"`
	InTransit int64 `json:"inTransit"`
	Delivered int64 `json:"delivered"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}
