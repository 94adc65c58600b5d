package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shipline/contexts/shipment-operations/shipment-service/domain/entities"
	domainerrors "shipline/contexts/shipment-operations/shipment-service/domain/errors"
	"shipline/contexts/shipment-operations/shipment-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type shipmentModel struct {
	ShipmentID        string     `gorm:"column:shipment_id;primaryKey"`
	TrackingNumber    string     `gorm:"column:tracking_number;uniqueIndex;not null"`
	SenderName        string     `gorm:"column:sender_name;not null"`
	ReceiverName      string     `gorm:"column:receiver_name;not null"`
	Origin            string     `gorm:"column:origin;not null"`
	Destination       string     `gorm:"column:destination;not null"`
	Status            string     `gorm:"column:status;index;not null"`
	Weight            *float64   `gorm:"column:weight"`
	Description       string     `gorm:"column:description"`
	EstimatedDelivery *time.Time `gorm:"column:estimated_delivery"`
	ActualDelivery    *time.Time `gorm:"column:actual_delivery"`
	CreatedBy         string     `gorm:"column:created_by;index;not null"`
	UpdatedBy         string     `gorm:"column:updated_by"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null"`
}

func (shipmentModel) TableName() string {
	return "shipments"
}

type attachmentModel struct {
	AttachmentID string    `gorm:"column:attachment_id;primaryKey"`
	ShipmentID   string    `gorm:"column:shipment_id;index;not null"`
	FileName     string    `gorm:"column:file_name;not null"`
	OriginalName string    `gorm:"column:original_name;not null"`
	StoragePath  string    `gorm:"column:storage_path;not null"`
	ContentType  string    `gorm:"column:content_type"`
	SizeBytes    int64     `gorm:"column:size_bytes;not null"`
	UploadedBy   string    `gorm:"column:uploaded_by;not null"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;not null"`
}

func (attachmentModel) TableName() string {
	return "shipment_attachments"
}

type statusEventModel struct {
	EventID    string    `gorm:"column:event_id;primaryKey"`
	ShipmentID string    `gorm:"column:shipment_id;index;not null"`
	Status     string    `gorm:"column:status;not null"`
	ChangedBy  string    `gorm:"column:changed_by;not null"`
	Notes      string    `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (statusEventModel) TableName() string {
	return "shipment_status_history"
}

// AutoMigrate creates the shipment tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&shipmentModel{}, &attachmentModel{}, &statusEventModel{})
}

// Repository is the gorm-backed shipment store. It implements the shipment,
// attachment and history repository ports.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateShipment(ctx context.Context, shipment entities.Shipment) error {
	row := fromShipment(shipment)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrTrackingNumberTaken
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateShipment(ctx context.Context, shipment entities.Shipment) error {
	result := r.db.WithContext(ctx).
		Model(&shipmentModel{}).
		Where("shipment_id = ?", shipment.ShipmentID).
		Updates(map[string]any{
			"sender_name":        shipment.SenderName,
			"receiver_name":      shipment.ReceiverName,
			"origin":             shipment.Origin,
			"destination":        shipment.Destination,
			"weight":             shipment.Weight,
			"description":        shipment.Description,
			"estimated_delivery": shipment.EstimatedDelivery,
			"updated_by":         shipment.UpdatedBy,
			"updated_at":         shipment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrShipmentNotFound
	}
	return nil
}

// UpdateShipmentStatus only applies when the stored status still matches
// the expected previous one, so two racing writers cannot clobber each
// other silently.
func (r *Repository) UpdateShipmentStatus(
	ctx context.Context,
	shipmentID string,
	from entities.Status,
	to entities.Status,
	actualDelivery *time.Time,
	updatedBy string,
	now time.Time,
) error {
	updates := map[string]any{
		"status":     string(to),
		"updated_by": updatedBy,
		"updated_at": now,
	}
	if actualDelivery != nil {
		updates["actual_delivery"] = actualDelivery
	}

	result := r.db.WithContext(ctx).
		Model(&shipmentModel{}).
		Where("shipment_id = ? AND status = ?", shipmentID, string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var row shipmentModel
		err := r.db.WithContext(ctx).
			Where("shipment_id = ?", shipmentID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrShipmentNotFound
		}
		if err != nil {
			return err
		}
		return &domainerrors.TransitionError{Current: row.Status, Requested: string(to)}
	}
	return nil
}

func (r *Repository) GetShipment(ctx context.Context, shipmentID string) (entities.Shipment, error) {
	var row shipmentModel
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", strings.TrimSpace(shipmentID)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Shipment{}, domainerrors.ErrShipmentNotFound
	}
	if err != nil {
		return entities.Shipment{}, err
	}
	return toShipment(row), nil
}

func (r *Repository) GetShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (entities.Shipment, error) {
	var row shipmentModel
	err := r.db.WithContext(ctx).
		Where("tracking_number = ?", entities.NormalizeTrackingNumber(trackingNumber)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Shipment{}, domainerrors.ErrShipmentNotFound
	}
	if err != nil {
		return entities.Shipment{}, err
	}
	return toShipment(row), nil
}

func (r *Repository) ListShipments(ctx context.Context, filter ports.ShipmentFilter) (ports.ShipmentPage, error) {
	query := r.db.WithContext(ctx).Model(&shipmentModel{})
	if filter.OwnerID != "" {
		query = query.Where("created_by = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(tracking_number) LIKE ? OR LOWER(sender_name) LIKE ? OR LOWER(receiver_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ports.ShipmentPage{}, err
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filter.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var rows []shipmentModel
	err := query.
		Order(sortBy + " " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return ports.ShipmentPage{}, err
	}

	items := make([]entities.Shipment, 0, len(rows))
	for _, row := range rows {
		items = append(items, toShipment(row))
	}
	return ports.ShipmentPage{Items: items, Total: total}, nil
}

// DeleteShipment removes the record together with its attachments and
// history rows in one transaction.
func (r *Repository) DeleteShipment(ctx context.Context, shipmentID string) error {
	id := strings.TrimSpace(shipmentID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", id).Delete(&attachmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", id).Delete(&statusEventModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("shipment_id = ?", id).Delete(&shipmentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrShipmentNotFound
		}
		return nil
	})
}

func (r *Repository) CountByStatus(ctx context.Context, ownerID string) (map[entities.Status]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	query := r.db.WithContext(ctx).
		Model(&shipmentModel{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if ownerID != "" {
		query = query.Where("created_by = ?", ownerID)
	}

	var rows []statusCount
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entities.Status]int64, len(rows))
	for _, row := range rows {
		counts[entities.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *Repository) AddAttachment(ctx context.Context, attachment entities.Attachment) error {
	row := fromAttachment(attachment)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetAttachment(ctx context.Context, attachmentID string) (entities.Attachment, error) {
	var row attachmentModel
	err := r.db.WithContext(ctx).
		Where("attachment_id = ?", strings.TrimSpace(attachmentID)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Attachment{}, domainerrors.ErrAttachmentNotFound
	}
	if err != nil {
		return entities.Attachment{}, err
	}
	return toAttachment(row), nil
}

func (r *Repository) ListAttachmentsByShipment(ctx context.Context, shipmentID string) ([]entities.Attachment, error) {
	var rows []attachmentModel
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", strings.TrimSpace(shipmentID)).
		Order("uploaded_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Attachment, 0, len(rows))
	for _, row := range rows {
		items = append(items, toAttachment(row))
	}
	return items, nil
}

func (r *Repository) RemoveAttachment(ctx context.Context, attachmentID string) error {
	result := r.db.WithContext(ctx).
		Where("attachment_id = ?", strings.TrimSpace(attachmentID)).
		Delete(&attachmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAttachmentNotFound
	}
	return nil
}

func (r *Repository) AppendStatus(ctx context.Context, event entities.StatusEvent) error {
	row := fromStatusEvent(event)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListStatusHistory(ctx context.Context, shipmentID string) ([]entities.StatusEvent, error) {
	var rows []statusEventModel
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", strings.TrimSpace(shipmentID)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.StatusEvent, 0, len(rows))
	for _, row := range rows {
		items = append(items, toStatusEvent(row))
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func fromShipment(shipment entities.Shipment) shipmentModel {
	return shipmentModel{
		ShipmentID:        shipment.ShipmentID,
		TrackingNumber:    shipment.TrackingNumber,
		SenderName:        shipment.SenderName,
		ReceiverName:      shipment.ReceiverName,
		Origin:            shipment.Origin,
		Destination:       shipment.Destination,
		Status:            string(shipment.Status),
		Weight:            shipment.Weight,
		Description:       shipment.Description,
		EstimatedDelivery: shipment.EstimatedDelivery,
		ActualDelivery:    shipment.ActualDelivery,
		CreatedBy:         shipment.CreatedBy,
		UpdatedBy:         shipment.UpdatedBy,
		CreatedAt:         shipment.CreatedAt,
		UpdatedAt:         shipment.UpdatedAt,
	}
}

func toShipment(row shipmentModel) entities.Shipment {
	return entities.Shipment{
		ShipmentID:        row.ShipmentID,
		TrackingNumber:    row.TrackingNumber,
		SenderName:        row.SenderName,
		ReceiverName:      row.ReceiverName,
		Origin:            row.Origin,
		Destination:       row.Destination,
		Status:            entities.Status(row.Status),
		Weight:            row.Weight,
		Description:       row.Description,
		EstimatedDelivery: row.EstimatedDelivery,
		ActualDelivery:    row.ActualDelivery,
		CreatedBy:         row.CreatedBy,
		UpdatedBy:         row.UpdatedBy,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func fromAttachment(attachment entities.Attachment) attachmentModel {
	return attachmentModel{
		AttachmentID: attachment.AttachmentID,
		ShipmentID:   attachment.ShipmentID,
		FileName:     attachment.FileName,
		OriginalName: attachment.OriginalName,
		StoragePath:  attachment.StoragePath,
		ContentType:  attachment.ContentType,
		SizeBytes:    attachment.SizeBytes,
		UploadedBy:   attachment.UploadedBy,
		UploadedAt:   attachment.UploadedAt,
	}
}

func toAttachment(row attachmentModel) entities.Attachment {
	return entities.Attachment{
		AttachmentID: row.AttachmentID,
		ShipmentID:   row.ShipmentID,
		FileName:     row.FileName,
		OriginalName: row.OriginalName,
		StoragePath:  row.StoragePath,
		ContentType:  row.ContentType,
		SizeBytes:    row.SizeBytes,
		UploadedBy:   row.UploadedBy,
		UploadedAt:   row.UploadedAt,
	}
}

func fromStatusEvent(event entities.StatusEvent) statusEventModel {
	return statusEventModel{
		EventID:    event.EventID,
		ShipmentID: event.ShipmentID,
		Status:     string(event.Status),
		ChangedBy:  event.ChangedBy,
		Notes:      event.Notes,
		CreatedAt:  event.CreatedAt,
	}
}

func toStatusEvent(row statusEventModel) entities.StatusEvent {
	return entities.StatusEvent{
		EventID:    row.EventID,
		ShipmentID: row.ShipmentID,
		Status:     entities.Status(row.Status),
		ChangedBy:  row.ChangedBy,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
	}
}
