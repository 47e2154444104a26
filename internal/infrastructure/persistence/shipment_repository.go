package persistence

import (
	"context"

	"github.com/codops/backend/internal/domain/shipping"
	"github.com/codops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID loads a shipment and its items
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	var model models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// Find returns shipments matching the filter, newest first
func (r *GormShipmentRepository) Find(ctx context.Context, filter shipping.ShipmentFilter) ([]shipping.Shipment, error) {
	query := r.db.WithContext(ctx).Model(&models.ShipmentModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OriginCountry != "" {
		query = query.Where("origin_country = ?", filter.OriginCountry)
	}
	if filter.DestinationCountry != "" {
		query = query.Where("destination_country = ?", filter.DestinationCountry)
	}
	if filter.SKU != "" {
		query = query.Where("id IN (?)",
			r.db.Model(&models.ShipmentItemModel{}).Select("shipment_id").Where("sku = ?", filter.SKU))
	}

	var rows []models.ShipmentModel
	if err := query.
		Preload("Items", orderItems).
		Order("created_date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	shipments := make([]shipping.Shipment, len(rows))
	for i := range rows {
		shipments[i] = *rows[i].ToDomain()
	}
	return shipments, nil
}

// Save writes the shipment row and replaces its item set
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	model, items := models.ShipmentModelFromDomain(shipment)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", model.ID).Delete(&models.ShipmentItemModel{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// CountByStatus counts shipments in a status
func (r *GormShipmentRepository) CountByStatus(ctx context.Context, status shipping.ShipmentStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ShipmentModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("sku ASC")
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ shipping.ShipmentRepository = (*GormShipmentRepository)(nil)
