package shipping

import (
	"context"
	"errors"

	appshared "github.com/codops/backend/internal/application/shared"
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShipmentService handles shipment lifecycle operations
type ShipmentService struct {
	shipmentRepo   shipping.ShipmentRepository
	productRepo    catalog.ProductRepository
	txScope        appshared.TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo shipping.ShipmentRepository,
	productRepo catalog.ProductRepository,
	txScope appshared.TransactionScope,
	logger *zap.Logger,
) *ShipmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		productRepo:  productRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ShipmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates an in-transit shipment with its items
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("SHIPMENT_REQUIRES_ITEM", "A shipment needs at least one item")
	}

	createdDate := req.CreatedDate
	if createdDate == "" {
		createdDate = shared.Today()
	}
	cost := shared.ZeroIfNil(req.ShippingCost)

	shipment, err := shipping.NewShipment(req.Reference, req.OriginCountry, req.DestinationCountry, createdDate, cost)
	if err != nil {
		return nil, err
	}
	if err := shipment.SetETA(req.ETADate); err != nil {
		return nil, err
	}
	if err := shipment.SetPurchaseCost(shared.ZeroIfNil(req.PurchaseCost)); err != nil {
		return nil, err
	}
	if err := shipment.UpdateShippingCost(cost); err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if err := s.requireProduct(ctx, item.SKU); err != nil {
			return nil, err
		}
		if _, err := shipment.AddItem(item.SKU, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	s.logger.Info("shipment created",
		zap.String("ref", shipment.Reference),
		zap.String("route", shipment.OriginCountry+"->"+shipment.DestinationCountry),
		zap.Int("total_qty", shipment.TotalQuantity()),
	)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GetByID retrieves a shipment with its items
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.find(ctx, s.shipmentRepo, id)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments, newest first
func (s *ShipmentService) List(ctx context.Context, filter ListShipmentsFilter) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.Find(ctx, shipping.ShipmentFilter{
		Status:             shipping.ShipmentStatus(filter.Status),
		OriginCountry:      inventory.NormalizeCountryCode(filter.OriginCountry),
		DestinationCountry: inventory.NormalizeCountryCode(filter.DestinationCountry),
		SKU:                catalog.NormalizeSKU(filter.SKU),
	})
	if err != nil {
		return nil, err
	}
	return ToShipmentResponses(shipments), nil
}

// AddItem appends a line to an in-transit shipment
func (s *ShipmentService) AddItem(ctx context.Context, id uuid.UUID, item ItemInput) (*ShipmentResponse, error) {
	if err := s.requireProduct(ctx, item.SKU); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(shipment *shipping.Shipment) error {
		_, err := shipment.AddItem(item.SKU, item.Quantity)
		return err
	})
}

// UpdateItem changes the quantity of a line of an in-transit shipment
func (s *ShipmentService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdateItemRequest) (*ShipmentResponse, error) {
	return s.modify(ctx, id, func(shipment *shipping.Shipment) error {
		return shipment.UpdateItemQuantity(itemID, req.Quantity)
	})
}

// RemoveItem removes a line from an in-transit shipment
func (s *ShipmentService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*ShipmentResponse, error) {
	return s.modify(ctx, id, func(shipment *shipping.Shipment) error {
		return shipment.RemoveItem(itemID)
	})
}

// UpdateCost replaces the shipping cost, in any status
func (s *ShipmentService) UpdateCost(ctx context.Context, id uuid.UUID, req UpdateCostRequest) (*ShipmentResponse, error) {
	return s.modify(ctx, id, func(shipment *shipping.Shipment) error {
		return shipment.UpdateShippingCost(req.ShippingCost)
	})
}

// MarkArrived closes the shipment and appends one movement per item from
// the origin's active warehouse to the destination's, in one transaction
func (s *ShipmentService) MarkArrived(ctx context.Context, id uuid.UUID, req ArriveRequest) (*ArrivalResponse, error) {
	arrivedDate := req.ArrivedDate
	if arrivedDate == "" {
		arrivedDate = shared.Today()
	}

	var (
		shipment  *shipping.Shipment
		movements []*inventory.StockMovement
	)
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		var err error
		shipment, err = s.find(ctx, repos.Shipments(), id)
		if err != nil {
			return err
		}

		from, err := activeWarehouseID(ctx, repos.Warehouses(), shipment.OriginCountry)
		if err != nil {
			return err
		}
		to, err := activeWarehouseID(ctx, repos.Warehouses(), shipment.DestinationCountry)
		if err != nil {
			return err
		}

		movements, err = shipment.MarkArrived(arrivedDate, from, to)
		if err != nil {
			return err
		}
		if err := repos.Movements().CreateBatch(ctx, movements); err != nil {
			return err
		}
		return repos.Shipments().Save(ctx, shipment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shipment arrived",
		zap.String("ref", shipment.Reference),
		zap.String("arrived_date", shipment.ArrivedDate),
		zap.Int("transit_days", shipment.TransitDays),
		zap.Int("movements", len(movements)),
	)
	appshared.PublishEvents(ctx, s.eventPublisher, s.logger, shipment)

	return &ArrivalResponse{
		Shipment:       ToShipmentResponse(shipment),
		MovementsAdded: len(movements),
	}, nil
}

func (s *ShipmentService) modify(ctx context.Context, id uuid.UUID, change func(*shipping.Shipment) error) (*ShipmentResponse, error) {
	shipment, err := s.find(ctx, s.shipmentRepo, id)
	if err != nil {
		return nil, err
	}
	if err := change(shipment); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

func (s *ShipmentService) find(ctx context.Context, repo shipping.ShipmentRepository, id uuid.UUID) (*shipping.Shipment, error) {
	shipment, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Shipment not found")
		}
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) requireProduct(ctx context.Context, sku string) error {
	_, err := s.productRepo.FindBySKU(ctx, catalog.NormalizeSKU(sku))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("NOT_FOUND", "Product not found: "+catalog.NormalizeSKU(sku))
	}
	return err
}

// activeWarehouseID returns nil without error when the country has no
// active warehouse
func activeWarehouseID(ctx context.Context, repo inventory.WarehouseRepository, countryCode string) (*uuid.UUID, error) {
	w, err := repo.FindActiveByCountry(ctx, countryCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w.ID, nil
}
