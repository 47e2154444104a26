package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ManualReferencePrefix prefixes generated references of manual movements
const ManualReferencePrefix = "ADJ-"

// StockService answers stock questions from the movement ledger and
// records manual adjustments
type StockService struct {
	countryRepo    inventory.CountryRepository
	warehouseRepo  inventory.WarehouseRepository
	movementRepo   inventory.StockMovementRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	countryRepo inventory.CountryRepository,
	warehouseRepo inventory.WarehouseRepository,
	movementRepo inventory.StockMovementRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		countryRepo:   countryRepo,
		warehouseRepo: warehouseRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListCountries returns the operational countries, origin excluded
func (s *StockService) ListCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.countryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	operational := inventory.OperationalCountries(countries)
	responses := make([]CountryResponse, len(operational))
	for i := range operational {
		responses[i] = ToCountryResponse(&operational[i])
	}
	return responses, nil
}

// ListWarehouses returns every warehouse
func (s *StockService) ListWarehouses(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		responses[i] = ToWarehouseResponse(&warehouses[i])
	}
	return responses, nil
}

// StockByCountry folds the SKU's movements into a per-country balance.
// Only active warehouses are counted.
func (s *StockService) StockByCountry(ctx context.Context, sku string) (*StockByCountryResponse, error) {
	sku = catalog.NormalizeSKU(sku)
	if err := s.requireProduct(ctx, sku); err != nil {
		return nil, err
	}

	byCountry, err := s.balances(ctx, sku)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, qty := range byCountry {
		total += qty
	}
	return &StockByCountryResponse{SKU: sku, ByCountry: byCountry, Total: total}, nil
}

// OperationalStock lists the SKU's balance in every operational country,
// zero rows included, ordered by country code
func (s *StockService) OperationalStock(ctx context.Context, sku string) ([]CountryStockRow, int, error) {
	sku = catalog.NormalizeSKU(sku)
	byCountry, err := s.balances(ctx, sku)
	if err != nil {
		return nil, 0, err
	}
	countries, err := s.countryRepo.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	operational := inventory.OperationalCountries(countries)
	sort.Slice(operational, func(i, j int) bool { return operational[i].Code < operational[j].Code })

	rows := make([]CountryStockRow, 0, len(operational))
	total := 0
	for _, c := range operational {
		qty := byCountry[c.Code]
		rows = append(rows, CountryStockRow{CountryCode: c.Code, CountryName: c.Name, Quantity: qty})
		total += qty
	}
	return rows, total, nil
}

// ListMovements returns the SKU's ledger rows
func (s *StockService) ListMovements(ctx context.Context, sku string) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindBySKU(ctx, catalog.NormalizeSKU(sku))
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// RecordMovement appends a manual movement between the active warehouses
// of the given countries
func (s *StockService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*MovementResponse, error) {
	sku := catalog.NormalizeSKU(req.SKU)
	if err := s.requireProduct(ctx, sku); err != nil {
		return nil, err
	}

	from, err := s.warehouseFor(ctx, req.FromCountry)
	if err != nil {
		return nil, err
	}
	to, err := s.warehouseFor(ctx, req.ToCountry)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = shared.Today()
	}
	reference := req.Reference
	if reference == "" {
		reference = ManualReferencePrefix + date
	}

	movement, err := inventory.NewStockMovement(date, sku, from, to, req.Quantity, reference)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	s.logger.Info("stock movement recorded",
		zap.String("sku", sku),
		zap.String("kind", string(movement.Kind())),
		zap.Int("qty", movement.Quantity),
		zap.String("ref", movement.Reference),
	)
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, inventory.NewStockMovementRecordedEvent(movement)); err != nil {
			s.logger.Warn("failed to publish domain events", zap.Error(err))
		}
	}

	response := ToMovementResponse(movement)
	return &response, nil
}

func (s *StockService) balances(ctx context.Context, sku string) (map[string]int, error) {
	movements, err := s.movementRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	warehouses, err := s.warehouseRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.BalanceByCountry(movements, inventory.LocationCountryIndex(warehouses)), nil
}

func (s *StockService) warehouseFor(ctx context.Context, countryCode string) (*uuid.UUID, error) {
	if countryCode == "" {
		return nil, nil
	}
	w, err := s.warehouseRepo.FindActiveByCountry(ctx, inventory.NormalizeCountryCode(countryCode))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_ACTIVE_WAREHOUSE", "No active warehouse in "+countryCode)
		}
		return nil, err
	}
	return &w.ID, nil
}

func (s *StockService) requireProduct(ctx context.Context, sku string) error {
	_, err := s.productRepo.FindBySKU(ctx, sku)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return err
}
