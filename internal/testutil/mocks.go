package testutil

import (
	"context"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a testify mock of catalog.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteBySKU(ctx context.Context, sku string) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCountryRepository is a testify mock of inventory.CountryRepository.
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindAll(ctx context.Context) ([]inventory.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByCode(ctx context.Context, code string) (*inventory.Country, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Country), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *inventory.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockCountryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockWarehouseRepository is a testify mock of inventory.WarehouseRepository.
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context) ([]inventory.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindActive(ctx context.Context) ([]inventory.Warehouse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindActiveByCountry(ctx context.Context, countryCode string) (*inventory.Warehouse, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMovementRepository is a testify mock of inventory.StockMovementRepository.
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) CreateBatch(ctx context.Context, movements []*inventory.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindBySKU(ctx context.Context, sku string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context) ([]inventory.StockMovement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

// MockShipmentRepository is a testify mock of shipping.ShipmentRepository.
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Find(ctx context.Context, filter shipping.ShipmentFilter) ([]shipping.Shipment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shipping.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) CountByStatus(ctx context.Context, status shipping.ShipmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockPeriodRemitRepository is a testify mock of finance.PeriodRemitRepository.
type MockPeriodRemitRepository struct {
	mock.Mock
}

func (m *MockPeriodRemitRepository) FindByKey(ctx context.Context, key finance.PeriodKey) (*finance.PeriodRemit, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PeriodRemit), args.Error(1)
}

func (m *MockPeriodRemitRepository) Save(ctx context.Context, remit *finance.PeriodRemit) error {
	args := m.Called(ctx, remit)
	return args.Error(0)
}

func (m *MockPeriodRemitRepository) Find(ctx context.Context, filter finance.RemitFilter) ([]finance.PeriodRemit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.PeriodRemit), args.Error(1)
}

// MockPlatformSpendRepository is a testify mock of finance.PlatformSpendRepository.
type MockPlatformSpendRepository struct {
	mock.Mock
}

func (m *MockPlatformSpendRepository) Upsert(ctx context.Context, spend *finance.PlatformSpend) error {
	args := m.Called(ctx, spend)
	return args.Error(0)
}

func (m *MockPlatformSpendRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.PlatformSpend, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PlatformSpend), args.Error(1)
}

func (m *MockPlatformSpendRepository) FindBySKU(ctx context.Context, sku string) ([]finance.PlatformSpend, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).([]finance.PlatformSpend), args.Error(1)
}

func (m *MockPlatformSpendRepository) FindAll(ctx context.Context) ([]finance.PlatformSpend, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.PlatformSpend), args.Error(1)
}

func (m *MockPlatformSpendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDailyDeliveredRepository is a testify mock of finance.DailyDeliveredRepository.
type MockDailyDeliveredRepository struct {
	mock.Mock
}

func (m *MockDailyDeliveredRepository) Upsert(ctx context.Context, row *finance.DailyDelivered) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockDailyDeliveredRepository) FindRange(ctx context.Context, dates shared.DateRange, limit int) ([]finance.DailyDelivered, error) {
	args := m.Called(ctx, dates, limit)
	return args.Get(0).([]finance.DailyDelivered), args.Error(1)
}

// MockEventPublisher is a testify mock of shared.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

var (
	_ catalog.ProductRepository         = (*MockProductRepository)(nil)
	_ inventory.CountryRepository       = (*MockCountryRepository)(nil)
	_ inventory.WarehouseRepository     = (*MockWarehouseRepository)(nil)
	_ inventory.StockMovementRepository = (*MockStockMovementRepository)(nil)
	_ shipping.ShipmentRepository       = (*MockShipmentRepository)(nil)
	_ finance.PeriodRemitRepository     = (*MockPeriodRemitRepository)(nil)
	_ finance.PlatformSpendRepository   = (*MockPlatformSpendRepository)(nil)
	_ finance.DailyDeliveredRepository  = (*MockDailyDeliveredRepository)(nil)
	_ shared.EventPublisher             = (*MockEventPublisher)(nil)
)
