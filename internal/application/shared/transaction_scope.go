package shared

import (
	"context"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shipping"
)

// TransactionScope provides transactional access to repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories that take
// part in multi-row writes. All repositories returned share the same
// underlying database transaction.
//
// Writes that go through here:
//   - shipment arrival: shipment status plus one movement per item
//   - period remittance: the remit row plus the stock decrease
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Warehouses() inventory.WarehouseRepository
	Movements() inventory.StockMovementRepository
	Shipments() shipping.ShipmentRepository
	Remits() finance.PeriodRemitRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	products   catalog.ProductRepository
	warehouses inventory.WarehouseRepository
	movements  inventory.StockMovementRepository
	shipments  shipping.ShipmentRepository
	remits     finance.PeriodRemitRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	products catalog.ProductRepository,
	warehouses inventory.WarehouseRepository,
	movements inventory.StockMovementRepository,
	shipments shipping.ShipmentRepository,
	remits finance.PeriodRemitRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		products:   products,
		warehouses: warehouses,
		movements:  movements,
		shipments:  shipments,
		remits:     remits,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Warehouses returns the warehouse repository.
func (s *NoOpTransactionScope) Warehouses() inventory.WarehouseRepository {
	return s.warehouses
}

// Movements returns the stock movement repository.
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movements
}

// Shipments returns the shipment repository.
func (s *NoOpTransactionScope) Shipments() shipping.ShipmentRepository {
	return s.shipments
}

// Remits returns the period remittance repository.
func (s *NoOpTransactionScope) Remits() finance.PeriodRemitRepository {
	return s.remits
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
