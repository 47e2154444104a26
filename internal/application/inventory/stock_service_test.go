package inventory

import (
	"context"
	"testing"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	countries  *testutil.MockCountryRepository
	warehouses *testutil.MockWarehouseRepository
	movements  *testutil.MockStockMovementRepository
	products   *testutil.MockProductRepository
	publisher  *testutil.MockEventPublisher
	svc        *StockService

	ke, ug, cn inventory.Warehouse
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	f := &stockFixture{
		countries:  new(testutil.MockCountryRepository),
		warehouses: new(testutil.MockWarehouseRepository),
		movements:  new(testutil.MockStockMovementRepository),
		products:   new(testutil.MockProductRepository),
		publisher:  new(testutil.MockEventPublisher),
	}
	f.svc = NewStockService(f.countries, f.warehouses, f.movements, f.products, nil)
	f.svc.SetEventPublisher(f.publisher)

	for code, w := range map[string]*inventory.Warehouse{"KE": &f.ke, "UG": &f.ug, "CN": &f.cn} {
		created, err := inventory.NewWarehouse(code, code+" hub", code)
		require.NoError(t, err)
		*w = *created
	}

	product, err := catalog.NewProduct("A", catalog.ProductDetails{Name: "Widget"})
	require.NoError(t, err)
	f.products.On("FindBySKU", mock.Anything, "A").Return(product, nil).Maybe()
	f.products.On("FindBySKU", mock.Anything, "MISSING").Return(nil, shared.ErrNotFound).Maybe()
	return f
}

func (f *stockFixture) countriesSeeded() {
	f.countries.On("FindAll", mock.Anything).Return([]inventory.Country{
		{Code: "UG", Name: "Uganda"},
		{Code: "CN", Name: "China"},
		{Code: "KE", Name: "Kenya"},
		{Code: "TZ", Name: "Tanzania"},
	}, nil)
}

func (f *stockFixture) ledger(t *testing.T) {
	t.Helper()
	in, err := inventory.NewStockIncrease("2024-01-01", "A", f.cn.ID, 100, "PO-1")
	require.NoError(t, err)
	cnke, err := inventory.NewStockTransfer("2024-01-05", "A", f.cn.ID, f.ke.ID, 60, "ARR-1")
	require.NoError(t, err)
	keug, err := inventory.NewStockTransfer("2024-01-09", "A", f.ke.ID, f.ug.ID, 25, "ARR-2")
	require.NoError(t, err)
	sold, err := inventory.NewStockDecrease("2024-01-31", "A", f.ug.ID, 5, "REMIT-UG")
	require.NoError(t, err)

	f.movements.On("FindBySKU", mock.Anything, "A").Return([]inventory.StockMovement{*in, *cnke, *keug, *sold}, nil)
	f.warehouses.On("FindActive", mock.Anything).Return([]inventory.Warehouse{f.ke, f.ug, f.cn}, nil)
}

func TestStockService_ListCountries_ExcludesOrigin(t *testing.T) {
	f := newStockFixture(t)
	f.countriesSeeded()

	countries, err := f.svc.ListCountries(context.Background())
	require.NoError(t, err)

	codes := make([]string, len(countries))
	for i, c := range countries {
		codes[i] = c.Code
	}
	assert.Equal(t, []string{"UG", "KE", "TZ"}, codes)
}

func TestStockService_StockByCountry(t *testing.T) {
	f := newStockFixture(t)
	f.ledger(t)

	resp, err := f.svc.StockByCountry(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, "A", resp.SKU)
	assert.Equal(t, map[string]int{"CN": 40, "KE": 35, "UG": 20}, resp.ByCountry)
	assert.Equal(t, 95, resp.Total)

	_, err = f.svc.StockByCountry(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStockService_OperationalStock(t *testing.T) {
	f := newStockFixture(t)
	f.ledger(t)
	f.countriesSeeded()

	rows, total, err := f.svc.OperationalStock(context.Background(), "A")
	require.NoError(t, err)

	assert.Equal(t, []CountryStockRow{
		{CountryCode: "KE", CountryName: "Kenya", Quantity: 35},
		{CountryCode: "TZ", CountryName: "Tanzania", Quantity: 0},
		{CountryCode: "UG", CountryName: "Uganda", Quantity: 20},
	}, rows)
	assert.Equal(t, 55, total)
}

func TestStockService_RecordMovement(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer between countries", func(t *testing.T) {
		f := newStockFixture(t)
		f.warehouses.On("FindActiveByCountry", ctx, "KE").Return(&f.ke, nil)
		f.warehouses.On("FindActiveByCountry", ctx, "UG").Return(&f.ug, nil)
		f.movements.On("Create", ctx, mock.MatchedBy(func(m *inventory.StockMovement) bool {
			return m.Kind() == inventory.MovementKindTransfer && *m.FromWarehouseID == f.ke.ID && *m.ToWarehouseID == f.ug.ID
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.svc.RecordMovement(ctx, RecordMovementRequest{
			Date:        "2024-02-01",
			SKU:         "a",
			FromCountry: "ke",
			ToCountry:   "UG",
			Quantity:    7,
		})

		require.NoError(t, err)
		assert.Equal(t, "transfer", resp.Kind)
		assert.Equal(t, "ADJ-2024-02-01", resp.Reference)
		f.movements.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("country without active warehouse", func(t *testing.T) {
		f := newStockFixture(t)
		f.warehouses.On("FindActiveByCountry", ctx, "ZM").Return(nil, shared.ErrNotFound)

		_, err := f.svc.RecordMovement(ctx, RecordMovementRequest{SKU: "A", ToCountry: "ZM", Quantity: 1})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ACTIVE_WAREHOUSE", domainErr.Code)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("neither side given", func(t *testing.T) {
		f := newStockFixture(t)

		_, err := f.svc.RecordMovement(ctx, RecordMovementRequest{Date: "2024-02-01", SKU: "A", Quantity: 1})

		assert.ErrorIs(t, err, shared.NewDomainError("INVALID_MOVEMENT", ""))
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newStockFixture(t)

		_, err := f.svc.RecordMovement(ctx, RecordMovementRequest{SKU: "missing", ToCountry: "KE", Quantity: 1})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestToCountryResponse(t *testing.T) {
	c, err := inventory.NewCountry("ke", "Kenya", "kes", decimal.RequireFromString("0.0077"))
	require.NoError(t, err)

	resp := ToCountryResponse(c)
	assert.Equal(t, "KE", resp.Code)
	assert.Equal(t, "KES", resp.Currency)
}
