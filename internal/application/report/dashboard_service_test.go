package report

import (
	"context"
	"testing"

	appcatalog "github.com/codops/backend/internal/application/catalog"
	appfinance "github.com/codops/backend/internal/application/finance"
	appinventory "github.com/codops/backend/internal/application/inventory"
	appshared "github.com/codops/backend/internal/application/shared"
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/codops/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	products   *testutil.MockProductRepository
	countries  *testutil.MockCountryRepository
	warehouses *testutil.MockWarehouseRepository
	movements  *testutil.MockStockMovementRepository
	shipments  *testutil.MockShipmentRepository
	spend      *testutil.MockPlatformSpendRepository
	remits     *testutil.MockPeriodRemitRepository
	delivered  *testutil.MockDailyDeliveredRepository
	svc        *DashboardService

	cn, ke, ug inventory.Warehouse
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	f := &dashboardFixture{
		products:   new(testutil.MockProductRepository),
		countries:  new(testutil.MockCountryRepository),
		warehouses: new(testutil.MockWarehouseRepository),
		movements:  new(testutil.MockStockMovementRepository),
		shipments:  new(testutil.MockShipmentRepository),
		spend:      new(testutil.MockPlatformSpendRepository),
		remits:     new(testutil.MockPeriodRemitRepository),
		delivered:  new(testutil.MockDailyDeliveredRepository),
	}
	for code, w := range map[string]*inventory.Warehouse{"CN": &f.cn, "KE": &f.ke, "UG": &f.ug} {
		created, err := inventory.NewWarehouse(code, code+" hub", code)
		require.NoError(t, err)
		*w = *created
	}

	scope := appshared.NewNoOpTransactionScope(f.products, f.warehouses, f.movements, f.shipments, f.remits)
	f.svc = NewDashboardService(
		Repositories{
			Products:   f.products,
			Countries:  f.countries,
			Warehouses: f.warehouses,
			Movements:  f.movements,
			Shipments:  f.shipments,
			Spend:      f.spend,
			Remits:     f.remits,
		},
		appcatalog.NewProductService(f.products, nil),
		appinventory.NewStockService(f.countries, f.warehouses, f.movements, f.products, nil),
		appfinance.NewDeliveredService(f.delivered, nil),
		appfinance.NewRemittanceService(f.remits, scope, nil),
	)

	f.countries.On("FindAll", mock.Anything).Return([]inventory.Country{
		{Code: "CN", Name: "China"},
		{Code: "UG", Name: "Uganda"},
		{Code: "KE", Name: "Kenya"},
	}, nil)
	f.warehouses.On("FindActive", mock.Anything).Return([]inventory.Warehouse{f.cn, f.ke, f.ug}, nil)
	return f
}

func shipmentOn(t *testing.T, ref, from, to string, items map[string]int) shipping.Shipment {
	t.Helper()
	s, err := shipping.NewShipment(ref, from, to, "2024-01-01", decimal.NewFromInt(10))
	require.NoError(t, err)
	for sku, qty := range items {
		_, err := s.AddItem(sku, qty)
		require.NoError(t, err)
	}
	return *s
}

func TestDashboardService_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)

	in, _ := inventory.NewStockIncrease("2024-01-01", "A", f.ke.ID, 100, "PO")
	out, _ := inventory.NewStockTransfer("2024-01-02", "A", f.ke.ID, f.ug.ID, 30, "ARR-X")

	f.products.On("Count", mock.Anything).Return(int64(2), nil)
	f.warehouses.On("Count", mock.Anything).Return(int64(3), nil)
	f.shipments.On("CountByStatus", mock.Anything, shipping.ShipmentStatusInTransit).Return(int64(2), nil)
	f.shipments.On("Find", mock.Anything, shipping.ShipmentFilter{Status: shipping.ShipmentStatusInTransit}).Return([]shipping.Shipment{
		shipmentOn(t, "CN-KE-1", "CN", "KE", map[string]int{"A": 40}),
		shipmentOn(t, "KE-UG-1", "KE", "UG", map[string]int{"A": 7}),
	}, nil)
	f.movements.On("FindAll", mock.Anything).Return([]inventory.StockMovement{*in, *out}, nil)
	f.spend.On("FindAll", mock.Anything).Return([]finance.PlatformSpend{
		{CountryCode: "KE", Amount: decimal.NewFromInt(12)},
		{CountryCode: "KE", Amount: decimal.NewFromInt(3)},
	}, nil)
	f.delivered.On("FindRange", mock.Anything, shared.DateRange{From: "2024-03-01"}, appfinance.DefaultDeliveredLimit).
		Return([]finance.DailyDelivered{{Date: "2024-03-02", CountryCode: "KE", Delivered: 11}}, nil)

	d, err := f.svc.Dashboard(ctx, DashboardFilter{DeliveredFrom: "2024-03-01"})
	require.NoError(t, err)

	assert.Equal(t, DashboardCounts{Products: 2, Warehouses: 3, InTransit: 2}, d.Counts)
	require.Len(t, d.Band, 2)
	assert.Equal(t, "KE", d.Band[0].CountryCode)
	assert.Equal(t, 70, d.Band[0].Stock)
	assert.Equal(t, 40, d.Band[0].InTransit)
	assert.True(t, decimal.NewFromInt(15).Equal(d.Band[0].DailyAdSpend))
	assert.Equal(t, "UG", d.Band[1].CountryCode)
	assert.Equal(t, 30, d.Band[1].Stock)
	assert.Equal(t, 7, d.Band[1].InTransit)
	assert.True(t, d.Band[1].DailyAdSpend.IsZero())

	require.Len(t, d.FirstLegInTransit, 1)
	assert.Equal(t, "CN-KE-1", d.FirstLegInTransit[0].Reference)
	require.Len(t, d.InterCountryInTransit, 1)
	assert.Equal(t, "KE-UG-1", d.InterCountryInTransit[0].Reference)

	assert.Equal(t, 11, d.Delivered.Total)
	assert.Nil(t, d.Remits)
	f.remits.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestDashboardService_DashboardWithRemitReport(t *testing.T) {
	f := newDashboardFixture(t)

	f.products.On("Count", mock.Anything).Return(int64(0), nil)
	f.warehouses.On("Count", mock.Anything).Return(int64(0), nil)
	f.shipments.On("CountByStatus", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.shipments.On("Find", mock.Anything, mock.Anything).Return([]shipping.Shipment{}, nil)
	f.movements.On("FindAll", mock.Anything).Return([]inventory.StockMovement{}, nil)
	f.spend.On("FindAll", mock.Anything).Return([]finance.PlatformSpend{}, nil)
	f.delivered.On("FindRange", mock.Anything, mock.Anything, mock.Anything).Return([]finance.DailyDelivered{}, nil)
	f.remits.On("Find", mock.Anything, finance.RemitFilter{StartFrom: "2024-03-01", EndTo: "2024-03-31"}).
		Return([]finance.PeriodRemit{}, nil)

	d, err := f.svc.Dashboard(context.Background(), DashboardFilter{RemitStart: "2024-03-01", RemitEnd: "2024-03-31"})
	require.NoError(t, err)
	require.NotNil(t, d.Remits)
	assert.Empty(t, d.Remits.Rows)
}

func TestDashboardService_ProductOverview(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture(t)

	product, err := catalog.NewProduct("A", catalog.ProductDetails{Name: "Widget"})
	require.NoError(t, err)
	f.products.On("FindBySKU", mock.Anything, "A").Return(product, nil)
	f.spend.On("FindBySKU", mock.Anything, "A").Return([]finance.PlatformSpend{{SKU: "A", Platform: "meta", CountryCode: "UG", Amount: decimal.NewFromInt(4)}}, nil)

	carrying := shipmentOn(t, "S1", "KE", "UG", map[string]int{"A": 5, "B": 2})
	f.shipments.On("Find", mock.Anything, shipping.ShipmentFilter{SKU: "A"}).Return([]shipping.Shipment{carrying}, nil)

	in, _ := inventory.NewStockIncrease("2024-01-01", "A", f.ug.ID, 9, "PO")
	f.movements.On("FindBySKU", mock.Anything, "A").Return([]inventory.StockMovement{*in}, nil)

	key1, _ := finance.NewPeriodKey("2024-03-01", "2024-03-15", "UG", "A")
	key2, _ := finance.NewPeriodKey("2024-03-16", "2024-03-31", "UG", "A")
	key3, _ := finance.NewPeriodKey("2024-03-01", "2024-03-31", "KE", "A")
	f.remits.On("Find", mock.Anything, finance.RemitFilter{SKU: "A"}).Return([]finance.PeriodRemit{
		*finance.NewPeriodRemit(key1, finance.RemitFigures{Pieces: 4, Revenue: decimal.NewFromInt(20)}, decimal.Zero),
		*finance.NewPeriodRemit(key2, finance.RemitFigures{Pieces: 6, Revenue: decimal.NewFromInt(30)}, decimal.Zero),
		*finance.NewPeriodRemit(key3, finance.RemitFigures{Pieces: 0, Revenue: decimal.NewFromInt(5)}, decimal.Zero),
	}, nil)

	o, err := f.svc.ProductOverview(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, "A", o.Product.SKU)
	require.Len(t, o.CurrentSpend, 1)
	require.Len(t, o.Shipments, 1)
	assert.Equal(t, 5, o.Shipments[0].QuantityOfSKU)

	assert.Equal(t, []appinventory.CountryStockRow{
		{CountryCode: "KE", CountryName: "Kenya", Quantity: 0},
		{CountryCode: "UG", CountryName: "Uganda", Quantity: 9},
	}, o.Stock)
	assert.Equal(t, 9, o.StockTotal)

	require.Len(t, o.Profit, 2)
	assert.Equal(t, "KE", o.Profit[0].CountryCode)
	assert.True(t, o.Profit[0].ProfitPerPiece.IsZero())
	assert.Equal(t, 10, o.Profit[1].Pieces)
	assert.True(t, decimal.NewFromInt(5).Equal(o.Profit[1].ProfitPerPiece))
	assert.True(t, decimal.NewFromInt(55).Equal(o.ProfitTotals.ProfitTotal))
}

func TestDashboardService_ProductOverview_NotFound(t *testing.T) {
	f := newDashboardFixture(t)
	f.products.On("FindBySKU", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

	_, err := f.svc.ProductOverview(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
