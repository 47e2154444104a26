package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/codops/backend/internal/application/catalog"
	financeapp "github.com/codops/backend/internal/application/finance"
	inventoryapp "github.com/codops/backend/internal/application/inventory"
	reportapp "github.com/codops/backend/internal/application/report"
	shippingapp "github.com/codops/backend/internal/application/shipping"
	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/codops/backend/internal/infrastructure/export"
	"github.com/codops/backend/internal/infrastructure/persistence"
	"github.com/codops/backend/internal/interfaces/http/dto"
	"github.com/codops/backend/internal/interfaces/http/middleware"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// testAPI is the full HTTP stack on a seeded in-memory database
type testAPI struct {
	engine *gin.Engine
	db     *persistence.Database
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         persistence.MemoryPath,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate())
	require.NoError(t, persistence.Seed(context.Background(), db.DB, false, zap.NewNop()))

	products := persistence.NewGormProductRepository(db.DB)
	countries := persistence.NewGormCountryRepository(db.DB)
	warehouses := persistence.NewGormWarehouseRepository(db.DB)
	movements := persistence.NewGormStockMovementRepository(db.DB)
	shipments := persistence.NewGormShipmentRepository(db.DB)
	spend := persistence.NewGormPlatformSpendRepository(db.DB)
	remits := persistence.NewGormPeriodRemitRepository(db.DB)
	delivered := persistence.NewGormDailyDeliveredRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	productSvc := catalogapp.NewProductService(products, nil)
	stockSvc := inventoryapp.NewStockService(countries, warehouses, movements, products, nil)
	shipmentSvc := shippingapp.NewShipmentService(shipments, products, txScope, nil)
	spendSvc := financeapp.NewSpendService(spend, products, nil)
	deliveredSvc := financeapp.NewDeliveredService(delivered, nil)
	remittanceSvc := financeapp.NewRemittanceService(remits, txScope, nil)
	remittanceSvc.SetReportWriter(export.NewRemitXLSXWriter())
	dashboardSvc := reportapp.NewDashboardService(reportapp.Repositories{
		Products:   products,
		Countries:  countries,
		Warehouses: warehouses,
		Movements:  movements,
		Shipments:  shipments,
		Spend:      spend,
		Remits:     remits,
	}, productSvc, stockSvc, deliveredSvc, remittanceSvc)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	NewSystemHandler("cod-test", "test", db).Register(engine)

	finance := NewFinanceHandler(spendSvc, deliveredSvc, remittanceSvc)
	r := router.NewRouter(engine).Register(
		NewProductHandler(productSvc, stockSvc, dashboardSvc).Routes(),
		NewShipmentHandler(shipmentSvc).Routes(),
		NewReportHandler(dashboardSvc).Routes(),
		finance.SpendRoutes(),
		finance.DeliveredRoutes(),
		finance.RemitRoutes(),
	)
	for _, g := range NewInventoryHandler(stockSvc).Routes() {
		r.Register(g)
	}
	r.Setup()

	return &testAPI{engine: engine, db: db}
}

func (a *testAPI) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// envelope is dto.Response with the data left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return *env.Error
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}

func (a *testAPI) createProduct(t *testing.T, sku string) catalogapp.ProductResponse {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"sku":                   sku,
		"name":                  "Product " + sku,
		"category":              "Wellness",
		"weight_g":              720,
		"cost_cn_usd":           "8.20",
		"default_cnke_ship_usd": "1.20",
	})
	requireStatus(t, http.StatusCreated, w)
	return decode[catalogapp.ProductResponse](t, w)
}

func (a *testAPI) createShipment(t *testing.T, ref, from, to string, cost string, items map[string]int) shippingapp.ShipmentResponse {
	t.Helper()
	lines := make([]map[string]any, 0, len(items))
	for sku, qty := range items {
		lines = append(lines, map[string]any{"sku": sku, "qty": qty})
	}
	w := a.do(t, http.MethodPost, "/api/v1/shipments", map[string]any{
		"ref":               ref,
		"from_code":         from,
		"to_code":           to,
		"created_date":      "2025-01-01",
		"shipping_cost_usd": cost,
		"items":             lines,
	})
	requireStatus(t, http.StatusCreated, w)
	return decode[shippingapp.ShipmentResponse](t, w)
}
