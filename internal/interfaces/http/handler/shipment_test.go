package handler

import (
	"net/http"
	"testing"

	inventoryapp "github.com/codops/backend/internal/application/inventory"
	shippingapp "github.com/codops/backend/internal/application/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stockIn records a manual increase into the country's active warehouse
func (a *testAPI) stockIn(t *testing.T, sku, country string, qty int) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/stock/movements", map[string]any{
		"date":       "2025-01-01",
		"sku":        sku,
		"to_country": country,
		"qty":        qty,
	})
	requireStatus(t, http.StatusCreated, w)
}

func (a *testAPI) stockOf(t *testing.T, sku string) inventoryapp.StockByCountryResponse {
	t.Helper()
	w := a.do(t, http.MethodGet, "/api/v1/products/"+sku+"/stock", nil)
	requireStatus(t, http.StatusOK, w)
	return decode[inventoryapp.StockByCountryResponse](t, w)
}

func TestShipmentHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "TK1-FOOT")
	api.createProduct(t, "GLS-TRIM")
	api.stockIn(t, "TK1-FOOT", "CN", 100)

	shipment := api.createShipment(t, "CN-KE-001", "CN", "KE", "120", map[string]int{"TK1-FOOT": 100})
	assert.Equal(t, "in_transit", shipment.Status)
	assert.Equal(t, 100, shipment.TotalQuantity)
	require.Len(t, shipment.Items, 1)
	base := "/api/v1/shipments/" + shipment.ID.String()

	t.Run("add item", func(t *testing.T) {
		w := api.do(t, http.MethodPost, base+"/items", map[string]any{"sku": "GLS-TRIM", "qty": 5})
		requireStatus(t, http.StatusCreated, w)
		got := decode[shippingapp.ShipmentResponse](t, w)
		require.Len(t, got.Items, 2)
		assert.Equal(t, 105, got.TotalQuantity)
	})

	t.Run("add unknown product", func(t *testing.T) {
		w := api.do(t, http.MethodPost, base+"/items", map[string]any{"sku": "NOPE", "qty": 5})
		requireStatus(t, http.StatusNotFound, w)
	})

	t.Run("zero quantity fails validation", func(t *testing.T) {
		w := api.do(t, http.MethodPost, base+"/items", map[string]any{"sku": "GLS-TRIM", "qty": 0})
		requireStatus(t, http.StatusBadRequest, w)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)
	})

	var glsItem string
	t.Run("update and remove item", func(t *testing.T) {
		w := api.do(t, http.MethodGet, base, nil)
		requireStatus(t, http.StatusOK, w)
		for _, it := range decode[shippingapp.ShipmentResponse](t, w).Items {
			if it.SKU == "GLS-TRIM" {
				glsItem = it.ID.String()
			}
		}
		require.NotEmpty(t, glsItem)

		w = api.do(t, http.MethodPut, base+"/items/"+glsItem, map[string]any{"qty": 8})
		requireStatus(t, http.StatusOK, w)
		assert.Equal(t, 108, decode[shippingapp.ShipmentResponse](t, w).TotalQuantity)

		w = api.do(t, http.MethodDelete, base+"/items/"+glsItem, nil)
		requireStatus(t, http.StatusOK, w)
		assert.Len(t, decode[shippingapp.ShipmentResponse](t, w).Items, 1)

		w = api.do(t, http.MethodDelete, base+"/items/"+glsItem, nil)
		requireStatus(t, http.StatusNotFound, w)
		assert.Equal(t, "ITEM_NOT_FOUND", decodeError(t, w).Code)
	})

	t.Run("last item stays", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, base+"/items/"+shipment.Items[0].ID.String(), nil)
		requireStatus(t, http.StatusUnprocessableEntity, w)
		assert.Equal(t, "SHIPMENT_REQUIRES_ITEM", decodeError(t, w).Code)
	})

	t.Run("in transit listing", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/shipments?status=in_transit&to_code=KE", nil)
		requireStatus(t, http.StatusOK, w)
		list := decode[[]shippingapp.ShipmentResponse](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, "CN-KE-001", list[0].Reference)
	})

	t.Run("arrive", func(t *testing.T) {
		w := api.do(t, http.MethodPost, base+"/arrive", map[string]any{"arrived_date": "2025-01-21"})
		requireStatus(t, http.StatusOK, w)
		arrival := decode[shippingapp.ArrivalResponse](t, w)
		assert.Equal(t, 1, arrival.MovementsAdded)
		assert.Equal(t, "arrived", arrival.Shipment.Status)
		assert.Equal(t, 20, arrival.Shipment.TransitDays)

		stock := api.stockOf(t, "TK1-FOOT")
		assert.Equal(t, 100, stock.ByCountry["KE"])
		assert.Zero(t, stock.ByCountry["CN"])
		assert.Equal(t, 100, stock.Total)
	})

	t.Run("arrived shipment is closed", func(t *testing.T) {
		w := api.do(t, http.MethodPost, base+"/arrive", nil)
		requireStatus(t, http.StatusUnprocessableEntity, w)
		assert.Equal(t, "SHIPMENT_NOT_IN_TRANSIT", decodeError(t, w).Code)

		w = api.do(t, http.MethodPost, base+"/items", map[string]any{"sku": "GLS-TRIM", "qty": 1})
		requireStatus(t, http.StatusUnprocessableEntity, w)
	})

	t.Run("cost can change after arrival", func(t *testing.T) {
		w := api.do(t, http.MethodPatch, base+"/cost", map[string]any{"shipping_cost_usd": "150"})
		requireStatus(t, http.StatusOK, w)
		got := decode[shippingapp.ShipmentResponse](t, w)
		assert.True(t, decimal.NewFromInt(150).Equal(got.ShippingCost))

		w = api.do(t, http.MethodPatch, base+"/cost", map[string]any{"shipping_cost_usd": "-1"})
		requireStatus(t, http.StatusBadRequest, w)
		assert.Equal(t, "INVALID_COST", decodeError(t, w).Code)
	})
}

func TestShipmentHandler_CreateValidation(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "TK1-FOOT")

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "no items",
			body:   map[string]any{"ref": "S1", "from_code": "CN", "to_code": "KE", "items": []any{}},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name: "bad date",
			body: map[string]any{"ref": "S1", "from_code": "CN", "to_code": "KE", "created_date": "2025-02-30",
				"items": []any{map[string]any{"sku": "TK1-FOOT", "qty": 1}}},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name: "bad country",
			body: map[string]any{"ref": "S1", "from_code": "CHN", "to_code": "KE",
				"items": []any{map[string]any{"sku": "TK1-FOOT", "qty": 1}}},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name: "same origin and destination",
			body: map[string]any{"ref": "S1", "from_code": "KE", "to_code": "KE",
				"items": []any{map[string]any{"sku": "TK1-FOOT", "qty": 1}}},
			status: http.StatusBadRequest,
			code:   "INVALID_ROUTE",
		},
		{
			name: "unknown product",
			body: map[string]any{"ref": "S1", "from_code": "CN", "to_code": "KE",
				"items": []any{map[string]any{"sku": "NOPE", "qty": 1}}},
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/v1/shipments", tt.body)
			requireStatus(t, tt.status, w)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestShipmentHandler_InvalidID(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/shipments/not-a-uuid", nil)
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "INVALID_ID", decodeError(t, w).Code)

	w = api.do(t, http.MethodGet, "/api/v1/shipments/6f1c1de4-3b7a-4c1e-9a43-2f1d7f0c9b11", nil)
	requireStatus(t, http.StatusNotFound, w)
}
