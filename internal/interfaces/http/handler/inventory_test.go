package handler

import (
	"net/http"
	"testing"

	inventoryapp "github.com/codops/backend/internal/application/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryHandler_Reference(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/countries", nil)
	requireStatus(t, http.StatusOK, w)
	countries := decode[[]inventoryapp.CountryResponse](t, w)
	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		codes = append(codes, c.Code)
	}
	assert.ElementsMatch(t, []string{"KE", "TZ", "UG", "ZM", "ZW"}, codes)

	w = api.do(t, http.MethodGet, "/api/v1/warehouses", nil)
	requireStatus(t, http.StatusOK, w)
	warehouses := decode[[]inventoryapp.WarehouseResponse](t, w)
	assert.Len(t, warehouses, 6)
	for _, wh := range warehouses {
		assert.True(t, wh.Active, wh.Code)
	}
}

func TestInventoryHandler_Movements(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "TK1-FOOT")

	w := api.do(t, http.MethodGet, "/api/v1/stock/movements", nil)
	requireStatus(t, http.StatusBadRequest, w)

	w = api.do(t, http.MethodPost, "/api/v1/stock/movements", map[string]any{
		"date":       "2025-01-05",
		"sku":        "tk1-foot",
		"to_country": "KE",
		"qty":        40,
	})
	requireStatus(t, http.StatusCreated, w)
	in := decode[inventoryapp.MovementResponse](t, w)
	assert.Equal(t, "TK1-FOOT", in.SKU)
	assert.Equal(t, "increase", in.Kind)
	assert.Nil(t, in.FromWarehouseID)
	require.NotNil(t, in.ToWarehouseID)

	w = api.do(t, http.MethodPost, "/api/v1/stock/movements", map[string]any{
		"date":         "2025-01-06",
		"sku":          "TK1-FOOT",
		"from_country": "KE",
		"to_country":   "UG",
		"qty":          15,
		"ref":          "KE-UG-1",
	})
	requireStatus(t, http.StatusCreated, w)
	assert.Equal(t, "transfer", decode[inventoryapp.MovementResponse](t, w).Kind)

	w = api.do(t, http.MethodGet, "/api/v1/stock/movements?sku=TK1-FOOT", nil)
	requireStatus(t, http.StatusOK, w)
	assert.Len(t, decode[[]inventoryapp.MovementResponse](t, w), 2)

	stock := api.stockOf(t, "TK1-FOOT")
	assert.Equal(t, 25, stock.ByCountry["KE"])
	assert.Equal(t, 15, stock.ByCountry["UG"])
	assert.Equal(t, 40, stock.Total)

	t.Run("validation", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/stock/movements", map[string]any{"sku": "TK1-FOOT", "to_country": "KE", "qty": -3})
		requireStatus(t, http.StatusBadRequest, w)

		w = api.do(t, http.MethodPost, "/api/v1/stock/movements", map[string]any{"sku": "NOPE", "to_country": "KE", "qty": 3})
		requireStatus(t, http.StatusNotFound, w)
	})
}
