package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/codops/backend/internal/application/catalog"
	inventoryapp "github.com/codops/backend/internal/application/inventory"
	reportapp "github.com/codops/backend/internal/application/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)

	created := api.createProduct(t, "TK1-FOOT")
	assert.Equal(t, "TK1-FOOT", created.SKU)
	assert.True(t, decimal.RequireFromString("8.20").Equal(created.OriginCost))
	assert.Equal(t, 720, created.WeightGrams)

	t.Run("duplicate sku conflicts", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/products", map[string]any{"sku": "TK1-FOOT", "name": "Again"})
		requireStatus(t, http.StatusConflict, w)
		assert.Equal(t, "ALREADY_EXISTS", decodeError(t, w).Code)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/products", map[string]any{"sku": "NEW-1"})
		requireStatus(t, http.StatusBadRequest, w)
		info := decodeError(t, w)
		assert.Equal(t, "VALIDATION_ERROR", info.Code)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "name", info.Details[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/products", `{"sku":`)
		requireStatus(t, http.StatusBadRequest, w)
	})

	t.Run("list", func(t *testing.T) {
		api.createProduct(t, "GLS-TRIM")
		w := api.do(t, http.MethodGet, "/api/v1/products", nil)
		requireStatus(t, http.StatusOK, w)
		list := decode[[]catalogapp.ProductResponse](t, w)
		assert.Len(t, list, 2)
	})

	t.Run("update", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/v1/products/TK1-FOOT", map[string]any{
			"name":        "Foot massager",
			"cost_cn_usd": "9.10",
		})
		requireStatus(t, http.StatusOK, w)
		updated := decode[catalogapp.ProductResponse](t, w)
		assert.Equal(t, "Foot massager", updated.Name)
		assert.True(t, decimal.RequireFromString("9.10").Equal(updated.OriginCost))
		assert.Equal(t, 720, updated.WeightGrams)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := api.do(t, http.MethodPut, "/api/v1/products/TK1-FOOT", map[string]any{"status": "gone"})
		requireStatus(t, http.StatusBadRequest, w)
	})

	t.Run("overview", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/products/TK1-FOOT", nil)
		requireStatus(t, http.StatusOK, w)
		overview := decode[reportapp.ProductOverview](t, w)
		assert.Equal(t, "TK1-FOOT", overview.Product.SKU)
		assert.NotEmpty(t, overview.Stock)
		assert.Zero(t, overview.StockTotal)
	})

	t.Run("stock", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/products/TK1-FOOT/stock", nil)
		requireStatus(t, http.StatusOK, w)
		stock := decode[inventoryapp.StockByCountryResponse](t, w)
		assert.Equal(t, "TK1-FOOT", stock.SKU)
		assert.Zero(t, stock.Total)
	})

	t.Run("delete", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, "/api/v1/products/GLS-TRIM", nil)
		requireStatus(t, http.StatusNoContent, w)

		w = api.do(t, http.MethodGet, "/api/v1/products/GLS-TRIM", nil)
		requireStatus(t, http.StatusNotFound, w)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
	})
}

func TestProductHandler_UnknownSKU(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/products/NOPE/stock", nil)
	requireStatus(t, http.StatusNotFound, w)
	assert.NotEmpty(t, decodeError(t, w).RequestID)
}
