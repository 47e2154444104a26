package handler

import (
	"bytes"
	"net/http"
	"testing"

	financeapp "github.com/codops/backend/internal/application/finance"
	"github.com/codops/backend/internal/infrastructure/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func remitBody(pieces int) map[string]any {
	return map[string]any{
		"start_date":   "2025-03-01",
		"end_date":     "2025-03-07",
		"country_code": "KE",
		"sku":          "TK1-FOOT",
		"orders":       pieces,
		"pieces":       pieces,
		"revenue_usd":  "300",
		"ad_usd":       "40",
	}
}

func TestFinanceHandler_Remits(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "TK1-FOOT")
	api.stockIn(t, "TK1-FOOT", "KE", 100)

	t.Run("first upsert creates and deducts", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/remits", remitBody(10))
		requireStatus(t, http.StatusCreated, w)
		res := decode[financeapp.UpsertRemitResponse](t, w)
		assert.False(t, res.Replaced)
		assert.True(t, res.StockDeducted)
		assert.Equal(t, 10, res.Remit.Pieces)
		assert.Equal(t, 90, api.stockOf(t, "TK1-FOOT").ByCountry["KE"])
	})

	t.Run("second upsert replaces the row", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/remits", remitBody(15))
		requireStatus(t, http.StatusOK, w)
		res := decode[financeapp.UpsertRemitResponse](t, w)
		assert.True(t, res.Replaced)
		assert.Equal(t, 15, res.Remit.Pieces)
		assert.Equal(t, 75, api.stockOf(t, "TK1-FOOT").ByCountry["KE"])
	})

	t.Run("end before start", func(t *testing.T) {
		body := remitBody(1)
		body["end_date"] = "2025-02-01"
		w := api.do(t, http.MethodPost, "/api/v1/remits", body)
		requireStatus(t, http.StatusBadRequest, w)
		assert.Equal(t, "INVALID_PERIOD", decodeError(t, w).Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		body := remitBody(1)
		body["sku"] = "NOPE"
		w := api.do(t, http.MethodPost, "/api/v1/remits", body)
		requireStatus(t, http.StatusNotFound, w)
	})

	t.Run("report", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/remits?rc=KE", nil)
		requireStatus(t, http.StatusOK, w)
		report := decode[financeapp.RemitReport](t, w)
		require.Len(t, report.Rows, 1)
		assert.Equal(t, 15, report.Totals.Pieces)
		assert.True(t, decimal.NewFromInt(300).Equal(report.Totals.Revenue))

		w = api.do(t, http.MethodGet, "/api/v1/remits?rc=UG", nil)
		requireStatus(t, http.StatusOK, w)
		assert.Empty(t, decode[financeapp.RemitReport](t, w).Rows)
	})

	t.Run("report filter validation", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/remits?rs=03/01/2025", nil)
		requireStatus(t, http.StatusBadRequest, w)
	})

	t.Run("export", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/remits/export?rc=KE&rs=2025-03-01", nil)
		requireStatus(t, http.StatusOK, w)
		assert.Equal(t, export.XLSXContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="remits-KE-2025-03-01.xlsx"`, w.Header().Get("Content-Disposition"))

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Remittance")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "TK1-FOOT", rows[1][3])
		assert.Equal(t, "Total", rows[2][0])
	})
}

func TestFinanceHandler_Spend(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "TK1-FOOT")

	body := map[string]any{"sku": "TK1-FOOT", "platform": "Facebook", "country_code": "KE", "amount_usd": "25"}
	w := api.do(t, http.MethodPost, "/api/v1/spend/current", body)
	requireStatus(t, http.StatusOK, w)
	first := decode[financeapp.SpendResponse](t, w)

	body["amount_usd"] = "30"
	w = api.do(t, http.MethodPost, "/api/v1/spend/current", body)
	requireStatus(t, http.StatusOK, w)
	second := decode[financeapp.SpendResponse](t, w)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, decimal.NewFromInt(30).Equal(second.Amount))

	body["amount_usd"] = "-1"
	w = api.do(t, http.MethodPost, "/api/v1/spend/current", body)
	requireStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "INVALID_AMOUNT", decodeError(t, w).Code)

	w = api.do(t, http.MethodDelete, "/api/v1/spend/current/"+first.ID.String(), nil)
	requireStatus(t, http.StatusNoContent, w)
	w = api.do(t, http.MethodDelete, "/api/v1/spend/current/"+first.ID.String(), nil)
	requireStatus(t, http.StatusNotFound, w)
}

func TestFinanceHandler_Delivered(t *testing.T) {
	api := newTestAPI(t)

	for _, row := range []map[string]any{
		{"date": "2025-03-01", "country_code": "KE", "delivered": 12},
		{"date": "2025-03-02", "country_code": "KE", "delivered": 9},
		{"date": "2025-03-01", "country_code": "KE", "delivered": 14},
	} {
		w := api.do(t, http.MethodPost, "/api/v1/delivered", row)
		requireStatus(t, http.StatusOK, w)
	}

	w := api.do(t, http.MethodGet, "/api/v1/delivered?from=2025-03-01&to=2025-03-31", nil)
	requireStatus(t, http.StatusOK, w)
	list := decode[financeapp.DeliveredList](t, w)
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "2025-03-02", list.Rows[0].Date)
	assert.Equal(t, 23, list.Total)

	w = api.do(t, http.MethodPost, "/api/v1/delivered", map[string]any{"date": "2025-13-01", "country_code": "KE"})
	requireStatus(t, http.StatusBadRequest, w)

	w = api.do(t, http.MethodGet, "/api/v1/delivered?limit=0&from=bad", nil)
	requireStatus(t, http.StatusBadRequest, w)
}
