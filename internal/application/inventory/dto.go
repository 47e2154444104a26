package inventory

import (
	"time"

	"github.com/codops/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountryResponse represents a country in API responses
type CountryResponse struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	FxToUSD  decimal.Decimal `json:"fx_to_usd"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	CountryCode string    `json:"country_code"`
	Active      bool      `json:"active"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID              uuid.UUID  `json:"id"`
	Date            string     `json:"date"`
	SKU             string     `json:"sku"`
	Kind            string     `json:"kind"`
	FromWarehouseID *uuid.UUID `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *uuid.UUID `json:"to_warehouse_id,omitempty"`
	Quantity        int        `json:"qty"`
	Reference       string     `json:"ref"`
	CreatedAt       time.Time  `json:"created_at"`
}

// RecordMovementRequest records a manual stock movement between countries.
// Leave FromCountry empty for an increase and ToCountry empty for a decrease.
type RecordMovementRequest struct {
	Date        string `json:"date" binding:"omitempty,isodate"`
	SKU         string `json:"sku" binding:"required"`
	FromCountry string `json:"from_country" binding:"omitempty,country_code"`
	ToCountry   string `json:"to_country" binding:"omitempty,country_code"`
	Quantity    int    `json:"qty" binding:"required,gt=0"`
	Reference   string `json:"ref" binding:"max=100"`
}

// StockByCountryResponse is a product's balance per country
type StockByCountryResponse struct {
	SKU       string         `json:"sku"`
	ByCountry map[string]int `json:"by_country"`
	Total     int            `json:"total"`
}

// CountryStockRow is the balance of one operational country
type CountryStockRow struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Quantity    int    `json:"qty"`
}

// ToCountryResponse converts a domain Country
func ToCountryResponse(c *inventory.Country) CountryResponse {
	return CountryResponse{
		Code:     c.Code,
		Name:     c.Name,
		Currency: c.Currency,
		FxToUSD:  c.FxToUSD,
	}
}

// ToWarehouseResponse converts a domain Warehouse
func ToWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:          w.ID,
		Code:        w.Code,
		Name:        w.Name,
		CountryCode: w.CountryCode,
		Active:      w.Active,
	}
}

// ToMovementResponse converts a domain StockMovement
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		Date:            m.Date,
		SKU:             m.SKU,
		Kind:            string(m.Kind()),
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Quantity:        m.Quantity,
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of domain StockMovements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
