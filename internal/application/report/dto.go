package report

import (
	appcatalog "github.com/codops/backend/internal/application/catalog"
	appfinance "github.com/codops/backend/internal/application/finance"
	appinventory "github.com/codops/backend/internal/application/inventory"
	appshipping "github.com/codops/backend/internal/application/shipping"
	"github.com/shopspring/decimal"
)

// DashboardFilter carries the optional dashboard ranges. The remittance
// report is included only when both RemitStart and RemitEnd are set.
type DashboardFilter struct {
	DeliveredFrom string `form:"from" binding:"omitempty,isodate"`
	DeliveredTo   string `form:"to" binding:"omitempty,isodate"`
	RemitStart    string `form:"rs" binding:"omitempty,isodate"`
	RemitEnd      string `form:"re" binding:"omitempty,isodate"`
	RemitCountry  string `form:"rc" binding:"omitempty,country_code"`
}

// DashboardCounts are the headline counters
type DashboardCounts struct {
	Products   int64 `json:"products"`
	Warehouses int64 `json:"warehouses"`
	InTransit  int64 `json:"in_transit"`
}

// CountryBand is one operational country's live position
type CountryBand struct {
	CountryCode  string          `json:"country_code"`
	CountryName  string          `json:"country_name"`
	Stock        int             `json:"stock"`
	InTransit    int             `json:"in_transit"`
	DailyAdSpend decimal.Decimal `json:"ad_spend"`
}

// Dashboard is the operations overview
type Dashboard struct {
	Counts                DashboardCounts                `json:"counts"`
	Band                  []CountryBand                  `json:"band"`
	FirstLegInTransit     []appshipping.ShipmentResponse `json:"cn_ke"`
	InterCountryInTransit []appshipping.ShipmentResponse `json:"inter"`
	Delivered             appfinance.DeliveredList       `json:"delivered"`
	Remits                *appfinance.RemitReport        `json:"remit_report,omitempty"`
}

// ProductShipment is a shipment carrying the product with the quantity of it
type ProductShipment struct {
	appshipping.ShipmentResponse
	QuantityOfSKU int `json:"qty_sum"`
}

// CountryProfitRow is the aggregated profit of a product in one country
type CountryProfitRow struct {
	CountryCode    string          `json:"country_code"`
	Pieces         int             `json:"pieces"`
	Revenue        decimal.Decimal `json:"revenue_usd"`
	AdSpend        decimal.Decimal `json:"ad_usd"`
	ProfitTotal    decimal.Decimal `json:"profit_total_usd"`
	ProfitPerPiece decimal.Decimal `json:"profit_per_piece_usd"`
}

// ProfitTotalsRow sums CountryProfitRow values
type ProfitTotalsRow struct {
	Pieces      int             `json:"pieces"`
	Revenue     decimal.Decimal `json:"revenue_usd"`
	AdSpend     decimal.Decimal `json:"ad_usd"`
	ProfitTotal decimal.Decimal `json:"profit_total_usd"`
}

// ProductOverview is everything known about one product
type ProductOverview struct {
	Product      appcatalog.ProductResponse     `json:"product"`
	CurrentSpend []appfinance.SpendResponse     `json:"current_spend"`
	Shipments    []ProductShipment              `json:"shipments"`
	Stock        []appinventory.CountryStockRow `json:"stock_rows"`
	StockTotal   int                            `json:"stock_total"`
	Profit       []CountryProfitRow             `json:"profit_rows"`
	ProfitTotals ProfitTotalsRow                `json:"profit_totals"`
}
