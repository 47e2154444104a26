package handler

import (
	inventoryapp "github.com/codops/backend/internal/application/inventory"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// InventoryHandler serves countries, warehouses and stock movements
type InventoryHandler struct {
	BaseHandler
	stock *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stock *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{stock: stock}
}

// Routes returns the inventory route groups
func (h *InventoryHandler) Routes() []*router.DomainGroup {
	return []*router.DomainGroup{
		router.NewDomainGroup("countries", "/countries").GET("", h.ListCountries),
		router.NewDomainGroup("warehouses", "/warehouses").GET("", h.ListWarehouses),
		router.NewDomainGroup("stock", "/stock").
			GET("/movements", h.ListMovements).
			POST("/movements", h.RecordMovement),
	}
}

// ListCountries returns the operational countries; the origin is left out
func (h *InventoryHandler) ListCountries(c *gin.Context) {
	countries, err := h.stock.ListCountries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, countries)
}

// ListWarehouses returns every warehouse
func (h *InventoryHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.stock.ListWarehouses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouses)
}

type movementsQuery struct {
	SKU string `form:"sku" binding:"required"`
}

// ListMovements returns the ledger of one SKU
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var q movementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	movements, err := h.stock.ListMovements(c.Request.Context(), q.SKU)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, int64(len(movements)), 0)
}

// RecordMovement writes a manual adjustment
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req inventoryapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	movement, err := h.stock.RecordMovement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}
