package handler

import (
	catalogapp "github.com/codops/backend/internal/application/catalog"
	inventoryapp "github.com/codops/backend/internal/application/inventory"
	reportapp "github.com/codops/backend/internal/application/report"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves /products
type ProductHandler struct {
	BaseHandler
	products  *catalogapp.ProductService
	stock     *inventoryapp.StockService
	dashboard *reportapp.DashboardService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	products *catalogapp.ProductService,
	stock *inventoryapp.StockService,
	dashboard *reportapp.DashboardService,
) *ProductHandler {
	return &ProductHandler{
		products:  products,
		stock:     stock,
		dashboard: dashboard,
	}
}

// Routes returns the product route group
func (h *ProductHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("products", "/products").
		GET("", h.List).
		POST("", h.Create).
		GET("/:sku", h.Get).
		PUT("/:sku", h.Update).
		DELETE("/:sku", h.Delete).
		GET("/:sku/stock", h.Stock)
}

// List returns every product ordered by SKU
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, int64(len(products)), 0)
}

// Create adds a product; a duplicate SKU is a 409
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Get returns the product overview: spend, shipments, stock and profit
func (h *ProductHandler) Get(c *gin.Context) {
	overview, err := h.dashboard.ProductOverview(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// Update changes the fields present in the body
func (h *ProductHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("sku"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes the product together with its spend, remits, movements
// and shipment lines
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("sku")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stock returns the per-country balance of the product
func (h *ProductHandler) Stock(c *gin.Context) {
	stock, err := h.stock.StockByCountry(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}
