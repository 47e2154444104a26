package handler

import (
	shippingapp "github.com/codops/backend/internal/application/shipping"
	"github.com/codops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShipmentHandler serves /shipments
type ShipmentHandler struct {
	BaseHandler
	shipments *shippingapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipments *shippingapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

// Routes returns the shipment route group
func (h *ShipmentHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("shipments", "/shipments").
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.Get).
		PATCH("/:id/cost", h.UpdateCost).
		POST("/:id/arrive", h.Arrive)
	g.Group("shipment-items", "/:id/items").
		POST("", h.AddItem).
		PUT("/:itemId", h.UpdateItem).
		DELETE("/:itemId", h.RemoveItem)
	return g
}

// Create registers an in-transit shipment with one or more lines
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req shippingapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// List returns shipments, optionally filtered by status, route and SKU
func (h *ShipmentHandler) List(c *gin.Context) {
	var filter shippingapp.ListShipmentsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	shipments, err := h.shipments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, shipments, int64(len(shipments)), 0)
}

// Get returns one shipment with its lines
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	shipment, err := h.shipments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// AddItem adds a line to an in-transit shipment
func (h *ShipmentHandler) AddItem(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req shippingapp.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipments.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// UpdateItem changes the quantity of a line
func (h *ShipmentHandler) UpdateItem(c *gin.Context) {
	id, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}
	var req shippingapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipments.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// RemoveItem deletes a line; the last line cannot go
func (h *ShipmentHandler) RemoveItem(c *gin.Context) {
	id, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	shipment, err := h.shipments.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// UpdateCost sets the shipping cost, in transit or arrived
func (h *ShipmentHandler) UpdateCost(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req shippingapp.UpdateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipments.UpdateCost(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// Arrive marks the shipment arrived and moves its stock
func (h *ShipmentHandler) Arrive(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req shippingapp.ArriveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	arrival, err := h.shipments.MarkArrived(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, arrival)
}

func (h *ShipmentHandler) itemParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	itemID, ok := h.uuidParam(c, "itemId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return id, itemID, true
}
