package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/orders"
)

// OrderService is the order placement surface exposed over HTTP.
type OrderService interface {
	Place(ctx context.Context, in orders.PlaceInput) (models.Order, models.InventoryItem, error)
	MarkDelivered(ctx context.Context, id int64, deliveredQuantity int) (models.Order, models.InventoryItem, error)
	Cancel(ctx context.Context, id int64) (models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (models.Order, error)
}

type OrderHandler struct {
	svc    OrderService
	logger *zap.Logger
}

func NewOrderHandler(svc OrderService, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

type placeOrderRequest struct {
	ProductName string `json:"productName"`
	Quantity    Number `json:"quantity"`
	Supplier    string `json:"supplier"`
	Category    string `json:"category"`
}

type deliverRequest struct {
	DeliveredQuantity Number `json:"deliveredQuantity"`
}

type orderResponse struct {
	Order models.Order         `json:"order"`
	Item  models.InventoryItem `json:"item"`
}

func (h *OrderHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Place records the order and bootstraps the product into the ledger if needed.
func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	order, item, err := h.svc.Place(c.Request.Context(), orders.PlaceInput{
		ProductName: req.ProductName,
		Quantity:    req.Quantity.Int(),
		Supplier:    req.Supplier,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, orderResponse{Order: order, Item: item})
}

// Deliver accepts an empty body, meaning the full ordered quantity arrived.
func (h *OrderHandler) Deliver(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req deliverRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	order, item, err := h.svc.MarkDelivered(c.Request.Context(), id, req.DeliveredQuantity.Int())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse{Order: order, Item: item})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	order, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
