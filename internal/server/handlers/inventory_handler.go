package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/inventory"
)

// InventoryService is the ledger surface exposed over HTTP.
type InventoryService interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Get(ctx context.Context, id int64) (models.InventoryItem, error)
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
	Create(ctx context.Context, in inventory.CreateInput) (models.InventoryItem, error)
	Adjust(ctx context.Context, id int64, in inventory.AdjustInput) (models.InventoryItem, error)
	Deduct(ctx context.Context, id int64, amount int, reason string) (models.InventoryItem, error)
	Restock(ctx context.Context, id int64, amount int, reason string) (models.InventoryItem, error)
	ConsumeForProcedure(ctx context.Context, lines []models.ConsumptionLine, reason string) ([]models.InventoryItem, error)
}

// MovementReader serves the audit trail of one item.
type MovementReader interface {
	ForItem(ctx context.Context, itemID int64, limit int) ([]models.StockMovement, error)
}

// InventoryHandler adapts the inventory ledger to HTTP.
type InventoryHandler struct {
	svc       InventoryService
	movements MovementReader
	logger    *zap.Logger
}

// NewInventoryHandler constructs the handler. movements may be nil.
func NewInventoryHandler(svc InventoryService, movements MovementReader, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, movements: movements, logger: logger}
}

type createItemRequest struct {
	Name        string  `json:"name"`
	Quantity    *Number `json:"quantity"`
	Threshold   *Number `json:"threshold"`
	OrderAmount Number  `json:"orderAmount"`
	Category    string  `json:"category"`
	Supplier    string  `json:"supplier"`
}

type updateItemRequest struct {
	Quantity    *Number `json:"quantity"`
	Threshold   *Number `json:"threshold"`
	OrderAmount *Number `json:"orderAmount"`
}

type amountRequest struct {
	Amount *Number `json:"amount"`
	Reason string  `json:"reason"`
}

type consumeRequest struct {
	Items []struct {
		ItemID   Number `json:"itemId"`
		Quantity Number `json:"quantity"`
	} `json:"items"`
	Reason string `json:"reason"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if req.Quantity == nil {
		respondError(c, h.logger, apperr.InvalidArgument("quantity is required"))
		return
	}
	if req.Threshold == nil {
		respondError(c, h.logger, apperr.InvalidArgument("threshold is required"))
		return
	}

	item, err := h.svc.Create(c.Request.Context(), inventory.CreateInput{
		Name:        req.Name,
		Quantity:    req.Quantity.Int(),
		Threshold:   req.Threshold.Int(),
		OrderAmount: req.OrderAmount.Int(),
		Category:    req.Category,
		Supplier:    req.Supplier,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update overwrites quantity and, when present, threshold and orderAmount.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req updateItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if req.Quantity == nil {
		respondError(c, h.logger, apperr.InvalidArgument("quantity is required"))
		return
	}

	item, err := h.svc.Adjust(c.Request.Context(), id, inventory.AdjustInput{
		Quantity:    req.Quantity.Int(),
		Threshold:   optionalInt(req.Threshold),
		OrderAmount: optionalInt(req.OrderAmount),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Deduct(c *gin.Context) {
	h.applyAmount(c, h.svc.Deduct)
}

func (h *InventoryHandler) Restock(c *gin.Context) {
	h.applyAmount(c, h.svc.Restock)
}

func (h *InventoryHandler) applyAmount(c *gin.Context, op func(context.Context, int64, int, string) (models.InventoryItem, error)) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req amountRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if req.Amount == nil {
		respondError(c, h.logger, apperr.InvalidArgument("amount is required"))
		return
	}

	item, err := op(c.Request.Context(), id, req.Amount.Int(), req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Consume deducts several items at once; nothing changes unless every line fits.
func (h *InventoryHandler) Consume(c *gin.Context) {
	var req consumeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	lines := make([]models.ConsumptionLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, models.ConsumptionLine{ItemID: int64(item.ItemID), Quantity: item.Quantity.Int()})
	}

	items, err := h.svc.ConsumeForProcedure(c.Request.Context(), lines, req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Movements lists the audit trail of one item, newest first.
func (h *InventoryHandler) Movements(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if h.movements == nil {
		c.JSON(http.StatusOK, []models.StockMovement{})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(c, h.logger, apperr.InvalidArgument("invalid limit %q", raw))
			return
		}
	}

	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	movements, err := h.movements.ForItem(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, h.logger, apperr.Internal(err, "load movements of item %d", id))
		return
	}
	if movements == nil {
		movements = []models.StockMovement{}
	}
	c.JSON(http.StatusOK, movements)
}
