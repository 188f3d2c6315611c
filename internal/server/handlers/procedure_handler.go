package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/procedures"
)

// ProcedureService is the procedure catalog surface exposed over HTTP.
type ProcedureService interface {
	Create(ctx context.Context, name string, lines []procedures.LineInput) (models.ProcedureDefinition, error)
	List(ctx context.Context) ([]models.ProcedureDefinition, error)
	Get(ctx context.Context, id int64) (models.ProcedureDefinition, error)
	Perform(ctx context.Context, id int64) (models.ProcedureDefinition, []models.InventoryItem, error)
}

type ProcedureHandler struct {
	svc    ProcedureService
	logger *zap.Logger
}

func NewProcedureHandler(svc ProcedureService, logger *zap.Logger) *ProcedureHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcedureHandler{svc: svc, logger: logger}
}

type createProcedureRequest struct {
	Name  string `json:"name"`
	Items []struct {
		InventoryItemID Number `json:"inventoryItemId"`
		Quantity        Number `json:"quantity"`
	} `json:"items"`
}

type performResponse struct {
	Procedure models.ProcedureDefinition `json:"procedure"`
	Items     []models.InventoryItem     `json:"items"`
}

func (h *ProcedureHandler) List(c *gin.Context) {
	defs, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

func (h *ProcedureHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	def, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

func (h *ProcedureHandler) Create(c *gin.Context) {
	var req createProcedureRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	lines := make([]procedures.LineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, procedures.LineInput{
			InventoryItemID: int64(item.InventoryItemID),
			Quantity:        item.Quantity.Int(),
		})
	}

	def, err := h.svc.Create(c.Request.Context(), req.Name, lines)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, def)
}

// Perform consumes the procedure's items from the ledger.
func (h *ProcedureHandler) Perform(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	def, items, err := h.svc.Perform(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, performResponse{Procedure: def, Items: items})
}
