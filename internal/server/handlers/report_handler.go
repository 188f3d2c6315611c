package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/service/reporting"
)

// ReportService builds stock reports on demand.
type ReportService interface {
	Summary(ctx context.Context) (reporting.Report, error)
}

type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
}

func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

func (h *ReportHandler) LowStock(c *gin.Context) {
	report, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
