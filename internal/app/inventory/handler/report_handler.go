package handler

import (
	"errors"
	"net/http"

	"sweetshop/internal/app/inventory/entity"
	"sweetshop/internal/app/inventory/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler обрабатывает запросы отчётности по журналу покупок
type ReportHandler struct {
	reportService service.ReportServiceInterface
}

// NewReportHandler создает новый обработчик отчётов
func NewReportHandler(reportService service.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetAllOrders обрабатывает GET /api/orders (только admin)
// Отчёт никогда не содержит учётных данных покупателей
func (h *ReportHandler) GetAllOrders(c *gin.Context) {
	reports, err := h.reportService.AllPurchases(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, entity.PurchaseReportResponse{
		Purchases: reports,
		Total:     len(reports),
	})
}

// GetMyOrders обрабатывает GET /api/orders/my
// Возвращает покупки текущего вызывающего
func (h *ReportHandler) GetMyOrders(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reports, err := h.reportService.PurchasesForBuyer(c.Request.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, entity.PurchaseReportResponse{
		Purchases: reports,
		Total:     len(reports),
	})
}

// GetOrdersBySweet обрабатывает GET /api/orders/sweet/{id} (только admin)
func (h *ReportHandler) GetOrdersBySweet(c *gin.Context) {
	sweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	reports, err := h.reportService.PurchasesForSweet(c.Request.Context(), sweetID)
	if err != nil {
		if errors.Is(err, service.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, entity.PurchaseReportResponse{
		Purchases: reports,
		Total:     len(reports),
	})
}
