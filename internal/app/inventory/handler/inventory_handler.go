package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sweetshop/internal/app/inventory/entity"
	"sweetshop/internal/app/inventory/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Минимальная фасовка используется, если количество не передано
const defaultPurchaseQuantity = 0.25

// InventoryHandler обрабатывает HTTP запросы каталога сладостей
type InventoryHandler struct {
	inventoryService service.InventoryServiceInterface
	validator        *validator.Validate
}

// NewInventoryHandler создает новый обработчик инвентаря
func NewInventoryHandler(inventoryService service.InventoryServiceInterface) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		validator:        validator.New(),
	}
}

// CreateSweet обрабатывает POST /api/sweets
func (h *InventoryHandler) CreateSweet(c *gin.Context) {
	var req entity.CreateSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	sweet, err := h.inventoryService.CreateSweet(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet data"})
			return
		}
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "A sweet with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sweet"})
		return
	}

	c.JSON(http.StatusCreated, sweet)
}

// GetAllSweets обрабатывает GET /api/sweets (с кешированием)
func (h *InventoryHandler) GetAllSweets(c *gin.Context) {
	sweets, err := h.inventoryService.GetAllSweets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sweets"})
		return
	}

	c.JSON(http.StatusOK, entity.SweetListResponse{
		Sweets: sweets,
		Total:  len(sweets),
	})
}

// GetSweet обрабатывает GET /api/sweets/{id}
func (h *InventoryHandler) GetSweet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	sweet, err := h.inventoryService.GetSweet(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sweet"})
		return
	}

	c.JSON(http.StatusOK, sweet)
}

// GetTierPrices обрабатывает GET /api/sweets/{id}/prices
// Возвращает цены фиксированных фасовок для витрины
func (h *InventoryHandler) GetTierPrices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	sweet, err := h.inventoryService.GetSweet(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sweet"})
		return
	}

	c.JSON(http.StatusOK, entity.TierPricesResponse{
		SweetID:      sweet.ID.String(),
		PricePerKilo: sweet.PricePerKilo,
		Tiers:        service.TierPrices(sweet.PricePerKilo),
	})
}

// SearchSweets обрабатывает GET /api/sweets/search
// Фильтры: name (подстрока), category (точное совпадение),
// minPrice/maxPrice (границы включительно)
func (h *InventoryHandler) SearchSweets(c *gin.Context) {
	filters := &entity.SearchFilters{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
			return
		}
		filters.MinPrice = &minPrice
	}
	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
			return
		}
		filters.MaxPrice = &maxPrice
	}

	sweets, err := h.inventoryService.SearchSweets(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, entity.SweetListResponse{
		Sweets: sweets,
		Total:  len(sweets),
	})
}

// UpdateSweet обрабатывает PUT /api/sweets/{id}
func (h *InventoryHandler) UpdateSweet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	var req entity.UpdateSweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	sweet, err := h.inventoryService.UpdateSweet(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "A sweet with this name already exists"})
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet data"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sweet"})
		return
	}

	c.JSON(http.StatusOK, sweet)
}

// DeleteSweet обрабатывает DELETE /api/sweets/{id} (только admin)
func (h *InventoryHandler) DeleteSweet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	if err := h.inventoryService.DeleteSweet(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sweet"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Sweet deleted successfully",
	})
}

// PurchaseSweet обрабатывает POST /api/sweets/{id}/purchase
// Количество - одна из фасовок 0.25/0.5/1 кг; при отсутствии - 0.25
func (h *InventoryHandler) PurchaseSweet(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	var req entity.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = defaultPurchaseQuantity
	}

	outcome, err := h.inventoryService.Purchase(c.Request.Context(), caller, id, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be 0.25kg (250g), 0.5kg (500g), or 1kg"})
			return
		}
		if errors.Is(err, service.ErrInsufficientStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient quantity in stock"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
		return
	}

	response := entity.PurchaseResponse{
		Sweet:            *outcome.Sweet,
		PurchaseQuantity: req.Quantity,
		PurchasePrice:    service.RoundCurrency(outcome.Record.TotalPrice),
		LedgerRecorded:   outcome.LedgerRecorded,
	}
	if !outcome.LedgerRecorded {
		response.Warning = "Purchase completed but could not be recorded in the purchase history"
	}

	c.JSON(http.StatusOK, response)
}

// RestockSweet обрабатывает POST /api/sweets/{id}/restock (только admin)
func (h *InventoryHandler) RestockSweet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sweet ID"})
		return
	}

	var req entity.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Валидация
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid quantity (in kg) is required"})
		return
	}

	sweet, err := h.inventoryService.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrSweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sweet not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid quantity (in kg) is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Restock failed"})
		return
	}

	c.JSON(http.StatusOK, sweet)
}

// === HELPER FUNCTIONS ===

// callerFromContext собирает контекст вызывающего, установленный middleware
func callerFromContext(c *gin.Context) (entity.CallerContext, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return entity.CallerContext{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		return entity.CallerContext{}, false
	}

	caller := entity.CallerContext{ID: userUUID}
	if name, exists := c.Get("user_name"); exists {
		caller.Name, _ = name.(string)
	}
	if role, exists := c.Get("role_name"); exists {
		caller.Role, _ = role.(string)
	}

	return caller, true
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Field() + " validation failed"
	}
	return "Validation failed"
}
