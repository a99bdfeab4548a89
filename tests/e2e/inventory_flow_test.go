//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"sweetshop/internal/app/inventory/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// BaseURL - адрес запущенного inventory-service
	// Для E2E тестов сервис должен быть запущен через docker-compose
	BaseURL = "http://localhost:8080"
)

// jwtSecret должен совпадать с JWT_SECRET запущенного сервиса
func jwtSecret() string {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return secret
	}
	return "your-secret-key-change-this-in-production"
}

type tokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
	jwt.RegisteredClaims
}

func issueToken(t *testing.T, userID uuid.UUID, email, roleName string) string {
	t.Helper()

	claims := tokenClaims{
		UserID:   userID.String(),
		Email:    email,
		RoleName: roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret()))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, client *http.Client, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf.Write(data)
	}

	req, err := http.NewRequest(method, BaseURL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// TestFullInventoryFlow тестирует полный цикл работы с инвентарём:
// 1. Создание сладости
// 2. Получение каталога (проверка кеша)
// 3. Поиск по фильтрам
// 4. Цены фасовок
// 5. Покупка 0.5 кг (списание остатка + запись в журнал)
// 6. Проверка журнала покупателя
// 7. Пополнение склада (admin)
// 8. Удаление сладости (admin)
func TestFullInventoryFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	buyerID := uuid.New()
	buyerToken := issueToken(t, buyerID, "buyer@example.com", "user")
	adminToken := issueToken(t, uuid.New(), "admin@example.com", "admin")

	// ==================== Step 1: Create Sweet ====================
	t.Log("Step 1: Creating sweet")

	sweetName := fmt.Sprintf("Laddu %d", time.Now().UnixNano())
	price := 500.0
	createReq := entity.CreateSweetRequest{
		Name:          sweetName,
		Category:      "Traditional",
		PricePerKilo:  &price,
		StockQuantity: 50,
	}

	resp := doJSON(t, client, http.MethodPost, "/api/sweets", buyerToken, createReq)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Sweet creation should succeed")

	var sweet entity.Sweet
	err := json.NewDecoder(resp.Body).Decode(&sweet)
	require.NoError(t, err)
	assert.Equal(t, sweetName, sweet.Name)
	assert.Equal(t, 500.0, sweet.PricePerKilo)
	assert.NotEqual(t, uuid.Nil, sweet.ID)

	sweetID := sweet.ID
	t.Logf("Created sweet: %s (ID: %s)", sweet.Name, sweetID)

	// ==================== Step 2: Get All Sweets ====================
	t.Log("Step 2: Getting full catalog")

	resp = doJSON(t, client, http.MethodGet, "/api/sweets", buyerToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listResponse entity.SweetListResponse
	err = json.NewDecoder(resp.Body).Decode(&listResponse)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, listResponse.Total, 1)

	// ==================== Step 3: Search ====================
	t.Log("Step 3: Searching by name substring and price bounds")

	resp = doJSON(t, client, http.MethodGet, "/api/sweets/search?name=Laddu&minPrice=100&maxPrice=600", buyerToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var searchResponse entity.SweetListResponse
	err = json.NewDecoder(resp.Body).Decode(&searchResponse)
	require.NoError(t, err)

	found := false
	for _, s := range searchResponse.Sweets {
		if s.ID == sweetID {
			found = true
			break
		}
	}
	assert.True(t, found, "Created sweet should match the search filters")

	// ==================== Step 4: Tier Prices ====================
	t.Log("Step 4: Getting tier prices")

	resp = doJSON(t, client, http.MethodGet, "/api/sweets/"+sweetID.String()+"/prices", buyerToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tierPrices entity.TierPricesResponse
	err = json.NewDecoder(resp.Body).Decode(&tierPrices)
	require.NoError(t, err)
	assert.Equal(t, 125.0, tierPrices.Tiers["0.25"])
	assert.Equal(t, 250.0, tierPrices.Tiers["0.5"])
	assert.Equal(t, 500.0, tierPrices.Tiers["1"])

	// ==================== Step 5: Purchase ====================
	t.Log("Step 5: Purchasing 0.5 kg")

	resp = doJSON(t, client, http.MethodPost, "/api/sweets/"+sweetID.String()+"/purchase", buyerToken, entity.PurchaseRequest{Quantity: 0.5})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Purchase should succeed")

	var purchase entity.PurchaseResponse
	err = json.NewDecoder(resp.Body).Decode(&purchase)
	require.NoError(t, err)
	assert.Equal(t, 0.5, purchase.PurchaseQuantity)
	assert.Equal(t, 250.0, purchase.PurchasePrice)
	assert.Equal(t, 49.5, purchase.Sweet.StockQuantity)
	assert.True(t, purchase.LedgerRecorded)

	t.Logf("Purchased 0.5 kg for %.2f, stock left: %.2f", purchase.PurchasePrice, purchase.Sweet.StockQuantity)

	// Количество вне фасовок должно отклоняться
	resp = doJSON(t, client, http.MethodPost, "/api/sweets/"+sweetID.String()+"/purchase", buyerToken, entity.PurchaseRequest{Quantity: 10})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Non-tier quantity should be rejected")

	// ==================== Step 6: Buyer Ledger ====================
	t.Log("Step 6: Checking buyer purchase history")

	resp = doJSON(t, client, http.MethodGet, "/api/orders/my", buyerToken, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var myOrders entity.PurchaseReportResponse
	err = json.NewDecoder(resp.Body).Decode(&myOrders)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, myOrders.Total, 1)

	found = false
	for _, p := range myOrders.Purchases {
		if p.SweetID == sweetID {
			found = true
			assert.Equal(t, 0.5, p.Quantity)
			assert.Equal(t, 250.0, p.TotalPrice)
			break
		}
	}
	assert.True(t, found, "Purchase should appear in buyer history")

	// ==================== Step 7: Restock (admin only) ====================
	t.Log("Step 7: Restocking as admin")

	// Обычный покупатель не может пополнять склад
	resp = doJSON(t, client, http.MethodPost, "/api/sweets/"+sweetID.String()+"/restock", buyerToken, entity.RestockRequest{Quantity: 10})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "Restock should require admin role")

	resp = doJSON(t, client, http.MethodPost, "/api/sweets/"+sweetID.String()+"/restock", adminToken, entity.RestockRequest{Quantity: 10})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Admin restock should succeed")

	var restocked entity.Sweet
	err = json.NewDecoder(resp.Body).Decode(&restocked)
	require.NoError(t, err)
	assert.Equal(t, 59.5, restocked.StockQuantity)

	// ==================== Step 8: Delete (admin only) ====================
	t.Log("Step 8: Deleting sweet as admin")

	resp = doJSON(t, client, http.MethodDelete, "/api/sweets/"+sweetID.String(), buyerToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "Delete should require admin role")

	resp = doJSON(t, client, http.MethodDelete, "/api/sweets/"+sweetID.String(), adminToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "Admin delete should succeed")

	resp = doJSON(t, client, http.MethodGet, "/api/sweets/"+sweetID.String(), buyerToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Sweet should not be found after deletion")

	// Журнал сохраняет историю покупок удалённой сладости
	resp = doJSON(t, client, http.MethodGet, "/api/orders/my", buyerToken, nil)
	defer resp.Body.Close()

	var ordersAfterDelete entity.PurchaseReportResponse
	err = json.NewDecoder(resp.Body).Decode(&ordersAfterDelete)
	require.NoError(t, err)

	found = false
	for _, p := range ordersAfterDelete.Purchases {
		if p.SweetID == sweetID {
			found = true
			break
		}
	}
	assert.True(t, found, "Ledger records should survive sweet deletion")

	t.Log("Full inventory flow completed successfully!")
}

// TestPurchaseExhaustsStock проверяет защиту от перепродажи
func TestPurchaseExhaustsStock(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	buyerToken := issueToken(t, uuid.New(), "buyer@example.com", "user")
	adminToken := issueToken(t, uuid.New(), "admin@example.com", "admin")

	// Создаём сладость с остатком ровно на одну покупку
	price := 300.0
	createReq := entity.CreateSweetRequest{
		Name:          fmt.Sprintf("Jalebi %d", time.Now().UnixNano()),
		Category:      "Traditional",
		PricePerKilo:  &price,
		StockQuantity: 1,
	}

	resp := doJSON(t, client, http.MethodPost, "/api/sweets", buyerToken, createReq)
	var sweet entity.Sweet
	err := json.NewDecoder(resp.Body).Decode(&sweet)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Cleanup: удаляем сладость после теста
	defer func() {
		resp := doJSON(t, client, http.MethodDelete, "/api/sweets/"+sweet.ID.String(), adminToken, nil)
		resp.Body.Close()
	}()

	// Первая покупка проходит
	resp = doJSON(t, client, http.MethodPost, "/api/sweets/"+sweet.ID.String()+"/purchase", buyerToken, entity.PurchaseRequest{Quantity: 1})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Вторая покупка при пустом складе отклоняется
	resp = doJSON(t, client, http.MethodPost, "/api/sweets/"+sweet.ID.String()+"/purchase", buyerToken, entity.PurchaseRequest{Quantity: 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResponse map[string]string
	json.NewDecoder(resp.Body).Decode(&errResponse)
	assert.Equal(t, "Insufficient quantity in stock", errResponse["error"])
}

// TestUnauthorizedAccess проверяет что каталог закрыт без токена
func TestUnauthorizedAccess(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(BaseURL + "/api/sweets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestHealthCheck проверяет что сервис отвечает
func TestHealthCheck(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(BaseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
