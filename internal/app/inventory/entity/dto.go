package entity

// CreateSweetRequest - запрос на создание сладости
// Поле price оставлено для старых клиентов и используется
// только если price_per_kilo не передан
type CreateSweetRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Category      string   `json:"category" validate:"required,min=1,max=100"`
	PricePerKilo  *float64 `json:"price_per_kilo" validate:"omitempty,gte=0"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"` // Legacy
	StockQuantity float64  `json:"stock_quantity" validate:"gte=0"`
}

// UpdateSweetRequest - частичное обновление сладости
// Nil-поля не изменяются; пустой набор полей возвращает сладость без изменений
type UpdateSweetRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string  `json:"category" validate:"omitempty,min=1,max=100"`
	PricePerKilo  *float64 `json:"price_per_kilo" validate:"omitempty,gte=0"`
	StockQuantity *float64 `json:"stock_quantity" validate:"omitempty,gte=0"`
}

// PurchaseRequest - покупка фиксированной фасовки (0.25, 0.5 или 1 кг)
// При отсутствии количества используется минимальная фасовка 0.25 кг
type PurchaseRequest struct {
	Quantity float64 `json:"quantity"`
}

// RestockRequest - пополнение склада, количество в кг без верхней границы
type RestockRequest struct {
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
}

// SearchFilters - фильтры поиска, объединяются по AND
// Поиск по имени - подстрока с учётом регистра, категория - точное совпадение
type SearchFilters struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type SweetListResponse struct {
	Sweets []Sweet `json:"sweets"`
	Total  int     `json:"total"`
}

// PurchaseResponse - результат успешной покупки
// LedgerRecorded=false означает, что покупка завершена, но запись
// в журнал не удалась (предупреждение, не ошибка операции)
type PurchaseResponse struct {
	Sweet            Sweet   `json:"sweet"`
	PurchaseQuantity float64 `json:"purchase_quantity"`
	PurchasePrice    float64 `json:"purchase_price"` // Округлено до валютной точности
	LedgerRecorded   bool    `json:"ledger_recorded"`
	Warning          string  `json:"warning,omitempty"`
}

type PurchaseReportResponse struct {
	Purchases []PurchaseReport `json:"purchases"`
	Total     int              `json:"total"`
}

// TierPricesResponse - цены фиксированных фасовок для одной сладости
type TierPricesResponse struct {
	SweetID      string             `json:"sweet_id"`
	PricePerKilo float64            `json:"price_per_kilo"`
	Tiers        map[string]float64 `json:"tiers"`
}
