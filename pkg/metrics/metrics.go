package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="inventory"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Business Метрики (специфичные для Sweetshop)
// =============================================================================

// PurchasesTotal - количество завершённых покупок
var PurchasesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sweetshop_purchases_total",
		Help: "Total number of completed purchases",
	},
)

// PurchasesAmount - общая сумма покупок
var PurchasesAmount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sweetshop_purchases_amount_total",
		Help: "Total amount of all completed purchases",
	},
)

// PurchasesRejected - отклонённые покупки по причинам
var PurchasesRejected = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sweetshop_purchases_rejected_total",
		Help: "Total number of rejected purchases",
	},
	[]string{"reason"}, // invalid_quantity, insufficient_stock, not_found
)

// RestocksTotal - количество пополнений склада
var RestocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sweetshop_restocks_total",
		Help: "Total number of restock operations",
	},
)

// LedgerAppendFailures - покупки, не записанные в журнал
// Покупка при этом считается завершённой (см. контракт purchase)
var LedgerAppendFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sweetshop_ledger_append_failures_total",
		Help: "Total number of purchases not recorded in the purchase ledger",
	},
)

// LowStockSweets - количество сладостей с остатком ниже порога
var LowStockSweets = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "sweetshop_low_stock_sweets",
		Help: "Number of sweets with stock below the configured threshold",
	},
)
