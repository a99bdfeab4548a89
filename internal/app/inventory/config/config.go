package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки Sweetshop Inventory Service
// Включает конфигурацию для HTTP сервера, PostgreSQL, Redis, Kafka, JWT и воркера
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Worker   WorkerConfig
	LogLevel string // Уровень логирования (debug/info/warn/error)
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Используется для хранения каталога сладостей и журнала покупок
type DatabaseConfig struct {
	Host     string // Хост PostgreSQL
	Port     string // Порт PostgreSQL
	User     string // Имя пользователя БД
	Password string // Пароль БД
	DBName   string // Имя базы данных
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

// RedisConfig - настройки подключения к Redis для кеширования
// Используется для кеширования полного списка сладостей
type RedisConfig struct {
	Host     string // Хост Redis
	Port     string // Порт Redis
	Password string // Пароль Redis (опционально)
	DB       int    // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для отправки событий инвентаря
// События отправляются при изменении каталога и операциях purchase/restock
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий инвентаря
}

// JWTConfig - настройки для проверки JWT токенов
// Токены выдаёт внешний auth-сервис, здесь они только проверяются
type JWTConfig struct {
	Secret string // Секретный ключ для проверки подписи токенов
}

// WorkerConfig - настройки фонового обхода остатков
type WorkerConfig struct {
	LowStockSchedule  string  // Cron-расписание проверки остатков
	LowStockThreshold float64 // Порог остатка (кг), ниже которого сладость считается заканчивающейся
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	lowStockThreshold, err := strconv.ParseFloat(getEnv("LOW_STOCK_THRESHOLD", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_THRESHOLD value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "sweetshop"),
			Password: getEnv("DB_PASSWORD", "sweetshop"),
			DBName:   getEnv("DB_NAME", "sweetshop"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "inventory_events"),
		},
		JWT: JWTConfig{
			// Секрет должен совпадать с auth-сервисом, выдающим токены
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Worker: WorkerConfig{
			LowStockSchedule:  getEnv("LOW_STOCK_SCHEDULE", "@every 15m"),
			LowStockThreshold: lowStockThreshold,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
