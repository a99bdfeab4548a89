package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sweetshop/internal/app/inventory/config"
	"sweetshop/internal/app/inventory/entity"
	"sweetshop/internal/app/inventory/handler"
	"sweetshop/internal/app/inventory/processor"
	"sweetshop/internal/app/inventory/repository"
	"sweetshop/internal/app/inventory/service"
	"sweetshop/internal/app/inventory/util"
	"sweetshop/pkg/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		logger.Init("inventory-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init("inventory-service", cfg.LogLevel)

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL ===
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().Msg("Successfully connected to PostgreSQL")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis используется для кеширования списка сладостей
	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// Producer отправляет события инвентаря в топик inventory_events
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Msg("Successfully initialized Kafka producer")

	// === ИНИЦИАЛИЗАЦИЯ СЛОЯ РЕПОЗИТОРИЕВ ===
	sweetRepo := repository.NewSweetRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	inventoryService := service.NewInventoryService(
		sweetRepo,
		purchaseRepo,
		redisClient,
		kafkaProducer,
	)
	reportService := service.NewReportService(purchaseRepo)

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService)
	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)

	// === НАСТРОЙКА МАРШРУТОВ ===
	router := handler.SetupRoutes(inventoryHandler, reportHandler, authMiddleware)

	// === ФОНОВЫЙ ОБХОД ОСТАТКОВ ===
	lowStockScheduler := processor.NewLowStockScheduler(
		inventoryService,
		kafkaProducer,
		cfg.Worker.LowStockThreshold,
	)
	if err := lowStockScheduler.Start(context.Background(), cfg.Worker.LowStockSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start low stock scheduler")
	}
	defer lowStockScheduler.Stop()

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	// Production-ready настройки с таймаутами
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting Inventory Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Inventory Service...")

	// Даем серверу 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Inventory Service stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL через GORM
// Использует retry logic для устойчивости при запуске в Docker
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= 10; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Warn().Err(err).Int("attempt", attempt).Msg("Database not ready, retrying")
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Настройки пула соединений для production
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Миграция создаёт таблицы и unique constraint на sweets.name -
	// уникальность имени держится на уровне БД
	if err := db.AutoMigrate(&entity.Sweet{}, &entity.Purchase{}); err != nil {
		return nil, err
	}

	return db, nil
}
