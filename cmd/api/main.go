package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/application"
	mongoRepo "github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/infrastructure/mongodb"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/infrastructure/xero"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/metrics"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/middleware"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/mongodb"
)

const serviceName = "backoffice-api"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting backoffice API")

	config := loadConfig()
	ctx := context.Background()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)

	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	producer := kafka.NewProducer(config.Kafka)
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	db := mongoClient.Database()
	orders := mongoRepo.NewOrderRepository(db)
	archivedOrders := mongoRepo.NewArchivedOrderRepository(db)
	stock := mongoRepo.NewStockRepository(db)
	movements := mongoRepo.NewMovementRepository(db)
	timesheets := mongoRepo.NewTimesheetRepository(db)
	payroll := mongoRepo.NewPayrollRepository(db)
	employees := mongoRepo.NewEmployeeRepository(db)
	leaveRequests := mongoRepo.NewLeaveRepository(db)
	leaveAdjustments := mongoRepo.NewLeaveAdjustmentRepository(db)
	clients := mongoRepo.NewClientRepository(db)
	products := mongoRepo.NewProductRepository(db)
	invoices := mongoRepo.NewInvoiceRepository(db)

	xeroClient := xero.NewClient(config.Xero, logger)

	catalogService := application.NewCatalogService(clients, products, logger)
	orderService := application.NewOrderService(orders, archivedOrders, stock, movements, clients, products,
		mongoClient, producer, kafka.Topics.OrderEvents, m, logger)
	stockService := application.NewStockService(stock, movements, orders, products,
		mongoClient, producer, kafka.Topics.StockEvents, m, logger)
	payrollService := application.NewPayrollService(timesheets, payroll, employees,
		mongoClient, producer, kafka.Topics.PayrollEvents, m, logger)
	leaveService := application.NewLeaveService(leaveRequests, leaveAdjustments, employees,
		mongoClient, producer, kafka.Topics.PayrollEvents, m, logger)
	invoiceService := application.NewInvoiceService(invoices, orders, xeroClient,
		producer, kafka.Topics.OrderEvents, m, logger)

	router := gin.New()
	middleware.Setup(router, middleware.DefaultConfig(serviceName, logger.Logger))
	router.Use(middleware.MetricsMiddleware(m))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Identity())

	registerCatalogRoutes(apiV1, catalogService, logger)
	registerOrderRoutes(apiV1, orderService, logger)
	registerStockRoutes(apiV1, stockService, logger)
	registerPayrollRoutes(apiV1, payrollService, logger)
	registerLeaveRoutes(apiV1, leaveService, logger)
	registerInvoiceRoutes(apiV1, invoiceService, logger)

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
	Xero       *xero.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "backoffice"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
			ReplicaSet:     getEnv("MONGODB_REPLICA_SET", ""),
		},
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     serviceName,
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
		Xero: &xero.Config{
			BaseURL:     getEnv("XERO_BASE_URL", "https://api.xero.com/api.xro/2.0"),
			TenantID:    getEnv("XERO_TENANT_ID", ""),
			AccessToken: getEnv("XERO_ACCESS_TOKEN", ""),
			Timeout:     30 * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
