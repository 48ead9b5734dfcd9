package main

import (
	"fmt"
	"os"
	"strconv"

	"commerce/cmd"
	"commerce/internal/adapters/in/http"
	"commerce/internal/adapters/out/postgres/buyerrepo"
	"commerce/internal/adapters/out/postgres/catalogrepo"
	"commerce/internal/adapters/out/postgres/fulfillmentrepo"
	"commerce/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPendingOrderTTLMinutes = 30

func main() {
	configs := getConfigs()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		NotifyWebhookURL:       os.Getenv("NOTIFY_WEBHOOK_URL"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic:  os.Getenv("KAFKA_ORDER_EVENTS_TOPIC"),
		PendingOrderTTLMinutes: intEnv("PENDING_ORDER_TTL_MINUTES", defaultPendingOrderTTLMinutes),
	}
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("Invalid %s value %q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&catalogrepo.CourseDTO{},
		&catalogrepo.EventDTO{},
		&catalogrepo.DigitalGoodDTO{},
		&fulfillmentrepo.EnrollmentDTO{},
		&fulfillmentrepo.BookingDTO{},
		&fulfillmentrepo.DownloadGrantDTO{},
		&buyerrepo.BuyerDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := http.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAttachPaymentCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateFulfillOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateRefundOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateOrderStatsQueryHandler(),
		app.CreateSearchOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
