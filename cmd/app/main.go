package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"parceltrack/cmd"
	httpin "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/adapters/out/postgres/auditrepo"
	"parceltrack/internal/adapters/out/postgres/manifestrepo"
	"parceltrack/internal/adapters/out/postgres/shipmentrepo"
	"parceltrack/internal/adapters/out/rabbitmq"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/jobs"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	inspector, err := services.NewSLAInspector(services.SLAConfig{
		PickupSLA:    time.Duration(configs.SLAPickupHours) * time.Hour,
		DeliverySLA:  time.Duration(configs.SLADeliveryHours) * time.Hour,
		InTransitSLA: time.Duration(configs.SLAInTransitHours) * time.Hour,
	})
	if err != nil {
		log.Fatalf("Invalid SLA configuration: %v", err)
	}

	amqpClient, err := rabbitmq.NewClient(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitmq: %v", err)
	}
	defer amqpClient.Close()

	eventPublisher := kafka.NewStatusEventPublisher(configs.KafkaHost, configs.KafkaStatusEventsTopic)
	defer eventPublisher.Close()

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		auditrepo.NewGormAuditSink(gormDB),
		rabbitmq.NewViolationQueue(amqpClient),
		eventPublisher,
		inspector,
		logger,
	)

	consumerCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()
	startViolationConsumers(consumerCtx, amqpClient, &app, logger)

	jobManager := jobs.NewJobManager(
		app.CreateDetectViolationsCommandHandler(),
		configs.SLASweepIntervalSeconds,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:                 goDotEnvVariable("AMQP_URL"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaStatusEventsTopic:  goDotEnvVariable("KAFKA_STATUS_EVENTS_TOPIC"),
		SLAPickupHours:          goDotEnvIntVariable("SLA_PICKUP_HOURS"),
		SLADeliveryHours:        goDotEnvIntVariable("SLA_DELIVERY_HOURS"),
		SLAInTransitHours:       goDotEnvIntVariable("SLA_INTRANSIT_HOURS"),
		SLASweepIntervalSeconds: goDotEnvIntVariable("SLA_SWEEP_INTERVAL_SECONDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// goDotEnvIntVariable reads a positive integer setting. Anything else is fatal:
// SLA thresholds have no sensible default to silently fall back to.
func goDotEnvIntVariable(key string) int {
	raw := goDotEnvVariable(key)
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Setting %s must be an integer, got %q", key, raw)
	}
	if value <= 0 {
		log.Fatalf("Setting %s must be positive, got %d", key, value)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&manifestrepo.ManifestDTO{},
		&manifestrepo.ManifestAWBDTO{},
		&manifestrepo.SortDecisionDTO{},
		&auditrepo.AuditRecordDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// startViolationConsumers launches one escalation worker per violation type.
func startViolationConsumers(
	ctx context.Context,
	amqpClient *rabbitmq.Client,
	app *cmd.CompositionRoot,
	logger *slog.Logger,
) {
	handler := app.CreateRecordViolationCommandHandler()
	for _, violationType := range services.AllViolationTypes() {
		consumer, err := rabbitmq.NewViolationConsumer(amqpClient, violationType, handler, logger)
		if err != nil {
			log.Fatalf("Failed to create violation consumer for %s: %v", violationType, err)
		}
		go func() {
			if runErr := consumer.Run(ctx); runErr != nil && ctx.Err() == nil {
				logger.Error("violation consumer exited", "error", runErr)
			}
		}()
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateBookShipmentCommandHandler(),
		app.CreateTransitionShipmentCommandHandler(),
		app.CreateCreateManifestCommandHandler(),
		app.CreateOutboundScanCommandHandler(),
		app.CreateReceiveManifestCommandHandler(),
		app.CreateSortShipmentsCommandHandler(),
		app.CreateGetOverdueShipmentsQueryHandler(),
		app.CreateGetManifestQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			e.Logger.Info("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
