package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/3dstuff/backend/internal/admin"
	"github.com/3dstuff/backend/internal/catalog"
	"github.com/3dstuff/backend/internal/config"
	"github.com/3dstuff/backend/internal/contact"
	"github.com/3dstuff/backend/internal/inventory"
	"github.com/3dstuff/backend/internal/mail"
	"github.com/3dstuff/backend/internal/middleware"
	"github.com/3dstuff/backend/internal/payment"
	"github.com/3dstuff/backend/internal/webhook"
	"github.com/3dstuff/backend/internal/worker"
)

func main() {
	cfg := config.Load()

	tp, err := initTracer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := initMetrics(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	mongoClient, mongoDB, err := initMongo(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	dbPool, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()
	if err := payment.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatalf("Failed to ensure payments schema: %v", err)
	}
	if err := webhook.EnsureSchema(ctx, dbPool); err != nil {
		log.Fatalf("Failed to ensure webhooks schema: %v", err)
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueue)
	tracer := tp.Tracer(cfg.ServiceName)

	// Camadas de infraestrutura
	catalogRepo := catalog.NewMongoRepository(mongoDB)
	contactRepo := contact.NewMongoRepository(mongoDB)
	inventoryRepo := inventory.NewMongoRepository(mongoDB)
	paymentRepo := payment.NewPostgresRepository(dbPool)
	webhookRepo := webhook.NewPostgresRepository(dbPool)
	gateway := payment.NewGateway(cfg.MercadoPagoBaseURL, cfg.MercadoPagoAccessToken)
	mailer := mail.NewSender(cfg.SendGridAPIKey, cfg.SenderEmail)

	// Casos de uso
	ledger := inventory.NewLedger(inventoryRepo)
	paymentUseCase := payment.NewUseCase(gateway, paymentRepo)
	contactUseCase := contact.NewUseCase(contactRepo, mailer, pool)
	reconciler := webhook.NewReconciler(webhookRepo, gateway, paymentRepo, ledger, mailer)

	// Handlers HTTP
	catalogHandler := catalog.NewHandler(catalogRepo, tracer)
	contactHandler := contact.NewHandler(contactUseCase, tracer)
	paymentHandler := payment.NewHandler(paymentUseCase, tracer)
	webhookHandler := webhook.NewHandler(webhookRepo, reconciler, pool, tracer)
	inventoryHandler := inventory.NewHandler(ledger, catalogRepo, tracer)
	adminHandler := admin.NewHandler(paymentUseCase, ledger, webhookRepo, mailer, tracer)

	gin.SetMode(cfg.Mode)
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": cfg.ServiceName})
	})

	api := r.Group("/api")
	catalogHandler.RegisterRoutes(api)
	contactHandler.RegisterRoutes(api)
	paymentHandler.RegisterRoutes(api)
	webhookHandler.RegisterRoutes(api)

	adminGroup := r.Group("/api/admin")
	inventoryHandler.RegisterRoutes(adminGroup)
	adminHandler.RegisterRoutes(adminGroup)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.Printf("🚀 3D Stuff API listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("ℹ️ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	// Espera as tarefas em background (webhooks, emails) terminarem
	pool.Stop()
	log.Println("✅ Server stopped")
}

func initMongo(cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("✅ Connected to MongoDB")
	return client, client.Database(cfg.MongoDatabase), nil
}

func initDB(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Wait for database to be ready
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			log.Println("✅ Connected to payments database with connection pool")
			return pool, nil
		}
		log.Printf("⏳ Waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}

	pool.Close()
	return nil, fmt.Errorf("failed to connect to database after 30 attempts")
}

func initTracer(cfg *config.Config) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics(cfg *config.Config) (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}
