package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/agentbooking/api"
	"github.com/Domenick1991/agentbooking/config"
	"github.com/Domenick1991/agentbooking/internal/bootstrap"
	"github.com/Domenick1991/agentbooking/internal/cache"
	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/Domenick1991/agentbooking/internal/flow"
	"github.com/Domenick1991/agentbooking/internal/kafka"
	"github.com/Domenick1991/agentbooking/internal/logger"
	"github.com/Domenick1991/agentbooking/internal/metrics"
	"github.com/Domenick1991/agentbooking/internal/payment"
	"github.com/Domenick1991/agentbooking/internal/repository"
	"github.com/Domenick1991/agentbooking/internal/service/booking"
	"github.com/Domenick1991/agentbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	if cfg.Log.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		lg.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		lg.Fatal("apply migrations", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.AgentCacheTTL())
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
	defer producer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	var cardProcessor payment.Processor = payment.NewMockProcessor()
	if cfg.Payment.Provider == "stripe" {
		cardProcessor = payment.NewStripeProcessor(cfg.Payment.StripeKey, cfg.Payment.Currency)
	}
	payments := payment.NewMethodRouter(map[domain.PaymentMethod]payment.Processor{
		domain.PaymentMethodCard:   cardProcessor,
		domain.PaymentMethodMobile: payment.NewMockProcessor(),
	})

	catalogService := catalog.NewCatalogService(repository.NewAgentRepository(pool), redisCache, lg)
	bookingService := booking.NewBookingService(
		redisCache,
		catalogService,
		repository.NewBookingRepository(pool),
		repository.NewReviewRepository(pool),
		payments,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithPricing(flow.Pricing{
			DurationLabel: cfg.Booking.DurationLabel,
			Tax:           cfg.Booking.Tax,
			TravelFee:     cfg.Booking.TravelFee,
		}),
		booking.WithBookingIDPrefix(cfg.Booking.BookingIDPrefix),
		booking.WithCurrency(cfg.Payment.Currency),
		booking.WithSessionTTL(cfg.Booking.SessionTTL()),
		booking.WithLogger(lg),
		booking.WithMetrics(recorder),
	)

	router := api.NewRouter(api.RouterConfig{
		Catalog:     catalogService,
		Bookings:    bookingService,
		Limiter:     api.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, lg),
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Gatherer:    registry,
		Checks: map[string]api.HealthCheck{
			"postgres": pool.Ping,
			"redis":    redisCache.Ping,
			"kafka":    producer.CheckConnection,
		},
		Logger: lg,
	})

	if err := bootstrap.Run(ctx, cfg.HTTP, router, lg); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}
