package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Domenick1991/rente/config"
	"github.com/Domenick1991/rente/internal/bootstrap"
	"github.com/Domenick1991/rente/internal/cache"
	"github.com/Domenick1991/rente/internal/kafka"
	"github.com/Domenick1991/rente/internal/repository"
	"github.com/Domenick1991/rente/internal/service/bookings"
	"github.com/Domenick1991/rente/internal/service/history"
	"github.com/Domenick1991/rente/internal/service/listings"
	"github.com/Domenick1991/rente/internal/service/reviews"
	"github.com/Domenick1991/rente/internal/service/users"
	"github.com/Domenick1991/rente/internal/token"
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

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Listing.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := token.NewManager(
		cfg.Auth.Secret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLMinutes)*time.Minute,
		redisCache,
	)

	userRepo := repository.NewUserRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)

	services := bootstrap.Services{
		Users:    users.NewUserService(userRepo, tokens, users.MinLengthPolicy{Min: cfg.Password.MinLength}),
		Listings: listings.NewListingService(listingRepo, historyRepo, redisCache, logger),
		Bookings: bookings.NewBookingService(
			bookingRepo,
			listingRepo,
			producer,
			cfg.Kafka.BookingTopic,
			cfg.Booking.CancellationWindowDays,
			logger,
			bookings.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		Reviews: reviews.NewReviewService(reviewRepo, listingRepo),
		History: history.NewHistoryService(historyRepo),
		Tokens:  tokens,
	}

	if err := bootstrap.Run(ctx, cfg, services, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
