package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-pricing-service/internal/config"
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/cache"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/exchange"
	publisher "github.com/LavaJover/shvark-pricing-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config         *config.PricingConfig
	DB             *gorm.DB
	Logger         *slog.Logger
	Metrics        *metrics.PricingMetrics
	CacheStore     domain.CacheStore
	MemoryStore    *cache.MemoryStore
	Redis          *redis.Client
	QuotePublisher domain.QuotePublisher
	KafkaPublisher *publisher.DefaultKafkaPublisher
	Subscriber     *publisher.DefaultKafkaSubscriber
	Converter      domain.CurrencyConverter
	Repositories   *Repositories
}

type Repositories struct {
	HotelRepo     domain.HotelRepository
	RoomTypeRepo  domain.RoomTypeRepository
	MealPlanRepo  domain.MealPlanRepository
	MarketRepo    domain.MarketRepository
	SeasonRepo    domain.SeasonRepository
	RateRepo      *repository.DefaultRateRepository
	CampaignRepo  domain.CampaignRepository
	AllotmentRepo domain.AllotmentReserver
}

func NewRepositories(db *gorm.DB) *Repositories {
	rateRepo := repository.NewDefaultRateRepository(db)
	return &Repositories{
		HotelRepo:     repository.NewDefaultHotelRepository(db),
		RoomTypeRepo:  repository.NewDefaultRoomTypeRepository(db),
		MealPlanRepo:  repository.NewDefaultMealPlanRepository(db),
		MarketRepo:    repository.NewDefaultMarketRepository(db),
		SeasonRepo:    repository.NewDefaultSeasonRepository(db),
		RateRepo:      rateRepo,
		CampaignRepo:  repository.NewDefaultCampaignRepository(db),
		AllotmentRepo: rateRepo,
	}
}

func InitializeDependencies(ctx context.Context, cfg *config.PricingConfig, log *slog.Logger, reg prometheus.Registerer) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.PricingDB.AutoMigrate {
		if err := db.AutoMigrate(&logger.QuoteLogEntry{}); err != nil {
			return nil, fmt.Errorf("auto-migrate quote log: %w", err)
		}
	} else if err := migrate.RunMigrations(db, cfg.PricingDB.MigrationsPath); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	deps := &Dependencies{
		Config:       cfg,
		DB:           db,
		Logger:       log,
		Metrics:      metrics.NewPricingMetrics(reg),
		Repositories: NewRepositories(db),
	}

	if err := initCacheStore(ctx, deps); err != nil {
		return nil, err
	}

	converter, err := exchange.NewStaticConverter(cfg.Exchange.Base, cfg.Exchange.Rates)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: %w", err)
	}
	deps.Converter = converter

	quoteSinks := logger.MultiQuotePublisher{logger.NewPGQuoteLogger(db)}
	if cfg.KafkaService.Enabled {
		brokers := []string{cfg.KafkaService.Broker()}
		deps.KafkaPublisher = publisher.NewDefaultKafkaPublisher(brokers, cfg.KafkaService.QuoteTopic)
		deps.Subscriber = publisher.NewDefaultKafkaSubscriber(brokers)
		quoteSinks = append(quoteSinks, publisher.NewQuotePublisher(deps.KafkaPublisher))
	}
	deps.QuotePublisher = quoteSinks

	return deps, nil
}

func initCacheStore(ctx context.Context, deps *Dependencies) error {
	cfg := deps.Config
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		deps.Redis = rdb
		deps.CacheStore = cache.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
		deps.Logger.Info("price cache backed by redis", "key_prefix", cfg.Redis.KeyPrefix)
		return nil
	}
	deps.MemoryStore = cache.NewMemoryStore()
	deps.CacheStore = deps.MemoryStore
	deps.Logger.Info("price cache kept in process")
	return nil
}

// Close releases external connections in reverse order of creation.
func (d *Dependencies) Close() {
	if d.KafkaPublisher != nil {
		if err := d.KafkaPublisher.Close(); err != nil {
			d.Logger.Error("close kafka publisher", "error", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("close redis", "error", err)
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
