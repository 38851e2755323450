package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-pricing-service/internal/usecase/pricing"
)

type UseCases struct {
	PriceCache     *pricing.PriceCache
	PricingUsecase *pricing.DefaultPricingUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config
	priceCache := pricing.NewPriceCache(deps.CacheStore, pricing.CacheTTLs{
		Price:    cfg.Cache.PriceTTL,
		Campaign: cfg.Cache.CampaignTTL,
	}, deps.Metrics, deps.Logger)

	repos := deps.Repositories
	pricingUsecase, err := pricing.NewDefaultPricingUsecase(
		pricing.Repositories{
			Hotels:    repos.HotelRepo,
			RoomTypes: repos.RoomTypeRepo,
			MealPlans: repos.MealPlanRepo,
			Markets:   repos.MarketRepo,
			Seasons:   repos.SeasonRepo,
			Rates:     repos.RateRepo,
			Campaigns: repos.CampaignRepo,
		},
		priceCache,
		deps.Metrics,
		deps.QuotePublisher,
		deps.Converter,
		deps.Logger,
		pricing.Options{
			ConsistencyTolerance: cfg.Pricing.ConsistencyTolerance,
			MaxRooms:             cfg.Pricing.MaxRooms,
			DefaultCurrency:      cfg.Pricing.DefaultCurrency,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("pricing usecase: %w", err)
	}

	return &UseCases{
		PriceCache:     priceCache,
		PricingUsecase: pricingUsecase,
	}, nil
}
