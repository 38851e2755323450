package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMarketRepository struct {
	DB *gorm.DB
}

func NewDefaultMarketRepository(db *gorm.DB) *DefaultMarketRepository {
	return &DefaultMarketRepository{DB: db}
}

func (r *DefaultMarketRepository) GetMarketByID(ctx context.Context, marketID string) (*domain.Market, error) {
	model, err := findByID[models.MarketModel](ctx, r.DB, domain.EntityMarket, marketID)
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainMarket(model), nil
}

type DefaultSeasonRepository struct {
	DB *gorm.DB
}

func NewDefaultSeasonRepository(db *gorm.DB) *DefaultSeasonRepository {
	return &DefaultSeasonRepository{DB: db}
}

func (r *DefaultSeasonRepository) FindSeasons(ctx context.Context, hotelID, marketID string, from, to time.Time) ([]*domain.Season, error) {
	var seasonModels []models.SeasonModel
	err := r.DB.WithContext(ctx).
		Where("hotel_id = ? AND market_id = ?", hotelID, marketID).
		Where("start_date <= ? AND end_date >= ?", domain.DateOnly(to), domain.DateOnly(from)).
		Order("priority DESC, start_date").
		Find(&seasonModels).Error
	if err != nil {
		return nil, fmt.Errorf("find seasons for market %s: %w", marketID, err)
	}

	seasons := make([]*domain.Season, len(seasonModels))
	for i := range seasonModels {
		seasons[i] = mappers.ToDomainSeason(&seasonModels[i])
	}
	return seasons, nil
}
