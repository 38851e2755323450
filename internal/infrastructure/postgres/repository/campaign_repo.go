package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCampaignRepository struct {
	DB *gorm.DB
}

func NewDefaultCampaignRepository(db *gorm.DB) *DefaultCampaignRepository {
	return &DefaultCampaignRepository{DB: db}
}

func (r *DefaultCampaignRepository) FindActiveCampaigns(ctx context.Context, hotelID string) ([]*domain.Campaign, error) {
	var campaignModels []models.CampaignModel
	err := r.DB.WithContext(ctx).
		Where("hotel_id = ? AND active = ?", hotelID, true).
		Order("priority DESC, code").
		Find(&campaignModels).Error
	if err != nil {
		return nil, fmt.Errorf("find campaigns for hotel %s: %w", hotelID, err)
	}

	campaigns := make([]*domain.Campaign, len(campaignModels))
	for i := range campaignModels {
		campaigns[i] = mappers.ToDomainCampaign(&campaignModels[i])
	}
	return campaigns, nil
}
