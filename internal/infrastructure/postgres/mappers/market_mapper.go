package mappers

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
)

func ToDomainMarket(model *models.MarketModel) *domain.Market {
	return &domain.Market{
		ID:                model.ID,
		HotelID:           model.HotelID,
		Code:              model.Code,
		Name:              model.Name,
		Commercial:        model.Commercial,
		ChildAgeGroups:    model.ChildAgeGroups,
		RoomTypeOverrides: model.RoomTypeOverrides,
		Active:            model.Active,
	}
}

func ToGORMMarket(market *domain.Market) *models.MarketModel {
	return &models.MarketModel{
		ID:                market.ID,
		HotelID:           market.HotelID,
		Code:              market.Code,
		Name:              market.Name,
		Commercial:        market.Commercial,
		ChildAgeGroups:    market.ChildAgeGroups,
		RoomTypeOverrides: market.RoomTypeOverrides,
		Active:            market.Active,
	}
}

func ToDomainSeason(model *models.SeasonModel) *domain.Season {
	return &domain.Season{
		ID:                    model.ID,
		HotelID:               model.HotelID,
		MarketID:              model.MarketID,
		Code:                  model.Code,
		Name:                  model.Name,
		StartDate:             domain.DateOnly(model.StartDate),
		EndDate:               domain.DateOnly(model.EndDate),
		InheritPricing:        model.InheritPricing,
		RoomTypeOverrides:     model.RoomTypeOverrides,
		InheritCommercial:     model.InheritCommercial,
		Commercial:            model.Commercial,
		InheritChildAgeGroups: model.InheritChildAgeGroups,
		ChildAgeGroups:        model.ChildAgeGroups,
		Priority:              model.Priority,
	}
}

func ToGORMSeason(season *domain.Season) *models.SeasonModel {
	return &models.SeasonModel{
		ID:                    season.ID,
		HotelID:               season.HotelID,
		MarketID:              season.MarketID,
		Code:                  season.Code,
		Name:                  season.Name,
		StartDate:             domain.DateOnly(season.StartDate),
		EndDate:               domain.DateOnly(season.EndDate),
		Priority:              season.Priority,
		InheritPricing:        season.InheritPricing,
		RoomTypeOverrides:     season.RoomTypeOverrides,
		InheritCommercial:     season.InheritCommercial,
		Commercial:            season.Commercial,
		InheritChildAgeGroups: season.InheritChildAgeGroups,
		ChildAgeGroups:        season.ChildAgeGroups,
	}
}
