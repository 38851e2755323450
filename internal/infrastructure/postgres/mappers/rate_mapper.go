package mappers

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
)

func ToDomainDailyRate(model *models.DailyRateModel) *domain.DailyRate {
	return &domain.DailyRate{
		ID:                    model.ID,
		HotelID:               model.HotelID,
		RoomTypeID:            model.RoomTypeID,
		MealPlanID:            model.MealPlanID,
		MarketID:              model.MarketID,
		Date:                  domain.DateOnly(model.Date),
		Currency:              model.Currency,
		UnitPrice:             model.UnitPrice,
		SingleSupplement:      model.SingleSupplement,
		ExtraAdult:            model.ExtraAdult,
		ExtraChild:            model.ExtraChild,
		ExtraInfant:           model.ExtraInfant,
		ChildOrderPricing:     model.ChildOrderPricing,
		ChildAgePricing:       model.ChildAgePricing,
		OccupancyPricing:      model.OccupancyPricing,
		Allotment:             model.Allotment,
		Sold:                  model.Sold,
		MinStay:               model.MinStay,
		MaxStay:               model.MaxStay,
		ReleaseDays:           model.ReleaseDays,
		ClosedToArrival:       model.ClosedToArrival,
		ClosedToDeparture:     model.ClosedToDeparture,
		SingleStop:            model.SingleStop,
		StopSale:              model.StopSale,
		UseMultiplierOverride: model.UseMultiplierOverride,
		MultiplierOverride:    model.MultiplierOverride,
	}
}

func ToGORMDailyRate(rate *domain.DailyRate) *models.DailyRateModel {
	return &models.DailyRateModel{
		ID:                    rate.ID,
		HotelID:               rate.HotelID,
		RoomTypeID:            rate.RoomTypeID,
		MealPlanID:            rate.MealPlanID,
		MarketID:              rate.MarketID,
		Date:                  domain.DateOnly(rate.Date),
		Currency:              rate.Currency,
		UnitPrice:             rate.UnitPrice,
		SingleSupplement:      rate.SingleSupplement,
		ExtraAdult:            rate.ExtraAdult,
		ExtraChild:            rate.ExtraChild,
		ExtraInfant:           rate.ExtraInfant,
		ChildOrderPricing:     rate.ChildOrderPricing,
		ChildAgePricing:       rate.ChildAgePricing,
		OccupancyPricing:      rate.OccupancyPricing,
		Allotment:             rate.Allotment,
		Sold:                  rate.Sold,
		MinStay:               rate.MinStay,
		MaxStay:               rate.MaxStay,
		ReleaseDays:           rate.ReleaseDays,
		ClosedToArrival:       rate.ClosedToArrival,
		ClosedToDeparture:     rate.ClosedToDeparture,
		SingleStop:            rate.SingleStop,
		StopSale:              rate.StopSale,
		UseMultiplierOverride: rate.UseMultiplierOverride,
		MultiplierOverride:    rate.MultiplierOverride,
	}
}
