package mappers

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
)

func ToDomainHotel(model *models.HotelModel) *domain.Hotel {
	return &domain.Hotel{
		ID:        model.ID,
		PartnerID: model.PartnerID,
		AgencyID:  model.AgencyID,
		Code:      model.Code,
		Name:      model.Name,
		Currency:  model.Currency,
		Active:    model.Active,
	}
}

func ToGORMHotel(hotel *domain.Hotel) *models.HotelModel {
	return &models.HotelModel{
		ID:        hotel.ID,
		PartnerID: hotel.PartnerID,
		AgencyID:  hotel.AgencyID,
		Code:      hotel.Code,
		Name:      hotel.Name,
		Currency:  hotel.Currency,
		Active:    hotel.Active,
	}
}

func ToDomainMealPlan(model *models.MealPlanModel) *domain.MealPlan {
	return &domain.MealPlan{
		ID:      model.ID,
		HotelID: model.HotelID,
		Code:    model.Code,
		Name:    model.Name,
	}
}

func ToGORMMealPlan(mealPlan *domain.MealPlan) *models.MealPlanModel {
	return &models.MealPlanModel{
		ID:      mealPlan.ID,
		HotelID: mealPlan.HotelID,
		Code:    mealPlan.Code,
		Name:    mealPlan.Name,
	}
}

func ToDomainRoomType(model *models.RoomTypeModel) *domain.RoomType {
	return &domain.RoomType{
		ID:                 model.ID,
		HotelID:            model.HotelID,
		Code:               model.Code,
		Name:               model.Name,
		PricingModel:       domain.PricingModel(model.PricingModel),
		BaseOccupancy:      model.BaseOccupancy,
		MaxOccupancy:       model.MaxOccupancy,
		MaxAdults:          model.MaxAdults,
		MaxChildren:        model.MaxChildren,
		MinAdults:          model.MinAdults,
		MultiplierTemplate: model.MultiplierTemplate,
		Active:             model.Active,
	}
}

func ToGORMRoomType(rt *domain.RoomType) *models.RoomTypeModel {
	return &models.RoomTypeModel{
		ID:                 rt.ID,
		HotelID:            rt.HotelID,
		Code:               rt.Code,
		Name:               rt.Name,
		PricingModel:       string(rt.PricingModel),
		BaseOccupancy:      rt.BaseOccupancy,
		MaxOccupancy:       rt.MaxOccupancy,
		MaxAdults:          rt.MaxAdults,
		MaxChildren:        rt.MaxChildren,
		MinAdults:          rt.MinAdults,
		MultiplierTemplate: rt.MultiplierTemplate,
		Active:             rt.Active,
	}
}
