package pricingdto

import (
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

type PriceQuery struct {
	HotelID         string              `validate:"required"`
	RoomTypeID      string              `validate:"required"`
	MealPlanID      string              `validate:"required"`
	MarketID        string              `validate:"required"`
	CheckIn         time.Time           `validate:"required"`
	CheckOut        time.Time           `validate:"required"`
	Channel         domain.SalesChannel `validate:"omitempty,oneof=B2C B2B"`
	RateType        domain.RateType     `validate:"omitempty,oneof=refundable non_refundable"`
	RequiredRooms   int                 `validate:"gte=0"`
	DisplayCurrency string              `validate:"omitempty,len=3"`
	Occupancy       domain.Occupancy
	BookingDate     time.Time // defaults to today
	SkipCache       bool
}

type RoomRequest struct {
	RoomTypeID string          `validate:"required"`
	MealPlanID string          `validate:"required"`
	RateType   domain.RateType `validate:"omitempty,oneof=refundable non_refundable"`
	Occupancy  domain.Occupancy
}

type MultiRoomInput struct {
	HotelID         string              `validate:"required"`
	MarketID        string              `validate:"required"`
	CheckIn         time.Time           `validate:"required"`
	CheckOut        time.Time           `validate:"required"`
	Channel         domain.SalesChannel `validate:"omitempty,oneof=B2C B2B"`
	Rooms           []RoomRequest       `validate:"required,min=1,dive"`
	DisplayCurrency string              `validate:"omitempty,len=3"`
	BookingDate     time.Time
	ThrowOnError    bool
}

type TierInput struct {
	BasePrice  float64 `validate:"gte=0"`
	Commercial domain.CommercialSettings
}
