package grpcapi

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
)

// Dates on the wire are calendar days formatted as 2006-01-02.

type ChildMessage struct {
	Age      int    `json:"age"`
	AgeGroup string `json:"age_group,omitempty"`
}

type OccupancyMessage struct {
	Adults   int            `json:"adults"`
	Children []ChildMessage `json:"children,omitempty"`
}

type CalculatePriceRequest struct {
	HotelID         string           `json:"hotel_id"`
	RoomTypeID      string           `json:"room_type_id"`
	MealPlanID      string           `json:"meal_plan_id"`
	MarketID        string           `json:"market_id"`
	CheckIn         string           `json:"check_in"`
	CheckOut        string           `json:"check_out"`
	Occupancy       OccupancyMessage `json:"occupancy"`
	Channel         string           `json:"channel,omitempty"`
	RateType        string           `json:"rate_type,omitempty"`
	BookingDate     string           `json:"booking_date,omitempty"`
	RequiredRooms   int              `json:"required_rooms,omitempty"`
	DisplayCurrency string           `json:"display_currency,omitempty"`
	SkipCache       bool             `json:"skip_cache,omitempty"`
}

type CalculatePriceResponse struct {
	Result *domain.PriceResult `json:"result"`
}

type RoomMessage struct {
	RoomTypeID string           `json:"room_type_id"`
	MealPlanID string           `json:"meal_plan_id"`
	Occupancy  OccupancyMessage `json:"occupancy"`
	RateType   string           `json:"rate_type,omitempty"`
}

type CalculateMultiRoomPriceRequest struct {
	HotelID         string        `json:"hotel_id"`
	MarketID        string        `json:"market_id"`
	CheckIn         string        `json:"check_in"`
	CheckOut        string        `json:"check_out"`
	Channel         string        `json:"channel,omitempty"`
	Rooms           []RoomMessage `json:"rooms"`
	BookingDate     string        `json:"booking_date,omitempty"`
	DisplayCurrency string        `json:"display_currency,omitempty"`
	ThrowOnError    bool          `json:"throw_on_error,omitempty"`
}

type CalculateMultiRoomPriceResponse struct {
	Booking *pricingdto.MultiRoomOutput `json:"booking"`
}

type CalculateTierPricingRequest struct {
	BasePrice  float64                   `json:"base_price"`
	Commercial domain.CommercialSettings `json:"commercial"`
}

type CalculateTierPricingResponse struct {
	Tiers domain.TierPrices `json:"tiers"`
}

type InvalidateCacheRequest struct {
	Entity     string `json:"entity"`
	HotelID    string `json:"hotel_id"`
	RoomTypeID string `json:"room_type_id,omitempty"`
	MarketID   string `json:"market_id,omitempty"`
}

type InvalidateCacheResponse struct {
	Removed int `json:"removed"`
}
