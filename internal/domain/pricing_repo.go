package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	GetHotelByID(ctx context.Context, hotelID string) (*Hotel, error)
}

type RoomTypeRepository interface {
	GetRoomTypeByID(ctx context.Context, roomTypeID string) (*RoomType, error)
}

type MealPlanRepository interface {
	GetMealPlanByID(ctx context.Context, mealPlanID string) (*MealPlan, error)
}

type MarketRepository interface {
	GetMarketByID(ctx context.Context, marketID string) (*Market, error)
}

type SeasonRepository interface {
	// FindSeasons returns the market's seasons overlapping [from, to].
	FindSeasons(ctx context.Context, hotelID, marketID string, from, to time.Time) ([]*Season, error)
}

type RateRepository interface {
	// FindRates returns the rates of one combination for every date in the
	// query range that has one, ordered by date.
	FindRates(ctx context.Context, query RateQuery) ([]*DailyRate, error)
}

type CampaignRepository interface {
	FindActiveCampaigns(ctx context.Context, hotelID string) ([]*Campaign, error)
}

// AllotmentReserver mutates sold counts. The booking persistence layer calls
// it; the pricing engine only reads allotment.
type AllotmentReserver interface {
	ReserveAllotment(ctx context.Context, key RateKey, from, to time.Time, rooms int) error
	ReleaseAllotment(ctx context.Context, key RateKey, from, to time.Time, rooms int) error
}
