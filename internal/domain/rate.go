package domain

import "time"

// InfantAgeLimit is the age from which a child stops being priced as an
// infant when the rate has no order or age-tier price for it.
const InfantAgeLimit = 2

type ChildOrderPrice struct {
	Order int     `json:"order"`
	Price float64 `json:"price"`
}

type ChildAgePrice struct {
	MinAge int     `json:"minAge"`
	MaxAge int     `json:"maxAge"`
	Price  float64 `json:"price"`
}

// DailyRate is unique per (hotel, room type, meal plan, market, date).
type DailyRate struct {
	ID         string
	HotelID    string
	RoomTypeID string
	MealPlanID string
	MarketID   string
	Date       time.Time
	Currency   string

	UnitPrice         float64
	SingleSupplement  float64
	ExtraAdult        float64
	ExtraChild        float64
	ExtraInfant       float64
	ChildOrderPricing []ChildOrderPrice
	ChildAgePricing   []ChildAgePrice
	OccupancyPricing  map[int]float64

	Allotment int
	Sold      int

	MinStay           int
	MaxStay           int
	ReleaseDays       int
	ClosedToArrival   bool
	ClosedToDeparture bool
	SingleStop        bool
	StopSale          bool

	UseMultiplierOverride bool
	MultiplierOverride    *MultiplierTemplate
}

func (r *DailyRate) Available() int {
	if r.Allotment-r.Sold < 0 {
		return 0
	}
	return r.Allotment - r.Sold
}

func (r *DailyRate) ChildOrderPrice(order int) (float64, bool) {
	for _, p := range r.ChildOrderPricing {
		if p.Order == order {
			return p.Price, true
		}
	}
	return 0, false
}

func (r *DailyRate) ChildAgePrice(age int) (float64, bool) {
	for _, p := range r.ChildAgePricing {
		if age >= p.MinAge && age <= p.MaxAge {
			return p.Price, true
		}
	}
	return 0, false
}

// RateKey addresses the rate series of one sellable combination.
type RateKey struct {
	HotelID    string
	RoomTypeID string
	MealPlanID string
	MarketID   string
}

type RateQuery struct {
	RateKey
	From time.Time
	To   time.Time // inclusive
}
