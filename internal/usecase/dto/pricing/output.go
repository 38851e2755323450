package pricingdto

import "github.com/LavaJover/shvark-pricing-service/internal/domain"

type RoomOutput struct {
	Index         int                 `json:"index"`
	RoomTypeID    string              `json:"roomTypeId"`
	MealPlanID    string              `json:"mealPlanId"`
	RateType      domain.RateType     `json:"rateType"`
	SelectedPrice float64             `json:"selectedPrice"`
	Result        *domain.PriceResult `json:"result"`
}

type RoomError struct {
	Index      int    `json:"index"`
	RoomTypeID string `json:"roomTypeId"`
	MealPlanID string `json:"mealPlanId"`
	Reason     string `json:"reason"`
	Code       string `json:"code"`
}

type BookingTotals struct {
	Currency      string               `json:"currency"`
	OriginalTotal float64              `json:"originalTotal"`
	TotalDiscount float64              `json:"totalDiscount"`
	FinalTotal    float64              `json:"finalTotal"`
	Rooms         int                  `json:"rooms"`
	Display       *domain.DisplayPrice `json:"display,omitempty"`
}

type MultiRoomOutput struct {
	Success bool          `json:"success"`
	Rooms   []RoomOutput  `json:"rooms"`
	Totals  BookingTotals `json:"totals"`
	Errors  []RoomError   `json:"errors,omitempty"`
}
