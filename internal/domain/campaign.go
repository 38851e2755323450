package domain

import "time"

type CampaignType string

const (
	CampaignPercentage CampaignType = "percentage"
	CampaignFixed      CampaignType = "fixed"
	CampaignFreeNights CampaignType = "free_nights"
)

type FreeNightsPosition string

const (
	FreeNightsLast     FreeNightsPosition = "last"
	FreeNightsFirst    FreeNightsPosition = "first"
	FreeNightsCheapest FreeNightsPosition = "cheapest"
)

// DateWindow is an inclusive calendar-day range. A zero bound is open.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w DateWindow) Contains(t time.Time) bool {
	d := DateOnly(t)
	if !w.Start.IsZero() && d.Before(DateOnly(w.Start)) {
		return false
	}
	if !w.End.IsZero() && d.After(DateOnly(w.End)) {
		return false
	}
	return true
}

// Overlaps reports whether [from, to] shares at least one day with the window.
func (w DateWindow) Overlaps(from, to time.Time) bool {
	if !w.Start.IsZero() && DateOnly(to).Before(DateOnly(w.Start)) {
		return false
	}
	if !w.End.IsZero() && DateOnly(from).After(DateOnly(w.End)) {
		return false
	}
	return true
}

type CampaignScope struct {
	AllRoomTypes bool     `json:"allRoomTypes"`
	RoomTypeIDs  []string `json:"roomTypeIds"`
	AllMealPlans bool     `json:"allMealPlans"`
	MealPlanIDs  []string `json:"mealPlanIds"`
	AllMarkets   bool     `json:"allMarkets"`
	MarketIDs    []string `json:"marketIds"`
}

type CampaignChannels struct {
	B2C bool `json:"b2c"`
	B2B bool `json:"b2b"`
}

func (c CampaignChannels) Allows(ch SalesChannel) bool {
	switch ch {
	case ChannelB2C:
		return c.B2C
	case ChannelB2B:
		return c.B2B
	}
	return false
}

type Campaign struct {
	ID                 string
	HotelID            string
	Code               string
	Name               string
	Type               CampaignType
	Value              float64
	FreeNights         int
	FreeNightsPosition FreeNightsPosition
	BookingWindow      DateWindow
	StayWindow         DateWindow
	MinNights          int
	MaxNights          int
	Scope              CampaignScope
	Combinable         bool
	Priority           int
	Channels           CampaignChannels
	Active             bool
}
