package domain

import "time"

type Child struct {
	Age      int    `json:"age" validate:"gte=0,lte=17"`
	AgeGroup string `json:"ageGroup,omitempty"`
}

type Occupancy struct {
	Adults   int     `json:"adults" validate:"gte=1"`
	Children []Child `json:"children,omitempty" validate:"dive"`
}

type LineKind string

const (
	LineBase             LineKind = "base"
	LineSingleSupplement LineKind = "single_supplement"
	LineExtraAdult       LineKind = "extra_adult"
	LineChild            LineKind = "child"
	LineMultiplier       LineKind = "multiplier_adjustment"
	LineRounding         LineKind = "rounding_adjustment"
)

// LineItem is one per-night component. Amounts of all lines add up to the
// per-night price.
type LineItem struct {
	Kind        LineKind `json:"kind"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	UnitAmount  float64  `json:"unitAmount"`
	Amount      float64  `json:"amount"`
}

type CombinationSource string

const (
	CombinationFromTable    CombinationSource = "table"
	CombinationFromOverride CombinationSource = "table_override"
	CombinationCalculated   CombinationSource = "calculated"
)

// PriceBreakdown is the base (pre-commercial) price of a stay.
type PriceBreakdown struct {
	PricingModel        PricingModel      `json:"pricingModel"`
	IsAvailable         bool              `json:"isAvailable"`
	UnavailableReason   string            `json:"unavailableReason,omitempty"`
	BasePrice           float64           `json:"basePrice"`
	PerNightPrice       float64           `json:"perNightPrice"`
	Nights              int               `json:"nights"`
	Total               float64           `json:"total"`
	UsesMultipliers     bool              `json:"usesMultipliers"`
	Multiplier          float64           `json:"multiplier"`
	CombinationKey      string            `json:"combinationKey,omitempty"`
	CombinationSource   CombinationSource `json:"combinationSource,omitempty"`
	RoundingApplied     RoundingRule      `json:"roundingApplied,omitempty"`
	Lines               []LineItem        `json:"lines"`
	DataQualityWarnings []string          `json:"dataQualityWarnings,omitempty"`
}

type TierPrices struct {
	OperatorCost     float64 `json:"operatorCost"`
	B2CPrice         float64 `json:"b2cPrice"`
	B2BPrice         float64 `json:"b2bPrice"`
	NonRefundableB2C float64 `json:"nonRefundableB2c"`
	NonRefundableB2B float64 `json:"nonRefundableB2b"`
}

// ForChannel picks the tier a channel sells at, substituting the
// non-refundable tier when requested.
func (t TierPrices) ForChannel(ch SalesChannel, rt RateType) float64 {
	nonRef := rt == RateTypeNonRefundable
	switch {
	case ch == ChannelB2B && nonRef:
		return t.NonRefundableB2B
	case ch == ChannelB2B:
		return t.B2BPrice
	case nonRef:
		return t.NonRefundableB2C
	default:
		return t.B2CPrice
	}
}

type RestrictionFlags struct {
	StopSale              bool `json:"stopSale"`
	BelowMinAdults        bool `json:"belowMinAdults"`
	SingleStop            bool `json:"singleStop"`
	InsufficientAllotment bool `json:"insufficientAllotment"`
	NoAvailability        bool `json:"noAvailability"`
	ReleaseDays           bool `json:"releaseDays"`
	MinStay               bool `json:"minStay"`
	MaxStay               bool `json:"maxStay"`
	ClosedToArrival       bool `json:"closedToArrival"`
	ClosedToDeparture     bool `json:"closedToDeparture"`
}

func (f RestrictionFlags) Any() bool {
	return f.StopSale || f.BelowMinAdults || f.SingleStop || f.InsufficientAllotment ||
		f.NoAvailability || f.ReleaseDays || f.MinStay || f.MaxStay ||
		f.ClosedToArrival || f.ClosedToDeparture
}

func (f RestrictionFlags) Merge(o RestrictionFlags) RestrictionFlags {
	return RestrictionFlags{
		StopSale:              f.StopSale || o.StopSale,
		BelowMinAdults:        f.BelowMinAdults || o.BelowMinAdults,
		SingleStop:            f.SingleStop || o.SingleStop,
		InsufficientAllotment: f.InsufficientAllotment || o.InsufficientAllotment,
		NoAvailability:        f.NoAvailability || o.NoAvailability,
		ReleaseDays:           f.ReleaseDays || o.ReleaseDays,
		MinStay:               f.MinStay || o.MinStay,
		MaxStay:               f.MaxStay || o.MaxStay,
		ClosedToArrival:       f.ClosedToArrival || o.ClosedToArrival,
		ClosedToDeparture:     f.ClosedToDeparture || o.ClosedToDeparture,
	}
}

type RestrictionResult struct {
	IsBookable   bool             `json:"isBookable"`
	Restrictions RestrictionFlags `json:"restrictions"`
	Messages     []string         `json:"messages,omitempty"`
}

type NightPrice struct {
	Date           time.Time  `json:"date"`
	SeasonID       string     `json:"seasonId,omitempty"`
	BasePrice      float64    `json:"basePrice"`
	Multiplier     float64    `json:"multiplier"`
	CombinationKey string     `json:"combinationKey,omitempty"`
	Tiers          TierPrices `json:"tiers"`
	Price          float64    `json:"price"`
	Discount       float64    `json:"discount"`
	Final          float64    `json:"final"`
}

type AppliedCampaign struct {
	CampaignID string       `json:"campaignId"`
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Type       CampaignType `json:"type"`
	Priority   int          `json:"priority"`
	Combinable bool         `json:"combinable"`
	Discount   float64      `json:"discount"`
}

type DisplayPrice struct {
	Currency      string  `json:"currency"`
	OriginalTotal float64 `json:"originalTotal"`
	FinalTotal    float64 `json:"finalTotal"`
}

// PriceResult is the campaign-adjusted price of one room for one stay. It is
// computed per request and never persisted here.
type PriceResult struct {
	QuoteID           string            `json:"quoteId"`
	HotelID           string            `json:"hotelId"`
	RoomTypeID        string            `json:"roomTypeId"`
	MealPlanID        string            `json:"mealPlanId"`
	MarketID          string            `json:"marketId"`
	CheckIn           time.Time         `json:"checkIn"`
	CheckOut          time.Time         `json:"checkOut"`
	Nights            int               `json:"nights"`
	Occupancy         Occupancy         `json:"occupancy"`
	Channel           SalesChannel      `json:"channel"`
	RateType          RateType          `json:"rateType"`
	Currency          string            `json:"currency"`
	PricingModel      PricingModel      `json:"pricingModel"`
	IsAvailable       bool              `json:"isAvailable"`
	UnavailableReason string            `json:"unavailableReason,omitempty"`
	NightlyPrices     []NightPrice      `json:"nightlyPrices"`
	BasePrice         float64           `json:"basePrice"`
	Tiers             TierPrices        `json:"tiers"`
	OriginalTotal     float64           `json:"originalTotal"`
	TotalDiscount     float64           `json:"totalDiscount"`
	FinalTotal        float64           `json:"finalTotal"`
	AppliedCampaigns  []AppliedCampaign `json:"appliedCampaigns"`
	Restrictions      RestrictionResult `json:"restrictions"`
	Display           *DisplayPrice     `json:"display,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
}

// Sellable is the discriminator consumers use: available and bookable.
func (r *PriceResult) Sellable() (bool, string) {
	if !r.IsAvailable {
		return false, r.UnavailableReason
	}
	if !r.Restrictions.IsBookable {
		if len(r.Restrictions.Messages) > 0 {
			return false, r.Restrictions.Messages[0]
		}
		return false, "restricted"
	}
	return true, ""
}
