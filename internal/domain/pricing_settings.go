package domain

type PricingModel string

const (
	PricingModelUnit      PricingModel = "unit"
	PricingModelPerPerson PricingModel = "per_person"
)

type RoundingRule string

const (
	RoundingNone      RoundingRule = "none"
	RoundingUp        RoundingRule = "up"
	RoundingDown      RoundingRule = "down"
	RoundingNearest   RoundingRule = "nearest"
	RoundingNearest5  RoundingRule = "nearest5"
	RoundingNearest10 RoundingRule = "nearest10"
)

type WorkingMode string

const (
	WorkingModeNet        WorkingMode = "net"
	WorkingModeCommission WorkingMode = "commission"
)

type SalesChannel string

const (
	ChannelB2C SalesChannel = "B2C"
	ChannelB2B SalesChannel = "B2B"
)

type RateType string

const (
	RateTypeRefundable    RateType = "refundable"
	RateTypeNonRefundable RateType = "non_refundable"
)

// DefaultChildAgeGroup is assigned to a child whose age matches no configured group.
const DefaultChildAgeGroup = "first"

type Markup struct {
	B2C float64 `json:"b2c"`
	B2B float64 `json:"b2b"`
}

type CommercialSettings struct {
	Currency              string      `json:"currency"`
	WorkingMode           WorkingMode `json:"workingMode"`
	CommissionRate        float64     `json:"commissionRate"`
	Markup                Markup      `json:"markup"`
	AgencyCommission      float64     `json:"agencyCommission"` // legacy, superseded by AgencyMarginShare
	AgencyMarginShare     float64     `json:"agencyMarginShare"`
	NonRefundableDiscount float64     `json:"nonRefundableDiscount"`
}

type ChildAgeGroup struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	MinAge int    `json:"minAge"`
	MaxAge int    `json:"maxAge"`
}

func (g ChildAgeGroup) Contains(age int) bool {
	return age >= g.MinAge && age <= g.MaxAge
}

// MultiplierTemplate converts a base occupancy price into the price of an
// arbitrary occupancy.
type MultiplierTemplate struct {
	AdultMultipliers map[int]float64            `json:"adultMultipliers"`
	ChildMultipliers map[int]map[string]float64 `json:"childMultipliers"`
	Combinations     []CombinationEntry         `json:"combinations"`
	RoundingRule     RoundingRule               `json:"roundingRule"`
}

// LookupCombination finds the table entry for key, comparing canonical forms.
func (t *MultiplierTemplate) LookupCombination(key CombinationKey) (*CombinationEntry, bool) {
	if t == nil {
		return nil, false
	}
	want := key.Canonical()
	for i := range t.Combinations {
		if t.Combinations[i].Key.Canonical() == want {
			return &t.Combinations[i], true
		}
	}
	return nil, false
}

type CombinationEntry struct {
	Key                  CombinationKey `json:"key"`
	CalculatedMultiplier float64        `json:"calculatedMultiplier"`
	OverrideMultiplier   *float64       `json:"overrideMultiplier,omitempty"`
	IsActive             bool           `json:"isActive"`
}

// Multiplier returns the manual override when present, else the calculated value.
func (e *CombinationEntry) Multiplier() float64 {
	if e.OverrideMultiplier != nil {
		return *e.OverrideMultiplier
	}
	return e.CalculatedMultiplier
}

// RoomTypeOverride is one per-room-type entry of a market or season override.
// Each settings group is applied only when its flag is set.
type RoomTypeOverride struct {
	RoomTypeID           string              `json:"roomTypeId"`
	OverridePricingModel bool                `json:"overridePricingModel"`
	PricingModel         PricingModel        `json:"pricingModel,omitempty"`
	OverrideMinAdults    bool                `json:"overrideMinAdults"`
	MinAdults            int                 `json:"minAdults,omitempty"`
	OverrideMultipliers  bool                `json:"overrideMultipliers"`
	MultiplierTemplate   *MultiplierTemplate `json:"multiplierTemplate,omitempty"`
}

func findOverride(overrides []RoomTypeOverride, roomTypeID string) *RoomTypeOverride {
	for i := range overrides {
		if overrides[i].RoomTypeID == roomTypeID {
			return &overrides[i]
		}
	}
	return nil
}
