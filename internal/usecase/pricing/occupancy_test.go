package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func unitRoomType() *domain.RoomType {
	return &domain.RoomType{
		ID:            "rt-double",
		HotelID:       "h1",
		PricingModel:  domain.PricingModelUnit,
		BaseOccupancy: 2,
		MaxAdults:     3,
		MaxChildren:   2,
		MaxOccupancy:  4,
		Active:        true,
	}
}

func unitRate() *domain.DailyRate {
	return &domain.DailyRate{
		ID:               "rate-1",
		Date:             day("2027-01-10"),
		UnitPrice:        100,
		SingleSupplement: 20,
		ExtraAdult:       30,
		ExtraChild:       10,
		ExtraInfant:      5,
		ChildOrderPricing: []domain.ChildOrderPrice{
			{Order: 1, Price: 15},
		},
		Allotment: 5,
	}
}

func linesTotal(bd *domain.PriceBreakdown) float64 {
	values := make([]float64, 0, len(bd.Lines))
	for _, l := range bd.Lines {
		values = append(values, l.Amount)
	}
	return sum2(values...)
}

func TestCalculateOccupancyPrice_Unit(t *testing.T) {
	rt := unitRoomType()
	rate := unitRate()

	tests := []struct {
		name     string
		occ      domain.Occupancy
		expected float64
	}{
		{"base occupancy", domain.Occupancy{Adults: 2}, 100},
		{"single occupancy takes supplement", domain.Occupancy{Adults: 1}, 80},
		{"extra adult", domain.Occupancy{Adults: 3}, 130},
		{"first child uses order price", domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 6}}}, 115},
		{"second child falls back to extra child", domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 6}, {Age: 9}}}, 125},
		{"second child under two uses infant price", domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 6}, {Age: 1}}}, 120},
		{"two year old is no longer an infant", domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 6}, {Age: 2}}}, 125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd, err := CalculateOccupancyPrice(rate, tt.occ, 1, ConfigLayers{RoomType: rt})
			require.NoError(t, err)
			require.True(t, bd.IsAvailable)
			assert.Equal(t, domain.PricingModelUnit, bd.PricingModel)
			assert.Equal(t, tt.expected, bd.PerNightPrice)
			assert.Equal(t, bd.PerNightPrice, linesTotal(bd))
		})
	}
}

func TestCalculateOccupancyPrice_ChildAgeTier(t *testing.T) {
	rate := unitRate()
	rate.ChildOrderPricing = nil
	rate.ChildAgePricing = []domain.ChildAgePrice{
		{MinAge: 0, MaxAge: 2, Price: 0},
		{MinAge: 3, MaxAge: 11, Price: 25},
	}

	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{
		Adults:   2,
		Children: []domain.Child{{Age: 1}, {Age: 7}, {Age: 15}},
	}, 1, ConfigLayers{RoomType: &domain.RoomType{ID: "rt", BaseOccupancy: 2}})
	require.NoError(t, err)

	// 100 + infant 0 + child 25 + teenager falls through to extra child 10
	assert.Equal(t, 135.0, bd.PerNightPrice)
}

func TestCalculateOccupancyPrice_MultipliesNights(t *testing.T) {
	bd, err := CalculateOccupancyPrice(unitRate(), domain.Occupancy{Adults: 3}, 3, ConfigLayers{RoomType: unitRoomType()})
	require.NoError(t, err)
	assert.Equal(t, 130.0, bd.PerNightPrice)
	assert.Equal(t, 390.0, bd.Total)
	assert.Equal(t, 3, bd.Nights)
}

func TestCalculateOccupancyPrice_CapacityExceeded(t *testing.T) {
	bd, err := CalculateOccupancyPrice(unitRate(), domain.Occupancy{Adults: 4}, 1, ConfigLayers{RoomType: unitRoomType()})
	require.NoError(t, err)
	assert.False(t, bd.IsAvailable)
	assert.Contains(t, bd.UnavailableReason, "at most 3 adults")
	assert.Zero(t, bd.Total)
}

func TestCalculateOccupancyPrice_InvalidInput(t *testing.T) {
	_, err := CalculateOccupancyPrice(unitRate(), domain.Occupancy{Adults: 0}, 1, ConfigLayers{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuery))

	_, err = CalculateOccupancyPrice(unitRate(), domain.Occupancy{Adults: 2}, 0, ConfigLayers{})
	require.Error(t, err)

	_, err = CalculateOccupancyPrice(nil, domain.Occupancy{Adults: 2}, 1, ConfigLayers{})
	assert.True(t, errors.Is(err, domain.ErrRateNotFound))
}

func TestCalculateOccupancyPrice_OccupancyTable(t *testing.T) {
	rt := &domain.RoomType{ID: "rt-pp", PricingModel: domain.PricingModelPerPerson, BaseOccupancy: 2}
	rate := &domain.DailyRate{
		ID:               "rate-pp",
		OccupancyPricing: map[int]float64{1: 70, 2: 100},
		ExtraChild:       12,
	}

	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 1, Children: []domain.Child{{Age: 4}}}, 1, ConfigLayers{RoomType: rt})
	require.NoError(t, err)
	assert.Equal(t, 82.0, bd.PerNightPrice)
	assert.False(t, bd.UsesMultipliers)
	assert.Empty(t, bd.DataQualityWarnings)

	bd, err = CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 3}, 1, ConfigLayers{RoomType: rt})
	require.NoError(t, err)
	assert.Zero(t, bd.PerNightPrice)
	require.Len(t, bd.DataQualityWarnings, 1)
	assert.Contains(t, bd.DataQualityWarnings[0], "3 adults")
}

func multiplierRoomType() *domain.RoomType {
	return &domain.RoomType{
		ID:            "rt-family",
		PricingModel:  domain.PricingModelPerPerson,
		BaseOccupancy: 2,
		MultiplierTemplate: &domain.MultiplierTemplate{
			AdultMultipliers: map[int]float64{1: 0.7, 2: 1, 3: 1.4},
			ChildMultipliers: map[int]map[string]float64{
				1: {"first": 1.3, "infant": 1},
			},
			RoundingRule: domain.RoundingNone,
		},
	}
}

func familyMarket() *domain.Market {
	return &domain.Market{
		ID: "m1",
		ChildAgeGroups: []domain.ChildAgeGroup{
			{Code: "infant", MinAge: 0, MaxAge: 1},
			{Code: "first", MinAge: 2, MaxAge: 11},
		},
	}
}

func TestCalculateOccupancyPrice_CalculatedMultiplier(t *testing.T) {
	rate := &domain.DailyRate{ID: "rate-m", OccupancyPricing: map[int]float64{2: 100}}
	layers := ConfigLayers{RoomType: multiplierRoomType(), Market: familyMarket()}

	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 1}, 1, layers)
	require.NoError(t, err)
	assert.True(t, bd.UsesMultipliers)
	assert.Equal(t, 70.0, bd.PerNightPrice)
	assert.Equal(t, domain.CombinationCalculated, bd.CombinationSource)

	bd, err = CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 5}}}, 1, layers)
	require.NoError(t, err)
	assert.Equal(t, 130.0, bd.PerNightPrice)
	assert.InDelta(t, 1.3, bd.Multiplier, 1e-9)
	assert.Equal(t, `a=2;c1="first"`, bd.CombinationKey)
	assert.Equal(t, bd.PerNightPrice, linesTotal(bd))

	bd, err = CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 1}}}, 1, layers)
	require.NoError(t, err)
	assert.Equal(t, 100.0, bd.PerNightPrice)
	assert.Equal(t, `a=2;c1="infant"`, bd.CombinationKey)
}

func TestCalculateOccupancyPrice_AgeGroupCodesIgnoreCase(t *testing.T) {
	rt := multiplierRoomType()
	rt.MultiplierTemplate.ChildMultipliers = map[int]map[string]float64{
		1: {"Infant": 0.5},
	}
	market := &domain.Market{
		ID:             "m1",
		ChildAgeGroups: []domain.ChildAgeGroup{{Code: "Infant", MinAge: 0, MaxAge: 1}},
	}
	rate := &domain.DailyRate{ID: "rate-m", OccupancyPricing: map[int]float64{2: 100}}
	layers := ConfigLayers{RoomType: rt, Market: market}

	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 1}}}, 1, layers)
	require.NoError(t, err)
	assert.Equal(t, 50.0, bd.PerNightPrice)
	assert.InDelta(t, 0.5, bd.Multiplier, 1e-9)
	assert.Equal(t, `a=2;c1="infant"`, bd.CombinationKey)

	bd, err = CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 9, AgeGroup: " INFANT"}}}, 1, layers)
	require.NoError(t, err)
	assert.Equal(t, 50.0, bd.PerNightPrice)
}

func TestCalculateOccupancyPrice_UnitPriceWhenBaseOccupancyMissing(t *testing.T) {
	rate := &domain.DailyRate{ID: "rate-m", UnitPrice: 90}
	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 3}, 1, ConfigLayers{RoomType: multiplierRoomType()})
	require.NoError(t, err)
	assert.Equal(t, 90.0, bd.BasePrice)
	assert.Equal(t, 126.0, bd.PerNightPrice)
}

func TestCalculateOccupancyPrice_CombinationTable(t *testing.T) {
	rt := multiplierRoomType()
	rt.MultiplierTemplate.Combinations = []domain.CombinationEntry{
		{
			Key:                  domain.NewCombinationKey(3, nil),
			CalculatedMultiplier: 1.4,
			OverrideMultiplier:   ptr(1.5),
			IsActive:             true,
		},
		{
			Key:                  domain.NewCombinationKey(2, []string{" First "}),
			CalculatedMultiplier: 1.3,
			IsActive:             true,
		},
		{
			Key:                  domain.NewCombinationKey(1, []string{"first"}),
			CalculatedMultiplier: 1,
			IsActive:             false,
		},
	}
	rate := &domain.DailyRate{ID: "rate-m", OccupancyPricing: map[int]float64{2: 100}}
	layers := ConfigLayers{RoomType: rt, Market: familyMarket()}

	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 3}, 1, layers)
	require.NoError(t, err)
	assert.Equal(t, 150.0, bd.PerNightPrice)
	assert.Equal(t, domain.CombinationFromOverride, bd.CombinationSource)

	bd, err = CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 2, Children: []domain.Child{{Age: 8}}}, 1, layers)
	require.NoError(t, err)
	assert.Equal(t, 130.0, bd.PerNightPrice)
	assert.Equal(t, domain.CombinationFromTable, bd.CombinationSource)

	bd, err = CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 1, Children: []domain.Child{{Age: 8}}}, 1, layers)
	require.NoError(t, err)
	assert.False(t, bd.IsAvailable)
	assert.Contains(t, bd.UnavailableReason, "not sellable")
}

func TestCalculateOccupancyPrice_ExplicitAgeGroupWins(t *testing.T) {
	rate := &domain.DailyRate{ID: "rate-m", OccupancyPricing: map[int]float64{2: 100}}
	bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{
		Adults:   2,
		Children: []domain.Child{{Age: 8, AgeGroup: "infant"}},
	}, 1, ConfigLayers{RoomType: multiplierRoomType(), Market: familyMarket()})
	require.NoError(t, err)
	assert.Equal(t, 100.0, bd.PerNightPrice)
}

func TestCalculateOccupancyPrice_Rounding(t *testing.T) {
	tests := []struct {
		rule     domain.RoundingRule
		expected float64
	}{
		{domain.RoundingNone, 123.45},
		{domain.RoundingUp, 124},
		{domain.RoundingDown, 123},
		{domain.RoundingNearest, 123},
		{domain.RoundingNearest5, 125},
		{domain.RoundingNearest10, 120},
	}
	for _, tt := range tests {
		t.Run(string(tt.rule), func(t *testing.T) {
			rt := multiplierRoomType()
			rt.MultiplierTemplate.AdultMultipliers[2] = 1.2345
			rt.MultiplierTemplate.RoundingRule = tt.rule
			rate := &domain.DailyRate{ID: "rate-m", OccupancyPricing: map[int]float64{2: 100}}

			bd, err := CalculateOccupancyPrice(rate, domain.Occupancy{Adults: 2}, 1, ConfigLayers{RoomType: rt})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, bd.PerNightPrice)
			assert.Equal(t, bd.PerNightPrice, linesTotal(bd))
		})
	}
}

func TestApplyRounding_IgnoresFloatNoise(t *testing.T) {
	noisy := dec(0.7).Mul(dec(100.00000000000001))
	assert.Equal(t, "70", applyRounding(noisy, domain.RoundingUp).String())
}
