package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/cache"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/metrics"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCatalog() *memoryCatalog {
	c := newMemoryCatalog()
	c.hotels["h1"] = &domain.Hotel{ID: "h1", Currency: "EUR", Active: true}
	c.hotels["h2"] = &domain.Hotel{ID: "h2", Currency: "TRY", Active: true}
	c.roomTypes["rt-double"] = unitRoomType()
	c.roomTypes["rt-foreign"] = &domain.RoomType{ID: "rt-foreign", HotelID: "h2"}
	c.mealPlans["bb"] = &domain.MealPlan{ID: "bb", HotelID: "h1", Code: "BB"}
	c.markets["m1"] = &domain.Market{
		ID:      "m1",
		HotelID: "h1",
		Commercial: domain.CommercialSettings{
			Currency:              "EUR",
			WorkingMode:           domain.WorkingModeNet,
			Markup:                domain.Markup{B2C: 10, B2B: 5},
			NonRefundableDiscount: 10,
		},
		Active: true,
	}
	// three nights plus the departure day
	c.addRates("rt-double", "bb", "2027-06-10", 4, nil)

	early := openCampaign("early", 1)
	early.Channels = domain.CampaignChannels{B2C: true}
	c.campaigns = append(c.campaigns, early)
	return c
}

type usecaseFixture struct {
	uc        *DefaultPricingUsecase
	catalog   *memoryCatalog
	metrics   *metrics.PricingMetrics
	publisher *recordingPublisher
	store     *cache.MemoryStore
}

func newUsecaseFixture(t *testing.T, catalog *memoryCatalog) *usecaseFixture {
	t.Helper()
	m := metrics.NewPricingMetrics(prometheus.NewRegistry())
	store := cache.NewMemoryStore()
	pub := &recordingPublisher{}
	uc, err := NewDefaultPricingUsecase(
		catalog.repositories(),
		NewPriceCache(store, DefaultCacheTTLs, m, nil),
		m,
		pub,
		fixedConverter{"EURUSD": 1.1},
		nil,
		Options{},
	)
	require.NoError(t, err)
	uc.SetClock(func() time.Time { return day("2027-05-01") })
	return &usecaseFixture{uc: uc, catalog: catalog, metrics: m, publisher: pub, store: store}
}

func stayQuery() *pricingdto.PriceQuery {
	return &pricingdto.PriceQuery{
		HotelID:    "h1",
		RoomTypeID: "rt-double",
		MealPlanID: "bb",
		MarketID:   "m1",
		CheckIn:    day("2027-06-10"),
		CheckOut:   day("2027-06-13"),
		Occupancy:  domain.Occupancy{Adults: 2},
	}
}

func TestCalculatePriceWithCampaigns_PricesStay(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())

	res, err := f.uc.CalculatePriceWithCampaigns(context.Background(), stayQuery())
	require.NoError(t, err)

	assert.NotEmpty(t, res.QuoteID)
	assert.True(t, res.IsAvailable)
	assert.True(t, res.Restrictions.IsBookable)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, "EUR", res.Currency)
	assert.Equal(t, domain.ChannelB2C, res.Channel)
	assert.Equal(t, domain.PricingModelUnit, res.PricingModel)
	assert.Equal(t, 300.0, res.BasePrice)
	assert.Equal(t, 330.0, res.Tiers.B2CPrice)
	assert.Equal(t, 315.0, res.Tiers.B2BPrice)
	assert.Equal(t, 330.0, res.OriginalTotal)
	assert.Equal(t, 33.0, res.TotalDiscount)
	assert.Equal(t, 297.0, res.FinalTotal)
	require.Len(t, res.AppliedCampaigns, 1)
	assert.Equal(t, "early", res.AppliedCampaigns[0].Code)
	require.Len(t, res.NightlyPrices, 3)
	for _, n := range res.NightlyPrices {
		assert.Equal(t, 110.0, n.Price)
		assert.Equal(t, 99.0, n.Final)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CalculationsTotal.WithLabelValues("B2C", "available")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CampaignsAppliedTotal.WithLabelValues("h1", "early")))
}

func TestCalculatePriceWithCampaigns_ChannelAndRateType(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	q := stayQuery()
	q.Channel = domain.ChannelB2B
	q.RateType = domain.RateTypeNonRefundable

	res, err := f.uc.CalculatePriceWithCampaigns(context.Background(), q)
	require.NoError(t, err)

	// the early campaign is B2C only
	assert.Empty(t, res.AppliedCampaigns)
	assert.Equal(t, 283.5, res.OriginalTotal)
	assert.Equal(t, 283.5, res.FinalTotal)
}

func TestCalculatePriceWithCampaigns_UsesCache(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	ctx := context.Background()

	first, err := f.uc.CalculatePriceWithCampaigns(ctx, stayQuery())
	require.NoError(t, err)
	second, err := f.uc.CalculatePriceWithCampaigns(ctx, stayQuery())
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.catalog.rateCalls.Load())
	assert.Equal(t, first.FinalTotal, second.FinalTotal)
	assert.NotEqual(t, first.QuoteID, second.QuoteID)

	q := stayQuery()
	q.Occupancy.Adults = 3
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.catalog.rateCalls.Load())
	assert.Equal(t, int32(1), f.catalog.campaignCalls.Load())

	q = stayQuery()
	q.SkipCache = true
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.catalog.rateCalls.Load())
}

func TestInvalidateCache_ForcesRecompute(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	ctx := context.Background()

	_, err := f.uc.CalculatePriceWithCampaigns(ctx, stayQuery())
	require.NoError(t, err)

	f.catalog.rates[0].UnitPrice = 200
	removed, err := f.uc.InvalidateCache(ctx, domain.ConfigChangedEvent{
		Entity:     domain.ConfigRate,
		HotelID:    "h1",
		RoomTypeID: "rt-double",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	res, err := f.uc.CalculatePriceWithCampaigns(ctx, stayQuery())
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.catalog.rateCalls.Load())
	assert.Equal(t, 440.0, res.OriginalTotal)
}

func TestCalculatePriceWithCampaigns_BookingDateDrivesCampaignWindow(t *testing.T) {
	catalog := seededCatalog()
	catalog.campaigns[0].BookingWindow = domain.DateWindow{End: day("2027-04-30")}
	f := newUsecaseFixture(t, catalog)

	res, err := f.uc.CalculatePriceWithCampaigns(context.Background(), stayQuery())
	require.NoError(t, err)
	assert.Empty(t, res.AppliedCampaigns)

	q := stayQuery()
	q.BookingDate = day("2027-04-15")
	res, err = f.uc.CalculatePriceWithCampaigns(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, res.AppliedCampaigns, 1)
}

func TestCalculatePriceWithCampaigns_Errors(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	ctx := context.Background()

	q := stayQuery()
	q.Occupancy.Adults = 0
	_, err := f.uc.CalculatePriceWithCampaigns(ctx, q)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	q = stayQuery()
	q.CheckOut = q.CheckIn
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	q = stayQuery()
	q.Channel = "B2X"
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	q = stayQuery()
	q.CheckOut = day("2027-06-16")
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	assert.ErrorIs(t, err, domain.ErrRateNotFound)

	q = stayQuery()
	q.RoomTypeID = "rt-foreign"
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	assert.ErrorIs(t, err, domain.ErrRoomTypeNotFound)

	q = stayQuery()
	q.MarketID = "missing"
	_, err = f.uc.CalculatePriceWithCampaigns(ctx, q)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.EntityMarket, notFound.Entity)

	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.ErrorsTotal.WithLabelValues("calculate_price", "bad_request")))
}

func TestCalculatePriceWithCampaigns_MalformedOverride(t *testing.T) {
	catalog := seededCatalog()
	catalog.markets["m1"].RoomTypeOverrides = []domain.RoomTypeOverride{
		{RoomTypeID: "rt-double", OverrideMultipliers: true},
	}
	f := newUsecaseFixture(t, catalog)

	_, err := f.uc.CalculatePriceWithCampaigns(context.Background(), stayQuery())
	assert.ErrorIs(t, err, domain.ErrMalformedOverride)
}

func TestCalculatePriceWithCampaigns_UnavailableIsNotAnError(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	q := stayQuery()
	q.Occupancy.Adults = 4

	res, err := f.uc.CalculatePriceWithCampaigns(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, res.IsAvailable)
	assert.Contains(t, res.UnavailableReason, "on 2027-06-10")
	assert.Empty(t, res.NightlyPrices)
}

func TestCalculatePriceWithCampaigns_RestrictedStayStillPriced(t *testing.T) {
	catalog := seededCatalog()
	catalog.rates[1].StopSale = true
	catalog.rates[3].ClosedToDeparture = true
	f := newUsecaseFixture(t, catalog)

	res, err := f.uc.CalculatePriceWithCampaigns(context.Background(), stayQuery())
	require.NoError(t, err)
	assert.True(t, res.IsAvailable)
	assert.False(t, res.Restrictions.IsBookable)
	assert.True(t, res.Restrictions.Restrictions.StopSale)
	assert.True(t, res.Restrictions.Restrictions.ClosedToDeparture)
	assert.Equal(t, 297.0, res.FinalTotal)

	ok, reason := res.Sellable()
	assert.False(t, ok)
	assert.Equal(t, "stop sale on 2027-06-11", reason)
}

func TestCalculatePriceWithCampaigns_DisplayCurrency(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	q := stayQuery()
	q.DisplayCurrency = "USD"

	res, err := f.uc.CalculatePriceWithCampaigns(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, res.Display)
	assert.Equal(t, "USD", res.Display.Currency)
	assert.Equal(t, 363.0, res.Display.OriginalTotal)
	assert.Equal(t, 326.7, res.Display.FinalTotal)

	q.DisplayCurrency = "JPY"
	_, err = f.uc.CalculatePriceWithCampaigns(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestCalculateTierPricing_Usecase(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())

	tiers, err := f.uc.CalculateTierPricing(context.Background(), &pricingdto.TierInput{
		BasePrice:  100,
		Commercial: domain.CommercialSettings{Markup: domain.Markup{B2C: 20}},
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, tiers.B2CPrice)

	_, err = f.uc.CalculateTierPricing(context.Background(), &pricingdto.TierInput{BasePrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	tiers, err = f.uc.CalculateTierPricing(context.Background(), &pricingdto.TierInput{
		BasePrice:  200,
		Commercial: domain.CommercialSettings{WorkingMode: domain.WorkingModeCommission, CommissionRate: 100, AgencyMarginShare: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, tiers.OperatorCost)
	assert.Equal(t, 150.0, tiers.B2BPrice)
	assert.Equal(t, 200.0, tiers.B2CPrice)

	_, err = f.uc.CalculateTierPricing(context.Background(), &pricingdto.TierInput{
		BasePrice:  100,
		Commercial: domain.CommercialSettings{WorkingMode: domain.WorkingModeCommission, CommissionRate: 120},
	})
	assert.ErrorIs(t, err, domain.ErrMalformedOverride)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "not_found", errorKind(domain.NewNotFound(domain.EntityRate, "x")))
	assert.Equal(t, "malformed_override", errorKind(domain.NewMalformedOverride("x")))
	assert.Equal(t, "bad_request", errorKind(domain.NewBadRequest("x")))
	assert.Equal(t, "unavailable", errorKind(domain.ErrRoomUnavailable))
	assert.Equal(t, "canceled", errorKind(context.Canceled))
	assert.Equal(t, "internal", errorKind(errors.New("x")))
}
