package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/metrics"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
	"github.com/go-playground/validator/v10"
	"github.com/jaevor/go-nanoid"
	"golang.org/x/sync/errgroup"
)

type PricingUsecase interface {
	CalculatePriceWithCampaigns(ctx context.Context, query *pricingdto.PriceQuery) (*domain.PriceResult, error)
	CalculateMultiRoomBookingPrice(ctx context.Context, input *pricingdto.MultiRoomInput) (*pricingdto.MultiRoomOutput, error)
	CalculateTierPricing(ctx context.Context, input *pricingdto.TierInput) (domain.TierPrices, error)
	InvalidateCache(ctx context.Context, event domain.ConfigChangedEvent) (int, error)
}

type Repositories struct {
	Hotels    domain.HotelRepository
	RoomTypes domain.RoomTypeRepository
	MealPlans domain.MealPlanRepository
	Markets   domain.MarketRepository
	Seasons   domain.SeasonRepository
	Rates     domain.RateRepository
	Campaigns domain.CampaignRepository
}

type Options struct {
	ConsistencyTolerance float64
	MaxRooms             int
	DefaultCurrency      string
}

var DefaultOptions = Options{
	ConsistencyTolerance: 0.01,
	MaxRooms:             10,
	DefaultCurrency:      "EUR",
}

type DefaultPricingUsecase struct {
	Repos     Repositories
	Cache     *PriceCache
	Metrics   *metrics.PricingMetrics
	Publisher domain.QuotePublisher
	Converter domain.CurrencyConverter
	Logger    *slog.Logger
	Options   Options

	now        func() time.Time
	validate   *validator.Validate
	newQuoteID func() string
}

func NewDefaultPricingUsecase(
	repos Repositories,
	cache *PriceCache,
	pricingMetrics *metrics.PricingMetrics,
	publisher domain.QuotePublisher,
	converter domain.CurrencyConverter,
	logger *slog.Logger,
	opts Options,
) (*DefaultPricingUsecase, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("init quote id generator: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ConsistencyTolerance <= 0 {
		opts.ConsistencyTolerance = DefaultOptions.ConsistencyTolerance
	}
	if opts.MaxRooms <= 0 {
		opts.MaxRooms = DefaultOptions.MaxRooms
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = DefaultOptions.DefaultCurrency
	}
	return &DefaultPricingUsecase{
		Repos:      repos,
		Cache:      cache,
		Metrics:    pricingMetrics,
		Publisher:  publisher,
		Converter:  converter,
		Logger:     logger,
		Options:    opts,
		now:        time.Now,
		validate:   validator.New(),
		newQuoteID: idGenerator,
	}, nil
}

// SetClock replaces the time source used for booking dates and campaign
// booking windows.
func (uc *DefaultPricingUsecase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *DefaultPricingUsecase) validateInput(input any) error {
	if err := uc.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.NewBadRequest("field %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return domain.NewBadRequest("%v", err)
	}
	return nil
}

func (uc *DefaultPricingUsecase) normalizeQuery(q pricingdto.PriceQuery) pricingdto.PriceQuery {
	if q.Channel == "" {
		q.Channel = domain.ChannelB2C
	}
	if q.RateType == "" {
		q.RateType = domain.RateTypeRefundable
	}
	if q.BookingDate.IsZero() {
		q.BookingDate = uc.now()
	}
	if q.RequiredRooms < 1 {
		q.RequiredRooms = 1
	}
	q.CheckIn = domain.DateOnly(q.CheckIn)
	q.CheckOut = domain.DateOnly(q.CheckOut)
	return q
}

// CalculatePriceWithCampaigns prices one room for one stay: resolution,
// occupancy pricing and tiers per night, stay restrictions, then campaigns.
func (uc *DefaultPricingUsecase) CalculatePriceWithCampaigns(ctx context.Context, query *pricingdto.PriceQuery) (*domain.PriceResult, error) {
	start := time.Now()
	if query == nil {
		return nil, domain.NewBadRequest("empty price query")
	}
	if err := uc.validateInput(query); err != nil {
		uc.Metrics.RecordError("calculate_price", errorKind(err))
		return nil, err
	}
	q := uc.normalizeQuery(*query)

	compute := func(ctx context.Context) (*domain.PriceResult, error) {
		return uc.computePrice(ctx, q)
	}
	var (
		result *domain.PriceResult
		err    error
	)
	if q.SkipCache {
		result, err = compute(ctx)
	} else {
		result, err = GetOrSet(ctx, uc.Cache, CategoryPrice, uc.priceKey(q), uc.Cache.TTL(CategoryPrice), compute)
	}
	if err != nil {
		uc.Metrics.RecordError("calculate_price", errorKind(err))
		uc.Metrics.RecordCalculation(string(q.Channel), "error", time.Since(start).Seconds())
		return nil, err
	}

	out := *result
	out.QuoteID = uc.newQuoteID()
	uc.Metrics.RecordCalculation(string(q.Channel), outcomeLabel(&out), time.Since(start).Seconds())
	return &out, nil
}

func (uc *DefaultPricingUsecase) priceKey(q pricingdto.PriceQuery) string {
	return PriceCacheKey(PriceKeyParts{
		HotelID:         q.HotelID,
		RoomTypeID:      q.RoomTypeID,
		MealPlanID:      q.MealPlanID,
		MarketID:        q.MarketID,
		Date:            q.CheckIn,
		Adults:          q.Occupancy.Adults,
		Children:        q.Occupancy.Children,
		Nights:          domain.NightsBetween(q.CheckIn, q.CheckOut),
		Channel:         q.Channel,
		RateType:        q.RateType,
		BookingDate:     q.BookingDate,
		RequiredRooms:   q.RequiredRooms,
		DisplayCurrency: q.DisplayCurrency,
	})
}

// CalculateTierPricing exposes the tier calculator on its own.
func (uc *DefaultPricingUsecase) CalculateTierPricing(ctx context.Context, input *pricingdto.TierInput) (domain.TierPrices, error) {
	if input == nil {
		return domain.TierPrices{}, domain.NewBadRequest("empty tier input")
	}
	if err := uc.validateInput(input); err != nil {
		return domain.TierPrices{}, err
	}
	if err := validateCommercial("request", input.Commercial); err != nil {
		return domain.TierPrices{}, err
	}
	return CalculateTierPricing(input.BasePrice, input.Commercial), nil
}

func (uc *DefaultPricingUsecase) InvalidateCache(ctx context.Context, event domain.ConfigChangedEvent) (int, error) {
	removed, err := uc.Cache.InvalidateForEvent(ctx, event)
	if err != nil {
		return removed, fmt.Errorf("invalidate cache for %s %s: %w", event.Entity, event.HotelID, err)
	}
	uc.Logger.Info("price cache invalidated",
		"entity", event.Entity,
		"hotel_id", event.HotelID,
		"room_type_id", event.RoomTypeID,
		"removed", removed,
	)
	return removed, nil
}

type stayDocuments struct {
	hotel    *domain.Hotel
	roomType *domain.RoomType
	mealPlan *domain.MealPlan
	market   *domain.Market
	seasons  []*domain.Season
	rates    []*domain.DailyRate
}

// loadDocuments fetches everything a stay is priced from in parallel. The
// rate range includes the departure day for closed-to-departure checks.
func (uc *DefaultPricingUsecase) loadDocuments(ctx context.Context, q pricingdto.PriceQuery) (*stayDocuments, error) {
	docs := &stayDocuments{}
	lastNight := q.CheckOut.AddDate(0, 0, -1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := uc.Repos.Hotels.GetHotelByID(gctx, q.HotelID)
		docs.hotel = h
		return err
	})
	g.Go(func() error {
		rt, err := uc.Repos.RoomTypes.GetRoomTypeByID(gctx, q.RoomTypeID)
		docs.roomType = rt
		return err
	})
	g.Go(func() error {
		mp, err := uc.Repos.MealPlans.GetMealPlanByID(gctx, q.MealPlanID)
		docs.mealPlan = mp
		return err
	})
	g.Go(func() error {
		m, err := uc.Repos.Markets.GetMarketByID(gctx, q.MarketID)
		docs.market = m
		return err
	})
	g.Go(func() error {
		seasons, err := uc.Repos.Seasons.FindSeasons(gctx, q.HotelID, q.MarketID, q.CheckIn, lastNight)
		docs.seasons = seasons
		return err
	})
	g.Go(func() error {
		rates, err := uc.Repos.Rates.FindRates(gctx, domain.RateQuery{
			RateKey: domain.RateKey{
				HotelID:    q.HotelID,
				RoomTypeID: q.RoomTypeID,
				MealPlanID: q.MealPlanID,
				MarketID:   q.MarketID,
			},
			From: q.CheckIn,
			To:   q.CheckOut,
		})
		docs.rates = rates
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if docs.roomType.HotelID != q.HotelID {
		return nil, domain.NewNotFound(domain.EntityRoomType, q.RoomTypeID)
	}
	if docs.mealPlan.HotelID != q.HotelID {
		return nil, domain.NewNotFound(domain.EntityMealPlan, q.MealPlanID)
	}
	if docs.market.HotelID != q.HotelID {
		return nil, domain.NewNotFound(domain.EntityMarket, q.MarketID)
	}
	return docs, nil
}

func (uc *DefaultPricingUsecase) computePrice(ctx context.Context, q pricingdto.PriceQuery) (*domain.PriceResult, error) {
	nights := domain.NightsBetween(q.CheckIn, q.CheckOut)
	if err := validateOccupancy(q.Occupancy, nights); err != nil {
		return nil, err
	}

	docs, err := uc.loadDocuments(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := ValidateConfiguration(docs.roomType, docs.market, docs.seasons, docs.rates); err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]*domain.DailyRate, len(docs.rates))
	for _, r := range docs.rates {
		byDate[domain.DateOnly(r.Date)] = r
	}

	result := &domain.PriceResult{
		HotelID:      q.HotelID,
		RoomTypeID:   q.RoomTypeID,
		MealPlanID:   q.MealPlanID,
		MarketID:     q.MarketID,
		CheckIn:      q.CheckIn,
		CheckOut:     q.CheckOut,
		Nights:       nights,
		Occupancy:    q.Occupancy,
		Channel:      q.Channel,
		RateType:     q.RateType,
		IsAvailable:  true,
		Restrictions: domain.RestrictionResult{IsBookable: true},
	}

	var (
		nightRates = make([]*domain.DailyRate, 0, nights)
		prices     = make([]float64, 0, nights)
		minAdults  int
	)
	for i := 0; i < nights; i++ {
		date := q.CheckIn.AddDate(0, 0, i)
		rate, ok := byDate[date]
		if !ok {
			return nil, domain.NewNotFound(domain.EntityRate, fmt.Sprintf("%s/%s/%s/%s", q.RoomTypeID, q.MealPlanID, q.MarketID, date.Format(time.DateOnly)))
		}
		season := domain.SeasonForDate(docs.seasons, date)
		settings := ResolveEffectiveSettings(docs.roomType, docs.market, season, rate)

		bd := priceOccupancy(rate, q.Occupancy, 1, settings, docs.roomType)
		if i == 0 {
			result.PricingModel = settings.PricingModel
			result.Currency = resolveCurrency(settings.Commercial.Currency, rate.Currency, docs.hotel.Currency, uc.Options.DefaultCurrency)
		}
		if !bd.IsAvailable {
			result.IsAvailable = false
			result.UnavailableReason = fmt.Sprintf("%s on %s", bd.UnavailableReason, date.Format(time.DateOnly))
			result.NightlyPrices = nil
			return result, nil
		}
		result.Warnings = append(result.Warnings, bd.DataQualityWarnings...)
		if settings.MinAdults > minAdults {
			minAdults = settings.MinAdults
		}

		tiers := CalculateTierPricing(bd.PerNightPrice, settings.Commercial)
		price := tiers.ForChannel(q.Channel, q.RateType)
		night := domain.NightPrice{
			Date:           date,
			BasePrice:      bd.PerNightPrice,
			Multiplier:     bd.Multiplier,
			CombinationKey: bd.CombinationKey,
			Tiers:          tiers,
			Price:          price,
			Final:          price,
		}
		if season != nil {
			night.SeasonID = season.ID
		}
		result.NightlyPrices = append(result.NightlyPrices, night)
		nightRates = append(nightRates, rate)
		prices = append(prices, price)
	}
	for _, w := range result.Warnings {
		uc.Logger.Warn("data quality", "hotel_id", q.HotelID, "room_type_id", q.RoomTypeID, "warning", w)
	}

	result.BasePrice, result.Tiers = sumNights(result.NightlyPrices)

	result.Restrictions = CheckStayRestrictions(nightRates, byDate[q.CheckOut], RestrictionParams{
		Adults:        q.Occupancy.Adults,
		CheckInDate:   q.CheckIn,
		CheckOutDate:  q.CheckOut,
		BookingDate:   q.BookingDate,
		RequiredRooms: q.RequiredRooms,
		MinAdults:     minAdults,
	})

	campaigns, err := uc.activeCampaigns(ctx, q.HotelID)
	if err != nil {
		return nil, err
	}
	bookedAt := q.BookingDate
	if bookedAt.IsZero() {
		bookedAt = uc.now()
	}
	selected := SelectCampaigns(campaigns, CampaignQuery{
		HotelID:    q.HotelID,
		RoomTypeID: q.RoomTypeID,
		MealPlanID: q.MealPlanID,
		MarketID:   q.MarketID,
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		Nights:     nights,
		Channel:    q.Channel,
		Now:        bookedAt,
	})
	outcome := ApplyCampaigns(prices, selected)
	for i := range result.NightlyPrices {
		result.NightlyPrices[i].Discount = outcome.NightDiscounts[i]
		result.NightlyPrices[i].Final = outcome.NightFinals[i]
	}
	result.AppliedCampaigns = outcome.Applied
	result.OriginalTotal = outcome.OriginalTotal
	result.TotalDiscount = outcome.TotalDiscount
	result.FinalTotal = outcome.FinalTotal
	for _, a := range outcome.Applied {
		uc.Metrics.RecordCampaign(q.HotelID, a.Code, result.Currency, a.Discount)
	}

	if q.DisplayCurrency != "" && q.DisplayCurrency != result.Currency {
		display, err := uc.convertDisplay(result.Currency, q.DisplayCurrency, result.OriginalTotal, result.FinalTotal)
		if err != nil {
			return nil, err
		}
		result.Display = display
	}
	return result, nil
}

func (uc *DefaultPricingUsecase) activeCampaigns(ctx context.Context, hotelID string) ([]*domain.Campaign, error) {
	if uc.Repos.Campaigns == nil {
		return nil, nil
	}
	return GetOrSet(ctx, uc.Cache, CategoryCampaign, CampaignKey(hotelID), uc.Cache.TTL(CategoryCampaign),
		func(ctx context.Context) ([]*domain.Campaign, error) {
			campaigns, err := uc.Repos.Campaigns.FindActiveCampaigns(ctx, hotelID)
			if err != nil {
				return nil, fmt.Errorf("load campaigns for hotel %s: %w", hotelID, err)
			}
			return campaigns, nil
		})
}

func (uc *DefaultPricingUsecase) convertDisplay(from, to string, amounts ...float64) (*domain.DisplayPrice, error) {
	if uc.Converter == nil {
		return nil, domain.NewBadRequest("display currency %s is not supported", to)
	}
	converted := make([]float64, len(amounts))
	for i, a := range amounts {
		v, err := uc.Converter.Convert(a, from, to)
		if err != nil {
			return nil, &domain.BadRequestError{Reason: fmt.Sprintf("convert %s to %s", from, to), Err: err}
		}
		converted[i] = round2(v)
	}
	return &domain.DisplayPrice{
		Currency:      to,
		OriginalTotal: converted[0],
		FinalTotal:    converted[1],
	}, nil
}

func sumNights(nights []domain.NightPrice) (float64, domain.TierPrices) {
	var base, cost, b2c, b2b, nrB2C, nrB2B []float64
	for _, n := range nights {
		base = append(base, n.BasePrice)
		cost = append(cost, n.Tiers.OperatorCost)
		b2c = append(b2c, n.Tiers.B2CPrice)
		b2b = append(b2b, n.Tiers.B2BPrice)
		nrB2C = append(nrB2C, n.Tiers.NonRefundableB2C)
		nrB2B = append(nrB2B, n.Tiers.NonRefundableB2B)
	}
	return sum2(base...), domain.TierPrices{
		OperatorCost:     sum2(cost...),
		B2CPrice:         sum2(b2c...),
		B2BPrice:         sum2(b2b...),
		NonRefundableB2C: sum2(nrB2C...),
		NonRefundableB2B: sum2(nrB2B...),
	}
}

func resolveCurrency(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func outcomeLabel(r *domain.PriceResult) string {
	switch {
	case !r.IsAvailable:
		return "unavailable"
	case !r.Restrictions.IsBookable:
		return "restricted"
	default:
		return "available"
	}
}

func errorKind(err error) string {
	var (
		notFound   *domain.NotFoundError
		badRequest *domain.BadRequestError
	)
	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.Is(err, domain.ErrMalformedOverride):
		return "malformed_override"
	case errors.As(err, &badRequest):
		return "bad_request"
	case errors.Is(err, domain.ErrRoomUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
