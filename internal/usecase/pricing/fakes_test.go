package pricing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

// memoryCatalog serves every configuration repository from maps.
type memoryCatalog struct {
	hotels    map[string]*domain.Hotel
	roomTypes map[string]*domain.RoomType
	mealPlans map[string]*domain.MealPlan
	markets   map[string]*domain.Market
	seasons   []*domain.Season
	rates     []*domain.DailyRate
	campaigns []*domain.Campaign

	rateCalls     atomic.Int32
	campaignCalls atomic.Int32
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		hotels:    map[string]*domain.Hotel{},
		roomTypes: map[string]*domain.RoomType{},
		mealPlans: map[string]*domain.MealPlan{},
		markets:   map[string]*domain.Market{},
	}
}

func (c *memoryCatalog) repositories() Repositories {
	return Repositories{
		Hotels:    c,
		RoomTypes: c,
		MealPlans: c,
		Markets:   c,
		Seasons:   c,
		Rates:     c,
		Campaigns: c,
	}
}

func (c *memoryCatalog) GetHotelByID(ctx context.Context, id string) (*domain.Hotel, error) {
	if h, ok := c.hotels[id]; ok {
		return h, nil
	}
	return nil, domain.NewNotFound(domain.EntityHotel, id)
}

func (c *memoryCatalog) GetRoomTypeByID(ctx context.Context, id string) (*domain.RoomType, error) {
	if rt, ok := c.roomTypes[id]; ok {
		return rt, nil
	}
	return nil, domain.NewNotFound(domain.EntityRoomType, id)
}

func (c *memoryCatalog) GetMealPlanByID(ctx context.Context, id string) (*domain.MealPlan, error) {
	if mp, ok := c.mealPlans[id]; ok {
		return mp, nil
	}
	return nil, domain.NewNotFound(domain.EntityMealPlan, id)
}

func (c *memoryCatalog) GetMarketByID(ctx context.Context, id string) (*domain.Market, error) {
	if m, ok := c.markets[id]; ok {
		return m, nil
	}
	return nil, domain.NewNotFound(domain.EntityMarket, id)
}

func (c *memoryCatalog) FindSeasons(ctx context.Context, hotelID, marketID string, from, to time.Time) ([]*domain.Season, error) {
	var out []*domain.Season
	for _, s := range c.seasons {
		if s.HotelID == hotelID && s.MarketID == marketID && !s.StartDate.After(to) && !s.EndDate.Before(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *memoryCatalog) FindRates(ctx context.Context, q domain.RateQuery) ([]*domain.DailyRate, error) {
	c.rateCalls.Add(1)
	var out []*domain.DailyRate
	for _, r := range c.rates {
		if r.HotelID != q.HotelID || r.RoomTypeID != q.RoomTypeID || r.MealPlanID != q.MealPlanID || r.MarketID != q.MarketID {
			continue
		}
		if r.Date.Before(q.From) || r.Date.After(q.To) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *memoryCatalog) FindActiveCampaigns(ctx context.Context, hotelID string) ([]*domain.Campaign, error) {
	c.campaignCalls.Add(1)
	var out []*domain.Campaign
	for _, cp := range c.campaigns {
		if cp.HotelID == hotelID && cp.Active {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (c *memoryCatalog) addRates(roomTypeID, mealPlanID, from string, nights int, mutate func(r *domain.DailyRate)) {
	start := day(from)
	for i := 0; i < nights; i++ {
		r := &domain.DailyRate{
			ID:         roomTypeID + "-" + start.AddDate(0, 0, i).Format(time.DateOnly),
			HotelID:    "h1",
			RoomTypeID: roomTypeID,
			MealPlanID: mealPlanID,
			MarketID:   "m1",
			Date:       start.AddDate(0, 0, i),
			Currency:   "EUR",
			UnitPrice:  100,
			ExtraAdult: 40,
			ExtraChild: 20,
			Allotment:  5,
		}
		if mutate != nil {
			mutate(r)
		}
		c.rates = append(c.rates, r)
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.QuoteEvent
}

func (p *recordingPublisher) PublishQuote(ctx context.Context, ev domain.QuoteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

type fixedConverter map[string]float64

func (c fixedConverter) Convert(amount float64, from, to string) (float64, error) {
	rate, ok := c[from+to]
	if !ok {
		return 0, domain.ErrInvalidQuery
	}
	return amount * rate, nil
}
