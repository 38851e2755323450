package pricing

import (
	"sort"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CampaignQuery struct {
	HotelID    string
	RoomTypeID string
	MealPlanID string
	MarketID   string
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	Channel    domain.SalesChannel
	Now        time.Time
}

func inScope(all bool, ids []string, id string) bool {
	if all || len(ids) == 0 || id == "" {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func campaignApplies(c *domain.Campaign, q CampaignQuery) bool {
	if !c.Active || (c.HotelID != "" && c.HotelID != q.HotelID) {
		return false
	}
	if !c.BookingWindow.Contains(q.Now) {
		return false
	}
	lastNight := domain.DateOnly(q.CheckOut).AddDate(0, 0, -1)
	if !c.StayWindow.Overlaps(q.CheckIn, lastNight) {
		return false
	}
	if c.MinNights > 0 && q.Nights < c.MinNights {
		return false
	}
	if c.MaxNights > 0 && q.Nights > c.MaxNights {
		return false
	}
	if q.Channel != "" && !c.Channels.Allows(q.Channel) {
		return false
	}
	return inScope(c.Scope.AllRoomTypes, c.Scope.RoomTypeIDs, q.RoomTypeID) &&
		inScope(c.Scope.AllMealPlans, c.Scope.MealPlanIDs, q.MealPlanID) &&
		inScope(c.Scope.AllMarkets, c.Scope.MarketIDs, q.MarketID)
}

// SelectCampaigns keeps the campaigns applicable to the stay, highest
// priority first. Equal priorities keep a stable order by code.
func SelectCampaigns(campaigns []*domain.Campaign, q CampaignQuery) []*domain.Campaign {
	selected := make([]*domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c != nil && campaignApplies(c, q) {
			selected = append(selected, c)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Priority != selected[j].Priority {
			return selected[i].Priority > selected[j].Priority
		}
		return selected[i].Code < selected[j].Code
	})
	return selected
}

type CampaignOutcome struct {
	NightDiscounts []float64
	NightFinals    []float64
	Applied        []domain.AppliedCampaign
	OriginalTotal  float64
	TotalDiscount  float64
	FinalTotal     float64
}

// ApplyCampaigns discounts the nightly prices with campaigns already in
// priority order. Combinable campaigns stack; a non-combinable campaign that
// takes a discount is the last one applied.
func ApplyCampaigns(nightly []float64, campaigns []*domain.Campaign) CampaignOutcome {
	current := make([]decimal.Decimal, len(nightly))
	discounts := make([]decimal.Decimal, len(nightly))
	original := decimal.Zero
	for i, p := range nightly {
		current[i] = dec(maxFloat(p, 0))
		discounts[i] = decimal.Zero
		original = original.Add(current[i])
	}

	out := CampaignOutcome{}
	for _, c := range campaigns {
		applied := applyCampaign(c, current, discounts)
		if applied.GreaterThan(decimal.Zero) {
			out.Applied = append(out.Applied, domain.AppliedCampaign{
				CampaignID: c.ID,
				Code:       c.Code,
				Name:       c.Name,
				Type:       c.Type,
				Priority:   c.Priority,
				Combinable: c.Combinable,
				Discount:   roundDec2(applied),
			})
		}
		if !c.Combinable && applied.GreaterThan(decimal.Zero) {
			break
		}
	}

	totalDiscount := decimal.Zero
	out.NightDiscounts = make([]float64, len(nightly))
	out.NightFinals = make([]float64, len(nightly))
	for i := range current {
		out.NightDiscounts[i] = roundDec2(discounts[i])
		out.NightFinals[i] = roundDec2(current[i])
		totalDiscount = totalDiscount.Add(discounts[i])
	}
	out.OriginalTotal = roundDec2(original)
	out.TotalDiscount = roundDec2(totalDiscount)
	out.FinalTotal = maxFloat(0, roundDec2(original.Sub(totalDiscount)))
	return out
}

// applyCampaign mutates current/discounts and returns the discount it took.
func applyCampaign(c *domain.Campaign, current, discounts []decimal.Decimal) decimal.Decimal {
	taken := decimal.Zero
	take := func(i int, amount decimal.Decimal) {
		if amount.GreaterThan(current[i]) {
			amount = current[i]
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return
		}
		current[i] = current[i].Sub(amount)
		discounts[i] = discounts[i].Add(amount)
		taken = taken.Add(amount)
	}

	switch c.Type {
	case domain.CampaignPercentage:
		pct := clampPercent(c.Value)
		for i := range current {
			take(i, percentOf(current[i], pct).Round(2))
		}
	case domain.CampaignFixed:
		remaining := dec(maxFloat(c.Value, 0))
		for i := range current {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			amount := decimal.Min(remaining, current[i])
			take(i, amount)
			remaining = remaining.Sub(amount)
		}
	case domain.CampaignFreeNights:
		for _, i := range freeNightIndexes(current, c.FreeNights, c.FreeNightsPosition) {
			take(i, current[i])
		}
	}
	return taken
}

func freeNightIndexes(current []decimal.Decimal, count int, position domain.FreeNightsPosition) []int {
	if count <= 0 {
		return nil
	}
	if count > len(current) {
		count = len(current)
	}
	idx := make([]int, len(current))
	for i := range idx {
		idx[i] = i
	}
	switch position {
	case domain.FreeNightsFirst:
	case domain.FreeNightsCheapest:
		sort.SliceStable(idx, func(a, b int) bool {
			return current[idx[a]].LessThan(current[idx[b]])
		})
	default:
		for l, r := 0, len(idx)-1; l < r; l, r = l+1, r-1 {
			idx[l], idx[r] = idx[r], idx[l]
		}
	}
	return idx[:count]
}
