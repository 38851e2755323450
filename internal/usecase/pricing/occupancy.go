package pricing

import (
	"fmt"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/shopspring/decimal"
)

// ConfigLayers are the documents a daily rate is resolved against.
type ConfigLayers struct {
	RoomType *domain.RoomType
	Market   *domain.Market
	Season   *domain.Season
	Hotel    *domain.Hotel
}

// CalculateOccupancyPrice prices a stay of nights at one daily rate, before
// any commercial markup.
func CalculateOccupancyPrice(rate *domain.DailyRate, occ domain.Occupancy, nights int, layers ConfigLayers) (*domain.PriceBreakdown, error) {
	if rate == nil {
		return nil, domain.NewNotFound(domain.EntityRate, "")
	}
	if err := validateOccupancy(occ, nights); err != nil {
		return nil, err
	}
	settings := ResolveEffectiveSettings(layers.RoomType, layers.Market, layers.Season, rate)
	return priceOccupancy(rate, occ, nights, settings, layers.RoomType), nil
}

func validateOccupancy(occ domain.Occupancy, nights int) error {
	if occ.Adults < 1 {
		return domain.NewBadRequest("adults must be at least 1, got %d", occ.Adults)
	}
	if nights < 1 {
		return domain.NewBadRequest("nights must be at least 1, got %d", nights)
	}
	for i, c := range occ.Children {
		if c.Age < 0 {
			return domain.NewBadRequest("child %d has negative age %d", i+1, c.Age)
		}
	}
	return nil
}

func priceOccupancy(rate *domain.DailyRate, occ domain.Occupancy, nights int, settings EffectiveSettings, rt *domain.RoomType) *domain.PriceBreakdown {
	bd := &domain.PriceBreakdown{
		PricingModel: settings.PricingModel,
		IsAvailable:  true,
		Nights:       nights,
		Multiplier:   1,
	}

	if reason := capacityViolation(rt, occ); reason != "" {
		bd.IsAvailable = false
		bd.UnavailableReason = reason
		return bd
	}

	switch {
	case settings.UsesMultipliers():
		priceWithMultipliers(bd, rate, occ, settings)
	case settings.PricingModel == domain.PricingModelPerPerson:
		priceOccupancyTable(bd, rate, occ)
	default:
		priceUnit(bd, rate, occ, settings.BaseOccupancy)
	}
	if !bd.IsAvailable {
		return bd
	}

	perNight := decimal.Zero
	for _, l := range bd.Lines {
		perNight = perNight.Add(dec(l.Amount))
	}
	bd.PerNightPrice = roundDec2(perNight)
	bd.Total = roundDec2(perNight.Mul(decimal.NewFromInt(int64(nights))))
	return bd
}

func capacityViolation(rt *domain.RoomType, occ domain.Occupancy) string {
	if rt == nil {
		return ""
	}
	if rt.MaxAdults > 0 && occ.Adults > rt.MaxAdults {
		return fmt.Sprintf("room type allows at most %d adults", rt.MaxAdults)
	}
	if rt.MaxChildren > 0 && len(occ.Children) > rt.MaxChildren {
		return fmt.Sprintf("room type allows at most %d children", rt.MaxChildren)
	}
	if rt.MaxOccupancy > 0 && occ.Adults+len(occ.Children) > rt.MaxOccupancy {
		return fmt.Sprintf("room type allows at most %d guests", rt.MaxOccupancy)
	}
	return ""
}

func priceUnit(bd *domain.PriceBreakdown, rate *domain.DailyRate, occ domain.Occupancy, baseOccupancy int) {
	bd.BasePrice = rate.UnitPrice
	bd.Lines = append(bd.Lines, domain.LineItem{
		Kind:        domain.LineBase,
		Description: fmt.Sprintf("unit price for %d guests", baseOccupancy),
		Quantity:    1,
		UnitAmount:  rate.UnitPrice,
		Amount:      rate.UnitPrice,
	})

	// the supplement is taken once, however many adults are missing
	if occ.Adults < baseOccupancy && rate.SingleSupplement != 0 {
		bd.Lines = append(bd.Lines, domain.LineItem{
			Kind:        domain.LineSingleSupplement,
			Description: "reduced occupancy",
			Quantity:    1,
			UnitAmount:  -rate.SingleSupplement,
			Amount:      -rate.SingleSupplement,
		})
	}
	if extra := occ.Adults - baseOccupancy; extra > 0 {
		bd.Lines = append(bd.Lines, domain.LineItem{
			Kind:        domain.LineExtraAdult,
			Description: "extra adult",
			Quantity:    extra,
			UnitAmount:  rate.ExtraAdult,
			Amount:      roundDec2(dec(rate.ExtraAdult).Mul(decimal.NewFromInt(int64(extra)))),
		})
	}
	appendChildLines(bd, rate, occ.Children)
}

func priceOccupancyTable(bd *domain.PriceBreakdown, rate *domain.DailyRate, occ domain.Occupancy) {
	base, ok := rate.OccupancyPricing[occ.Adults]
	if !ok {
		bd.DataQualityWarnings = append(bd.DataQualityWarnings,
			fmt.Sprintf("rate %s has no occupancy price for %d adults", rate.ID, occ.Adults))
	}
	bd.BasePrice = base
	bd.Lines = append(bd.Lines, domain.LineItem{
		Kind:        domain.LineBase,
		Description: fmt.Sprintf("occupancy price for %d adults", occ.Adults),
		Quantity:    1,
		UnitAmount:  base,
		Amount:      base,
	})
	appendChildLines(bd, rate, occ.Children)
}

// childPrice: per-order list, then age tier, then the flat infant price for
// children under InfantAgeLimit, then the flat extra-child price.
func childPrice(rate *domain.DailyRate, order, age int) (float64, string) {
	if p, ok := rate.ChildOrderPrice(order); ok {
		return p, fmt.Sprintf("child %d (order price)", order)
	}
	if p, ok := rate.ChildAgePrice(age); ok {
		return p, fmt.Sprintf("child %d aged %d (age tier)", order, age)
	}
	if age < domain.InfantAgeLimit {
		return rate.ExtraInfant, fmt.Sprintf("child %d (infant)", order)
	}
	return rate.ExtraChild, fmt.Sprintf("child %d (extra child)", order)
}

func appendChildLines(bd *domain.PriceBreakdown, rate *domain.DailyRate, children []domain.Child) {
	for i, c := range children {
		price, desc := childPrice(rate, i+1, c.Age)
		bd.Lines = append(bd.Lines, domain.LineItem{
			Kind:        domain.LineChild,
			Description: desc,
			Quantity:    1,
			UnitAmount:  price,
			Amount:      price,
		})
	}
}

// childAgeGroup returns the explicit group when supplied, otherwise the
// first configured group whose range contains the age.
func childAgeGroup(c domain.Child, groups []domain.ChildAgeGroup) string {
	if c.AgeGroup != "" {
		return c.AgeGroup
	}
	for _, g := range groups {
		if g.Contains(c.Age) {
			return g.Code
		}
	}
	return domain.DefaultChildAgeGroup
}

func combinationKeyFor(occ domain.Occupancy, groups []domain.ChildAgeGroup) domain.CombinationKey {
	ageGroups := make([]string, len(occ.Children))
	for i, c := range occ.Children {
		ageGroups[i] = childAgeGroup(c, groups)
	}
	return domain.NewCombinationKey(occ.Adults, ageGroups).Normalize()
}

// calculatedMultiplier is the algorithmic fallback; missing entries count as 1.
func calculatedMultiplier(t *domain.MultiplierTemplate, key domain.CombinationKey) decimal.Decimal {
	m := one
	if v, ok := t.AdultMultipliers[key.Adults]; ok {
		m = dec(v)
	}
	for _, c := range key.Children {
		if v, ok := childMultiplier(t.ChildMultipliers[c.Order], c.AgeGroup); ok {
			m = m.Mul(dec(v))
		}
	}
	return m
}

// childMultiplier matches age-group codes case-insensitively.
func childMultiplier(byGroup map[string]float64, group string) (float64, bool) {
	if v, ok := byGroup[group]; ok {
		return v, true
	}
	want := domain.NormalizeAgeGroup(group)
	for code, v := range byGroup {
		if domain.NormalizeAgeGroup(code) == want {
			return v, true
		}
	}
	return 0, false
}

func priceWithMultipliers(bd *domain.PriceBreakdown, rate *domain.DailyRate, occ domain.Occupancy, settings EffectiveSettings) {
	template := settings.MultiplierTemplate
	bd.UsesMultipliers = true

	base, ok := rate.OccupancyPricing[settings.BaseOccupancy]
	if !ok {
		base = rate.UnitPrice
	}
	bd.BasePrice = base

	key := combinationKeyFor(occ, settings.ChildAgeGroups)
	bd.CombinationKey = key.Canonical()

	var multiplier decimal.Decimal
	if entry, found := template.LookupCombination(key); found {
		if !entry.IsActive {
			bd.IsAvailable = false
			bd.UnavailableReason = fmt.Sprintf("occupancy combination %s is not sellable", bd.CombinationKey)
			return
		}
		multiplier = dec(entry.Multiplier())
		bd.CombinationSource = domain.CombinationFromTable
		if entry.OverrideMultiplier != nil {
			bd.CombinationSource = domain.CombinationFromOverride
		}
	} else {
		multiplier = calculatedMultiplier(template, key)
		bd.CombinationSource = domain.CombinationCalculated
	}
	bd.Multiplier = multiplier.InexactFloat64()

	rule := settings.RoundingRule()
	bd.RoundingApplied = rule
	raw := dec(base).Mul(multiplier)
	rounded := applyRounding(raw, rule)

	bd.Lines = append(bd.Lines, domain.LineItem{
		Kind:        domain.LineBase,
		Description: fmt.Sprintf("base occupancy price for %d adults", settings.BaseOccupancy),
		Quantity:    1,
		UnitAmount:  base,
		Amount:      base,
	})
	if adj := raw.Sub(dec(base)); !adj.IsZero() {
		bd.Lines = append(bd.Lines, domain.LineItem{
			Kind:        domain.LineMultiplier,
			Description: fmt.Sprintf("multiplier %s for %s", multiplier.String(), bd.CombinationKey),
			Quantity:    1,
			UnitAmount:  adj.InexactFloat64(),
			Amount:      adj.InexactFloat64(),
		})
	}
	if adj := rounded.Sub(raw); !adj.IsZero() {
		bd.Lines = append(bd.Lines, domain.LineItem{
			Kind:        domain.LineRounding,
			Description: fmt.Sprintf("rounding (%s)", rule),
			Quantity:    1,
			UnitAmount:  adj.InexactFloat64(),
			Amount:      adj.InexactFloat64(),
		})
	}
}
