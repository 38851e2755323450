package pricing

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

func validPricingModel(m domain.PricingModel) bool {
	return m == domain.PricingModelUnit || m == domain.PricingModelPerPerson
}

func validRoundingRule(r domain.RoundingRule) bool {
	switch r {
	case "", domain.RoundingNone, domain.RoundingUp, domain.RoundingDown,
		domain.RoundingNearest, domain.RoundingNearest5, domain.RoundingNearest10:
		return true
	}
	return false
}

func validateTemplate(owner string, t *domain.MultiplierTemplate) error {
	if t == nil {
		return nil
	}
	if !validRoundingRule(t.RoundingRule) {
		return domain.NewMalformedOverride("%s: unknown rounding rule %q", owner, t.RoundingRule)
	}
	for adults, m := range t.AdultMultipliers {
		if adults < 1 || m < 0 {
			return domain.NewMalformedOverride("%s: adult multiplier %d=%v", owner, adults, m)
		}
	}
	for _, e := range t.Combinations {
		if e.OverrideMultiplier != nil && *e.OverrideMultiplier < 0 {
			return domain.NewMalformedOverride("%s: negative override for combination %s", owner, e.Key)
		}
	}
	return nil
}

func validateOverride(owner string, o domain.RoomTypeOverride) error {
	if o.OverridePricingModel && !validPricingModel(o.PricingModel) {
		return domain.NewMalformedOverride("%s: pricing model override %q", owner, o.PricingModel)
	}
	if o.OverrideMinAdults && o.MinAdults < 1 {
		return domain.NewMalformedOverride("%s: minimum adults override %d", owner, o.MinAdults)
	}
	if o.OverrideMultipliers {
		if o.MultiplierTemplate == nil {
			return domain.NewMalformedOverride("%s: multiplier override without template", owner)
		}
		return validateTemplate(owner, o.MultiplierTemplate)
	}
	return nil
}

func validateCommercial(owner string, cs domain.CommercialSettings) error {
	switch cs.WorkingMode {
	case "", domain.WorkingModeNet, domain.WorkingModeCommission:
	default:
		return domain.NewMalformedOverride("%s: unknown working mode %q", owner, cs.WorkingMode)
	}
	if cs.CommissionRate < 0 || cs.CommissionRate > 100 {
		return domain.NewMalformedOverride("%s: commission rate %v out of range", owner, cs.CommissionRate)
	}
	return nil
}

// ValidateConfiguration rejects configuration documents whose override flags
// point at missing or unusable data. Only the room type being priced is
// checked.
func ValidateConfiguration(rt *domain.RoomType, market *domain.Market, seasons []*domain.Season, rates []*domain.DailyRate) error {
	if rt != nil {
		if rt.PricingModel != "" && !validPricingModel(rt.PricingModel) {
			return domain.NewMalformedOverride("room type %s: pricing model %q", rt.ID, rt.PricingModel)
		}
		if err := validateTemplate("room type "+rt.ID, rt.MultiplierTemplate); err != nil {
			return err
		}
	}
	var roomTypeID string
	if rt != nil {
		roomTypeID = rt.ID
	}
	if market != nil {
		if err := validateCommercial("market "+market.ID, market.Commercial); err != nil {
			return err
		}
		if o := market.OverrideFor(roomTypeID); o != nil {
			if err := validateOverride("market "+market.ID, *o); err != nil {
				return err
			}
		}
	}
	for _, s := range seasons {
		if s == nil {
			continue
		}
		if !s.InheritCommercial {
			if err := validateCommercial("season "+s.ID, s.Commercial); err != nil {
				return err
			}
		}
		if s.InheritPricing {
			continue
		}
		if o := s.OverrideFor(roomTypeID); o != nil {
			if err := validateOverride("season "+s.ID, *o); err != nil {
				return err
			}
		}
	}
	for _, r := range rates {
		if r == nil || !r.UseMultiplierOverride {
			continue
		}
		if r.MultiplierOverride == nil {
			return domain.NewMalformedOverride("rate %s: multiplier override enabled without template", r.ID)
		}
		if err := validateTemplate("rate "+r.ID, r.MultiplierOverride); err != nil {
			return err
		}
	}
	return nil
}
