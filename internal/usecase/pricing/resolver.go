package pricing

import "github.com/LavaJover/shvark-pricing-service/internal/domain"

type SettingsSource string

const (
	SourceDefault  SettingsSource = "default"
	SourceRoomType SettingsSource = "room_type"
	SourceMarket   SettingsSource = "market"
	SourceSeason   SettingsSource = "season"
	SourceRate     SettingsSource = "rate"
)

// SettingsSources records which layer supplied each settings group.
type SettingsSources struct {
	PricingModel   SettingsSource `json:"pricingModel"`
	MinAdults      SettingsSource `json:"minAdults"`
	Multipliers    SettingsSource `json:"multipliers"`
	Commercial     SettingsSource `json:"commercial"`
	ChildAgeGroups SettingsSource `json:"childAgeGroups"`
}

type EffectiveSettings struct {
	PricingModel       domain.PricingModel
	BaseOccupancy      int
	MinAdults          int
	MultiplierTemplate *domain.MultiplierTemplate
	Commercial         domain.CommercialSettings
	ChildAgeGroups     []domain.ChildAgeGroup
	Sources            SettingsSources
}

// UsesMultipliers is true for per-person pricing with a template in effect.
func (s EffectiveSettings) UsesMultipliers() bool {
	return s.PricingModel == domain.PricingModelPerPerson && s.MultiplierTemplate != nil
}

// RoundingRule defaults to none when no template is in effect.
func (s EffectiveSettings) RoundingRule() domain.RoundingRule {
	if s.MultiplierTemplate == nil || s.MultiplierTemplate.RoundingRule == "" {
		return domain.RoundingNone
	}
	return s.MultiplierTemplate.RoundingRule
}

// settingsLayer is one link of the override chain. Nil fields leave the
// value from lower layers untouched.
type settingsLayer struct {
	source         SettingsSource
	pricingModel   *domain.PricingModel
	minAdults      *int
	multipliers    *domain.MultiplierTemplate
	commercial     *domain.CommercialSettings
	childAgeGroups []domain.ChildAgeGroup
	hasAgeGroups   bool
}

func roomTypeLayer(rt *domain.RoomType) settingsLayer {
	layer := settingsLayer{source: SourceRoomType}
	if rt == nil {
		return layer
	}
	if rt.PricingModel != "" {
		model := rt.PricingModel
		layer.pricingModel = &model
	}
	if rt.MinAdults > 0 {
		minAdults := rt.MinAdults
		layer.minAdults = &minAdults
	}
	layer.multipliers = rt.MultiplierTemplate
	return layer
}

func overrideLayer(source SettingsSource, o *domain.RoomTypeOverride) settingsLayer {
	layer := settingsLayer{source: source}
	if o == nil {
		return layer
	}
	if o.OverridePricingModel && o.PricingModel != "" {
		model := o.PricingModel
		layer.pricingModel = &model
	}
	if o.OverrideMinAdults {
		minAdults := o.MinAdults
		layer.minAdults = &minAdults
	}
	if o.OverrideMultipliers {
		layer.multipliers = o.MultiplierTemplate
	}
	return layer
}

func marketLayer(m *domain.Market, roomTypeID string) settingsLayer {
	if m == nil {
		return settingsLayer{source: SourceMarket}
	}
	layer := overrideLayer(SourceMarket, m.OverrideFor(roomTypeID))
	commercial := m.Commercial
	layer.commercial = &commercial
	layer.childAgeGroups = m.ChildAgeGroups
	layer.hasAgeGroups = true
	return layer
}

func seasonLayer(s *domain.Season, roomTypeID string) settingsLayer {
	if s == nil {
		return settingsLayer{source: SourceSeason}
	}
	var layer settingsLayer
	if !s.InheritPricing {
		layer = overrideLayer(SourceSeason, s.OverrideFor(roomTypeID))
	} else {
		layer = settingsLayer{source: SourceSeason}
	}
	if !s.InheritCommercial {
		commercial := s.Commercial
		layer.commercial = &commercial
	}
	if !s.InheritChildAgeGroups {
		layer.childAgeGroups = s.ChildAgeGroups
		layer.hasAgeGroups = true
	}
	return layer
}

// rateLayer only ever carries a multiplier template: rates do not override
// the pricing model or minimum adults.
func rateLayer(r *domain.DailyRate) settingsLayer {
	layer := settingsLayer{source: SourceRate}
	if r != nil && r.UseMultiplierOverride && r.MultiplierOverride != nil {
		layer.multipliers = r.MultiplierOverride
	}
	return layer
}

func defaultSettings(rt *domain.RoomType) EffectiveSettings {
	return EffectiveSettings{
		PricingModel:  domain.PricingModelUnit,
		BaseOccupancy: rt.EffectiveBaseOccupancy(),
		MinAdults:     1,
		Commercial:    domain.CommercialSettings{WorkingMode: domain.WorkingModeNet},
		Sources: SettingsSources{
			PricingModel:   SourceDefault,
			MinAdults:      SourceDefault,
			Multipliers:    SourceDefault,
			Commercial:     SourceDefault,
			ChildAgeGroups: SourceDefault,
		},
	}
}

func foldLayers(base EffectiveSettings, layers ...settingsLayer) EffectiveSettings {
	out := base
	for _, l := range layers {
		if l.pricingModel != nil {
			out.PricingModel = *l.pricingModel
			out.Sources.PricingModel = l.source
		}
		if l.minAdults != nil {
			out.MinAdults = *l.minAdults
			out.Sources.MinAdults = l.source
		}
		if l.multipliers != nil {
			out.MultiplierTemplate = l.multipliers
			out.Sources.Multipliers = l.source
		}
		if l.commercial != nil {
			out.Commercial = *l.commercial
			out.Sources.Commercial = l.source
		}
		if l.hasAgeGroups {
			out.ChildAgeGroups = l.childAgeGroups
			out.Sources.ChildAgeGroups = l.source
		}
	}
	if out.Commercial.WorkingMode == "" {
		out.Commercial.WorkingMode = domain.WorkingModeNet
	}
	return out
}

// ResolveEffectiveSettings merges RoomType → Market → Season → Rate into one
// settings value. It is pure; absent layers are skipped.
func ResolveEffectiveSettings(rt *domain.RoomType, market *domain.Market, season *domain.Season, rate *domain.DailyRate) EffectiveSettings {
	var roomTypeID string
	if rt != nil {
		roomTypeID = rt.ID
	}
	return foldLayers(
		defaultSettings(rt),
		roomTypeLayer(rt),
		marketLayer(market, roomTypeID),
		seasonLayer(season, roomTypeID),
		rateLayer(rate),
	)
}
