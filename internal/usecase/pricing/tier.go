package pricing

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateTierPricing turns a base price into operator cost, consumer (B2C)
// and reseller (B2B) prices. Each figure is rounded to cents on its own.
func CalculateTierPricing(basePrice float64, cs domain.CommercialSettings) domain.TierPrices {
	base := dec(basePrice)

	var operatorCost, b2c, b2b decimal.Decimal
	switch cs.WorkingMode {
	case domain.WorkingModeCommission:
		// the stored price is gross and already carries the commission
		operatorCost = base.Div(one.Add(dec(cs.CommissionRate).Div(hundred)))
		b2c = base.Add(percentOf(base, cs.Markup.B2C))
		b2b = base.Sub(base.Mul(resellerDiscount(cs.CommissionRate, cs.AgencyMarginShare)).Div(hundred))
	default:
		operatorCost = base
		b2c = base.Add(percentOf(base, cs.Markup.B2C))
		b2b = base.Add(percentOf(base, cs.Markup.B2B))
	}

	tiers := domain.TierPrices{
		OperatorCost: roundDec2(operatorCost),
		B2CPrice:     roundDec2(b2c),
		B2BPrice:     roundDec2(b2b),
	}
	// cent rounding may not take the reseller price below cost
	if cs.WorkingMode == domain.WorkingModeCommission && tiers.B2BPrice < tiers.OperatorCost {
		tiers.B2BPrice = tiers.OperatorCost
	}

	nonRef := clampPercent(cs.NonRefundableDiscount)
	tiers.NonRefundableB2C = roundDec2(b2c.Sub(percentOf(b2c, nonRef)))
	tiers.NonRefundableB2B = roundDec2(b2b.Sub(percentOf(b2b, nonRef)))
	return tiers
}

// RealMargin is the operator margin embedded in a gross price, as a
// percentage of that gross price.
func RealMargin(commissionRate float64) float64 {
	return realMargin(commissionRate).InexactFloat64()
}

func realMargin(commissionRate float64) decimal.Decimal {
	cr := dec(commissionRate)
	if cr.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return cr.Div(hundred.Add(cr)).Mul(hundred)
}

// resellerDiscount is the reseller's share of the real margin, in percent off gross.
func resellerDiscount(commissionRate, marginShare float64) decimal.Decimal {
	return percentOf(realMargin(commissionRate), clampPercent(marginShare))
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
