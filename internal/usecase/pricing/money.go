package pricing

import (
	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// round2 rounds half away from zero to cents.
func round2(v float64) float64 {
	return dec(v).Round(2).InexactFloat64()
}

func roundDec2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func sum2(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return roundDec2(total)
}

// applyRounding rounds a per-night multiplier price. Whole-unit rules work on
// a value first settled to 6 decimals so float noise such as
// 70.00000000000001 does not ceil to 71.
func applyRounding(d decimal.Decimal, rule domain.RoundingRule) decimal.Decimal {
	settled := d.Round(6)
	switch rule {
	case domain.RoundingUp:
		return settled.Ceil()
	case domain.RoundingDown:
		return settled.Floor()
	case domain.RoundingNearest:
		return settled.Round(0)
	case domain.RoundingNearest5:
		return roundToMultiple(settled, 5)
	case domain.RoundingNearest10:
		return roundToMultiple(settled, 10)
	default:
		return d
	}
}

func roundToMultiple(d decimal.Decimal, step int64) decimal.Decimal {
	s := decimal.NewFromInt(step)
	return d.Div(s).Round(0).Mul(s)
}

func percentOf(d decimal.Decimal, pct float64) decimal.Decimal {
	return d.Mul(dec(pct)).Div(hundred)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
