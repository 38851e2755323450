package exchange

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// StaticConverter converts through a fixed table quoted against one base
// currency: one unit of base buys rates[code] units of code.
type StaticConverter struct {
	mu    sync.RWMutex
	base  string
	rates map[string]decimal.Decimal
}

func NewStaticConverter(base string, rates map[string]float64) (*StaticConverter, error) {
	c := &StaticConverter{
		base:  strings.ToUpper(base),
		rates: make(map[string]decimal.Decimal, len(rates)+1),
	}
	c.rates[c.base] = decimal.NewFromInt(1)
	for code, rate := range rates {
		if err := c.SetRate(code, rate); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *StaticConverter) SetRate(code string, rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("rate for %s must be positive, got %v", code, rate)
	}
	c.mu.Lock()
	c.rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	c.mu.Unlock()
	return nil
}

func (c *StaticConverter) rate(code string) (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rates[strings.ToUpper(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	return r, nil
}

func (c *StaticConverter) Convert(amount float64, from, to string) (float64, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}
	fromRate, err := c.rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := c.rate(to)
	if err != nil {
		return 0, err
	}
	v, _ := decimal.NewFromFloat(amount).Div(fromRate).Mul(toRate).Round(2).Float64()
	return v, nil
}
