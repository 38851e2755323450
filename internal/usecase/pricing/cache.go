package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

type CacheCategory string

const (
	CategoryPrice    CacheCategory = "price"
	CategoryCampaign CacheCategory = "campaign"
)

type CacheTTLs struct {
	Price    time.Duration
	Campaign time.Duration
}

var DefaultCacheTTLs = CacheTTLs{
	Price:    5 * time.Minute,
	Campaign: 10 * time.Minute,
}

// PriceCache memoizes computed values in a CacheStore. Concurrent misses on
// the same key share one computation.
type PriceCache struct {
	store   domain.CacheStore
	ttls    CacheTTLs
	group   singleflight.Group
	metrics *metrics.PricingMetrics
	logger  *slog.Logger
}

func NewPriceCache(store domain.CacheStore, ttls CacheTTLs, m *metrics.PricingMetrics, logger *slog.Logger) *PriceCache {
	if ttls.Price <= 0 {
		ttls.Price = DefaultCacheTTLs.Price
	}
	if ttls.Campaign <= 0 {
		ttls.Campaign = DefaultCacheTTLs.Campaign
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceCache{store: store, ttls: ttls, metrics: m, logger: logger}
}

func (c *PriceCache) TTL(category CacheCategory) time.Duration {
	if c == nil {
		return 0
	}
	switch category {
	case CategoryCampaign:
		return c.ttls.Campaign
	default:
		return c.ttls.Price
	}
}

// GetOrSet returns the cached value under key or computes, stores and
// returns it. Store failures are logged and never fail the computation. A nil
// cache always computes.
func GetOrSet[T any](ctx context.Context, c *PriceCache, category CacheCategory, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if c == nil || c.store == nil {
		return compute(ctx)
	}
	if v, ok := lookup[T](ctx, c, key); ok {
		c.metrics.RecordCacheLookup(string(category), true)
		return v, nil
	}
	c.metrics.RecordCacheLookup(string(category), false)

	res, err, _ := c.group.Do(key, func() (any, error) {
		// another caller may have filled the key while this one waited
		if v, ok := lookup[T](ctx, c, key); ok {
			return v, nil
		}
		v, err := compute(ctx)
		if err != nil {
			return v, err
		}
		c.put(ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func lookup[T any](ctx context.Context, c *PriceCache, key string) (T, bool) {
	var v T
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.logger.Warn("price cache read failed", "key", key, "error", err)
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		c.logger.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.store.Delete(ctx, key)
		return v, false
	}
	return v, true
}

func (c *PriceCache) put(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("price cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.logger.Warn("price cache write failed", "key", key, "error", err)
	}
}

func (c *PriceCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.store == nil || len(keys) == 0 {
		return nil
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		return err
	}
	c.metrics.RecordInvalidation("point", len(keys))
	return nil
}

func (c *PriceCache) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	if c == nil || c.store == nil {
		return 0, nil
	}
	removed, err := c.store.DeletePrefix(ctx, prefix)
	if err != nil {
		return removed, err
	}
	c.metrics.RecordInvalidation("prefix", removed)
	return removed, nil
}

func (c *PriceCache) Clear(ctx context.Context) error {
	if c == nil || c.store == nil {
		return nil
	}
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	c.metrics.RecordInvalidation("clear", 0)
	return nil
}

// InvalidateForEvent drops every entry a configuration change can affect.
// The count covers price entries; the campaign list is deleted by key.
func (c *PriceCache) InvalidateForEvent(ctx context.Context, ev domain.ConfigChangedEvent) (int, error) {
	if ev.HotelID == "" {
		return 0, c.Clear(ctx)
	}
	prefix := HotelPricePrefix(ev.HotelID)
	switch ev.Entity {
	case domain.ConfigRate, domain.ConfigRoomType:
		if ev.RoomTypeID != "" {
			prefix = RoomTypePricePrefix(ev.HotelID, ev.RoomTypeID)
		}
	case domain.ConfigCampaign, domain.ConfigHotel:
		if err := c.Invalidate(ctx, CampaignKey(ev.HotelID)); err != nil {
			return 0, err
		}
	}
	return c.InvalidatePrefix(ctx, prefix)
}
