package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

type CacheInvalidator interface {
	InvalidateCache(ctx context.Context, event domain.ConfigChangedEvent) (int, error)
}

// ConfigEventHandler turns configuration change messages into cache
// invalidations.
type ConfigEventHandler struct {
	invalidator CacheInvalidator
}

func NewConfigEventHandler(invalidator CacheInvalidator) *ConfigEventHandler {
	return &ConfigEventHandler{invalidator: invalidator}
}

func DecodeConfigChangedEvent(value []byte) (domain.ConfigChangedEvent, error) {
	var ev domain.ConfigChangedEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return ev, fmt.Errorf("decode config event: %w", err)
	}
	switch ev.Entity {
	case domain.ConfigHotel, domain.ConfigRoomType, domain.ConfigMarket,
		domain.ConfigSeason, domain.ConfigRate, domain.ConfigCampaign:
	default:
		return ev, fmt.Errorf("decode config event: unknown entity %q", ev.Entity)
	}
	return ev, nil
}

func (h *ConfigEventHandler) Handle(ctx context.Context, msg domain.Message) (int, error) {
	ev, err := DecodeConfigChangedEvent(msg.Value)
	if err != nil {
		return 0, err
	}
	return h.invalidator.InvalidateCache(ctx, ev)
}

// ConfigChangedMessage encodes an event the way the handler expects it.
func ConfigChangedMessage(ev domain.ConfigChangedEvent) (domain.Message, error) {
	v, err := json.Marshal(ev)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Key: []byte(ev.HotelID), Value: v}, nil
}
