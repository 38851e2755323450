package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

type expiredRemover interface {
	RemoveExpired() int
}

type messageSource interface {
	Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error)
}

type messageHandler interface {
	Handle(ctx context.Context, msg domain.Message) (int, error)
}

// InvalidationConsumer wires a topic of configuration events to the cache.
type InvalidationConsumer struct {
	Source  messageSource
	Handler messageHandler
	Topic   string
	GroupID string
}

type BackgroundTasks struct {
	Cache         expiredRemover
	SweepInterval time.Duration
	Invalidation  *InvalidationConsumer
	Logger        *slog.Logger
}

func NewBackgroundTasks(cache expiredRemover, sweepInterval time.Duration, invalidation *InvalidationConsumer, logger *slog.Logger) *BackgroundTasks {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackgroundTasks{
		Cache:         cache,
		SweepInterval: sweepInterval,
		Invalidation:  invalidation,
		Logger:        logger,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.Cache != nil && bt.SweepInterval > 0 {
		go bt.startCacheSweep(ctx)
	}
	if bt.Invalidation != nil && bt.Invalidation.Source != nil {
		go bt.startInvalidationConsumer(ctx)
	}
}

func (bt *BackgroundTasks) startCacheSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := bt.Cache.RemoveExpired(); removed > 0 {
				bt.Logger.Debug("expired price cache entries removed", "removed", removed)
			}
		}
	}
}

func (bt *BackgroundTasks) startInvalidationConsumer(ctx context.Context) {
	inv := bt.Invalidation
	msgs, err := inv.Source.Subscribe(ctx, inv.Topic, inv.GroupID)
	if err != nil {
		bt.Logger.Error("failed to subscribe to config events", "topic", inv.Topic, "error", err)
		return
	}
	bt.Logger.Info("listening for config events", "topic", inv.Topic, "group_id", inv.GroupID)
	bt.consume(ctx, msgs)
}

func (bt *BackgroundTasks) consume(ctx context.Context, msgs <-chan domain.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			removed, err := bt.Invalidation.Handler.Handle(ctx, msg)
			if err != nil {
				bt.Logger.Error("config event not applied", "key", string(msg.Key), "error", err)
				continue
			}
			bt.Logger.Debug("config event applied", "key", string(msg.Key), "removed", removed)
		}
	}
}
