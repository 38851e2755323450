package logger

import (
	"context"
	"strings"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"gorm.io/gorm"
)

// QuoteLogEntry is the audit row written for every multi-room quote.
type QuoteLogEntry struct {
	ID            uint   `gorm:"primaryKey"`
	QuoteIDs      string `gorm:"type:text"`
	HotelID       string `gorm:"index"`
	MarketID      string
	Channel       string
	Rooms         int
	Success       bool
	Currency      string
	OriginalTotal float64
	FinalTotal    float64
	Timestamp     time.Time
}

func (QuoteLogEntry) TableName() string { return "quote_logs" }

type PGQuoteLogger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPGQuoteLogger(db *gorm.DB) *PGQuoteLogger {
	return &PGQuoteLogger{db: db, now: time.Now}
}

func (l *PGQuoteLogger) PublishQuote(ctx context.Context, event domain.QuoteEvent) error {
	entry := QuoteLogEntry{
		QuoteIDs:      strings.Join(event.QuoteIDs, ","),
		HotelID:       event.HotelID,
		MarketID:      event.MarketID,
		Channel:       string(event.Channel),
		Rooms:         event.Rooms,
		Success:       event.Success,
		Currency:      event.Currency,
		OriginalTotal: event.OriginalTotal,
		FinalTotal:    event.FinalTotal,
		Timestamp:     l.now(),
	}
	return l.db.WithContext(ctx).Create(&entry).Error
}

// MultiQuotePublisher fans a quote out to every sink and returns the first
// failure after trying them all.
type MultiQuotePublisher []domain.QuotePublisher

func (m MultiQuotePublisher) PublishQuote(ctx context.Context, event domain.QuoteEvent) error {
	var first error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.PublishQuote(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}
