package models

import (
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"gorm.io/gorm"
)

// DailyRateModel is unique per (hotel, room type, meal plan, market, date).
type DailyRateModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	HotelID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_rate_unique,priority:1"`
	RoomTypeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_rate_unique,priority:2"`
	MealPlanID string    `gorm:"type:uuid;not null;uniqueIndex:idx_rate_unique,priority:3"`
	MarketID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_rate_unique,priority:4"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_rate_unique,priority:5"`
	Currency   string    `gorm:"size:3"`

	UnitPrice         float64
	SingleSupplement  float64
	ExtraAdult        float64
	ExtraChild        float64
	ExtraInfant       float64
	ChildOrderPricing []domain.ChildOrderPrice `gorm:"serializer:json"`
	ChildAgePricing   []domain.ChildAgePrice   `gorm:"serializer:json"`
	OccupancyPricing  map[int]float64          `gorm:"serializer:json"`

	Allotment int `gorm:"not null;default:0"`
	Sold      int `gorm:"not null;default:0"`

	MinStay           int
	MaxStay           int
	ReleaseDays       int
	ClosedToArrival   bool
	ClosedToDeparture bool
	SingleStop        bool
	StopSale          bool

	UseMultiplierOverride bool
	MultiplierOverride    *domain.MultiplierTemplate `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DailyRateModel) TableName() string { return "daily_rates" }

func (m *DailyRateModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
