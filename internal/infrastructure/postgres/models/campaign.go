package models

import (
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"gorm.io/gorm"
)

type CampaignModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	HotelID            string `gorm:"type:uuid;not null;index:idx_campaign_active,priority:1"`
	Code               string `gorm:"not null"`
	Name               string
	Type               string
	Value              float64
	FreeNights         int
	FreeNightsPosition string
	BookingStart       *time.Time `gorm:"type:date"`
	BookingEnd         *time.Time `gorm:"type:date"`
	StayStart          *time.Time `gorm:"type:date"`
	StayEnd            *time.Time `gorm:"type:date"`
	MinNights          int
	MaxNights          int
	Scope              domain.CampaignScope    `gorm:"serializer:json"`
	Channels           domain.CampaignChannels `gorm:"serializer:json"`
	Combinable         bool
	Priority           int
	Active             bool `gorm:"index:idx_campaign_active,priority:2"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (CampaignModel) TableName() string { return "campaigns" }

func (m *CampaignModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// All returns every model the pricing schema consists of, in creation order.
func All() []any {
	return []any{
		&HotelModel{},
		&MealPlanModel{},
		&RoomTypeModel{},
		&MarketModel{},
		&SeasonModel{},
		&DailyRateModel{},
		&CampaignModel{},
	}
}
