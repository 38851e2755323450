package models

import (
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"gorm.io/gorm"
)

type MarketModel struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	HotelID           string `gorm:"type:uuid;not null;index"`
	Code              string `gorm:"not null"`
	Name              string
	Commercial        domain.CommercialSettings `gorm:"serializer:json"`
	ChildAgeGroups    []domain.ChildAgeGroup    `gorm:"serializer:json"`
	RoomTypeOverrides []domain.RoomTypeOverride `gorm:"serializer:json"`
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (MarketModel) TableName() string { return "markets" }

func (m *MarketModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

type SeasonModel struct {
	ID                    string `gorm:"primaryKey;type:uuid"`
	HotelID               string `gorm:"type:uuid;not null;index:idx_season_lookup,priority:1"`
	MarketID              string `gorm:"type:uuid;not null;index:idx_season_lookup,priority:2"`
	Code                  string
	Name                  string
	StartDate             time.Time `gorm:"type:date;not null"`
	EndDate               time.Time `gorm:"type:date;not null"`
	Priority              int
	InheritPricing        bool
	RoomTypeOverrides     []domain.RoomTypeOverride `gorm:"serializer:json"`
	InheritCommercial     bool
	Commercial            domain.CommercialSettings `gorm:"serializer:json"`
	InheritChildAgeGroups bool
	ChildAgeGroups        []domain.ChildAgeGroup `gorm:"serializer:json"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (SeasonModel) TableName() string { return "seasons" }

func (m *SeasonModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
