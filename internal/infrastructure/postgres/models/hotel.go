package models

import (
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type HotelModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	PartnerID string `gorm:"index"`
	AgencyID  string `gorm:"index"`
	Code      string `gorm:"uniqueIndex"`
	Name      string
	Currency  string `gorm:"size:3"`
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (HotelModel) TableName() string { return "hotels" }

func (m *HotelModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

type MealPlanModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	HotelID   string `gorm:"type:uuid;not null;index"`
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MealPlanModel) TableName() string { return "meal_plans" }

func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

type RoomTypeModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	HotelID            string `gorm:"type:uuid;not null;index"`
	Code               string
	Name               string
	PricingModel       string `gorm:"default:unit"`
	BaseOccupancy      int
	MaxOccupancy       int
	MaxAdults          int
	MaxChildren        int
	MinAdults          int
	MultiplierTemplate *domain.MultiplierTemplate `gorm:"serializer:json"`
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (RoomTypeModel) TableName() string { return "room_types" }

func (m *RoomTypeModel) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
