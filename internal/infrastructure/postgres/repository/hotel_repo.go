package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// findByID loads one row by primary key, translating a missing row into a
// domain not-found error for entity.
func findByID[T any](ctx context.Context, db *gorm.DB, entity, id string) (*T, error) {
	var model T
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound(entity, id)
		}
		return nil, fmt.Errorf("load %s %s: %w", entity, id, err)
	}
	return &model, nil
}

type DefaultHotelRepository struct {
	DB *gorm.DB
}

func NewDefaultHotelRepository(db *gorm.DB) *DefaultHotelRepository {
	return &DefaultHotelRepository{DB: db}
}

func (r *DefaultHotelRepository) GetHotelByID(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	model, err := findByID[models.HotelModel](ctx, r.DB, domain.EntityHotel, hotelID)
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainHotel(model), nil
}

type DefaultRoomTypeRepository struct {
	DB *gorm.DB
}

func NewDefaultRoomTypeRepository(db *gorm.DB) *DefaultRoomTypeRepository {
	return &DefaultRoomTypeRepository{DB: db}
}

func (r *DefaultRoomTypeRepository) GetRoomTypeByID(ctx context.Context, roomTypeID string) (*domain.RoomType, error) {
	model, err := findByID[models.RoomTypeModel](ctx, r.DB, domain.EntityRoomType, roomTypeID)
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainRoomType(model), nil
}

type DefaultMealPlanRepository struct {
	DB *gorm.DB
}

func NewDefaultMealPlanRepository(db *gorm.DB) *DefaultMealPlanRepository {
	return &DefaultMealPlanRepository{DB: db}
}

func (r *DefaultMealPlanRepository) GetMealPlanByID(ctx context.Context, mealPlanID string) (*domain.MealPlan, error) {
	model, err := findByID[models.MealPlanModel](ctx, r.DB, domain.EntityMealPlan, mealPlanID)
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainMealPlan(model), nil
}
