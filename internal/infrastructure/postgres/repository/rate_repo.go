package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRateRepository struct {
	DB *gorm.DB
}

func NewDefaultRateRepository(db *gorm.DB) *DefaultRateRepository {
	return &DefaultRateRepository{DB: db}
}

func scopeRateKey(key domain.RateKey) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hotel_id = ? AND room_type_id = ? AND meal_plan_id = ? AND market_id = ?",
			key.HotelID, key.RoomTypeID, key.MealPlanID, key.MarketID)
	}
}

func (r *DefaultRateRepository) FindRates(ctx context.Context, query domain.RateQuery) ([]*domain.DailyRate, error) {
	var rateModels []models.DailyRateModel
	err := r.DB.WithContext(ctx).
		Scopes(scopeRateKey(query.RateKey)).
		Where("date >= ? AND date <= ?", domain.DateOnly(query.From), domain.DateOnly(query.To)).
		Order("date").
		Find(&rateModels).Error
	if err != nil {
		return nil, fmt.Errorf("find rates for room type %s: %w", query.RoomTypeID, err)
	}

	rates := make([]*domain.DailyRate, len(rateModels))
	for i := range rateModels {
		rates[i] = mappers.ToDomainDailyRate(&rateModels[i])
	}
	return rates, nil
}

// lockNights loads the rows of every night in [from, to) with row locks and
// fails if any night has no rate.
func lockNights(tx *gorm.DB, key domain.RateKey, from, to time.Time) ([]models.DailyRateModel, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	nights := domain.NightsBetween(from, to)
	if nights < 1 {
		return nil, domain.NewBadRequest("empty stay %s..%s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	var rows []models.DailyRateModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(scopeRateKey(key)).
		Where("date >= ? AND date < ?", from, to).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) != nights {
		return nil, domain.NewNotFound(domain.EntityRate, fmt.Sprintf("%s/%s/%s %s..%s",
			key.RoomTypeID, key.MealPlanID, key.MarketID, from.Format(time.DateOnly), to.Format(time.DateOnly)))
	}
	return rows, nil
}

func rowIDs(rows []models.DailyRateModel) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

// ReserveAllotment sells rooms on every night of [from, to) or on none.
func (r *DefaultRateRepository) ReserveAllotment(ctx context.Context, key domain.RateKey, from, to time.Time, rooms int) error {
	if rooms < 1 {
		return domain.NewBadRequest("rooms must be at least 1, got %d", rooms)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := lockNights(tx, key, from, to)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if available := row.Allotment - row.Sold; available < rooms {
				return fmt.Errorf("%w: %d rooms left on %s, %d requested",
					domain.ErrInsufficientAllotment, max(available, 0), row.Date.Format(time.DateOnly), rooms)
			}
		}
		return tx.Model(&models.DailyRateModel{}).
			Where("id IN ?", rowIDs(rows)).
			Update("sold", gorm.Expr("sold + ?", rooms)).Error
	})
}

// ReleaseAllotment returns rooms to every night of [from, to). Sold never
// drops below zero.
func (r *DefaultRateRepository) ReleaseAllotment(ctx context.Context, key domain.RateKey, from, to time.Time, rooms int) error {
	if rooms < 1 {
		return domain.NewBadRequest("rooms must be at least 1, got %d", rooms)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := lockNights(tx, key, from, to)
		if err != nil {
			return err
		}
		return tx.Model(&models.DailyRateModel{}).
			Where("id IN ?", rowIDs(rows)).
			Update("sold", gorm.Expr("CASE WHEN sold > ? THEN sold - ? ELSE 0 END", rooms, rooms)).Error
	})
}
