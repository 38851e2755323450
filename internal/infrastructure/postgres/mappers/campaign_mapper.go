package mappers

import (
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/LavaJover/shvark-pricing-service/internal/infrastructure/postgres/models"
)

func fromNullableDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return domain.DateOnly(*t)
}

func toNullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := domain.DateOnly(t)
	return &d
}

func ToDomainCampaign(model *models.CampaignModel) *domain.Campaign {
	return &domain.Campaign{
		ID:                 model.ID,
		HotelID:            model.HotelID,
		Code:               model.Code,
		Name:               model.Name,
		Type:               domain.CampaignType(model.Type),
		Value:              model.Value,
		FreeNights:         model.FreeNights,
		FreeNightsPosition: domain.FreeNightsPosition(model.FreeNightsPosition),
		BookingWindow: domain.DateWindow{
			Start: fromNullableDate(model.BookingStart),
			End:   fromNullableDate(model.BookingEnd),
		},
		StayWindow: domain.DateWindow{
			Start: fromNullableDate(model.StayStart),
			End:   fromNullableDate(model.StayEnd),
		},
		MinNights:  model.MinNights,
		MaxNights:  model.MaxNights,
		Scope:      model.Scope,
		Combinable: model.Combinable,
		Priority:   model.Priority,
		Channels:   model.Channels,
		Active:     model.Active,
	}
}

func ToGORMCampaign(c *domain.Campaign) *models.CampaignModel {
	return &models.CampaignModel{
		ID:                 c.ID,
		HotelID:            c.HotelID,
		Code:               c.Code,
		Name:               c.Name,
		Type:               string(c.Type),
		Value:              c.Value,
		FreeNights:         c.FreeNights,
		FreeNightsPosition: string(c.FreeNightsPosition),
		BookingStart:       toNullableDate(c.BookingWindow.Start),
		BookingEnd:         toNullableDate(c.BookingWindow.End),
		StayStart:          toNullableDate(c.StayWindow.Start),
		StayEnd:            toNullableDate(c.StayWindow.End),
		MinNights:          c.MinNights,
		MaxNights:          c.MaxNights,
		Scope:              c.Scope,
		Channels:           c.Channels,
		Combinable:         c.Combinable,
		Priority:           c.Priority,
		Active:             c.Active,
	}
}
