package grpcapi

import (
	"strings"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
)

func parseDay(field, value string, optional bool) (time.Time, error) {
	if value == "" {
		if optional {
			return time.Time{}, nil
		}
		return time.Time{}, domain.NewBadRequest("%s is required", field)
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, domain.NewBadRequest("%s: expected YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}

func toOccupancy(m OccupancyMessage) domain.Occupancy {
	occ := domain.Occupancy{Adults: m.Adults}
	for _, c := range m.Children {
		occ.Children = append(occ.Children, domain.Child{Age: c.Age, AgeGroup: c.AgeGroup})
	}
	return occ
}

func toChannel(v string) domain.SalesChannel {
	return domain.SalesChannel(strings.ToUpper(v))
}

func toRateType(v string) domain.RateType {
	return domain.RateType(strings.ToLower(v))
}

func ToPriceQuery(r *CalculatePriceRequest) (*pricingdto.PriceQuery, error) {
	checkIn, err := parseDay("check_in", r.CheckIn, false)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDay("check_out", r.CheckOut, false)
	if err != nil {
		return nil, err
	}
	bookingDate, err := parseDay("booking_date", r.BookingDate, true)
	if err != nil {
		return nil, err
	}
	return &pricingdto.PriceQuery{
		HotelID:         r.HotelID,
		RoomTypeID:      r.RoomTypeID,
		MealPlanID:      r.MealPlanID,
		MarketID:        r.MarketID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Channel:         toChannel(r.Channel),
		RateType:        toRateType(r.RateType),
		RequiredRooms:   r.RequiredRooms,
		DisplayCurrency: strings.ToUpper(r.DisplayCurrency),
		Occupancy:       toOccupancy(r.Occupancy),
		BookingDate:     bookingDate,
		SkipCache:       r.SkipCache,
	}, nil
}

func ToMultiRoomInput(r *CalculateMultiRoomPriceRequest) (*pricingdto.MultiRoomInput, error) {
	checkIn, err := parseDay("check_in", r.CheckIn, false)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDay("check_out", r.CheckOut, false)
	if err != nil {
		return nil, err
	}
	bookingDate, err := parseDay("booking_date", r.BookingDate, true)
	if err != nil {
		return nil, err
	}
	rooms := make([]pricingdto.RoomRequest, len(r.Rooms))
	for i, room := range r.Rooms {
		rooms[i] = pricingdto.RoomRequest{
			RoomTypeID: room.RoomTypeID,
			MealPlanID: room.MealPlanID,
			RateType:   toRateType(room.RateType),
			Occupancy:  toOccupancy(room.Occupancy),
		}
	}
	return &pricingdto.MultiRoomInput{
		HotelID:         r.HotelID,
		MarketID:        r.MarketID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Channel:         toChannel(r.Channel),
		Rooms:           rooms,
		DisplayCurrency: strings.ToUpper(r.DisplayCurrency),
		BookingDate:     bookingDate,
		ThrowOnError:    r.ThrowOnError,
	}, nil
}

func ToConfigChangedEvent(r *InvalidateCacheRequest) domain.ConfigChangedEvent {
	return domain.ConfigChangedEvent{
		Entity:     domain.ConfigEntity(strings.ToLower(r.Entity)),
		HotelID:    r.HotelID,
		RoomTypeID: r.RoomTypeID,
		MarketID:   r.MarketID,
	}
}
