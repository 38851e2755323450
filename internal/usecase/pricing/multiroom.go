package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
	"golang.org/x/sync/errgroup"
)

type roomOutcome struct {
	output *pricingdto.RoomOutput
	err    error
}

// CalculateMultiRoomBookingPrice prices every room of a booking concurrently
// and sums the sellable ones. Room failures are reported per room unless
// ThrowOnError is set, in which case the first failure is returned.
func (uc *DefaultPricingUsecase) CalculateMultiRoomBookingPrice(ctx context.Context, input *pricingdto.MultiRoomInput) (*pricingdto.MultiRoomOutput, error) {
	start := time.Now()
	if input == nil {
		return nil, domain.NewBadRequest("empty multi-room request")
	}
	if err := uc.validateInput(input); err != nil {
		uc.Metrics.RecordError("calculate_multi_room", errorKind(err))
		return nil, err
	}
	if len(input.Rooms) > uc.Options.MaxRooms {
		err := domain.NewBadRequest("at most %d rooms per request, got %d", uc.Options.MaxRooms, len(input.Rooms))
		uc.Metrics.RecordError("calculate_multi_room", errorKind(err))
		return nil, err
	}

	bookingDate := input.BookingDate
	if bookingDate.IsZero() {
		bookingDate = uc.now()
	}

	outcomes := make([]roomOutcome, len(input.Rooms))
	g, gctx := errgroup.WithContext(ctx)
	for i, room := range input.Rooms {
		i, room := i, room
		g.Go(func() error {
			out, err := uc.priceRoom(gctx, input, i, room, bookingDate)
			outcomes[i] = roomOutcome{output: out, err: err}
			if err != nil && input.ThrowOnError {
				return fmt.Errorf("room %d: %w", i+1, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.Metrics.RecordError("calculate_multi_room", errorKind(err))
		return nil, err
	}

	output := &pricingdto.MultiRoomOutput{
		Rooms: make([]pricingdto.RoomOutput, 0, len(input.Rooms)),
	}
	var original, discount, final []float64
	for i, o := range outcomes {
		room := input.Rooms[i]
		if o.err != nil {
			output.Errors = append(output.Errors, pricingdto.RoomError{
				Index:      i,
				RoomTypeID: room.RoomTypeID,
				MealPlanID: room.MealPlanID,
				Reason:     o.err.Error(),
				Code:       errorKind(o.err),
			})
			continue
		}
		output.Rooms = append(output.Rooms, *o.output)
		res := o.output.Result
		original = append(original, res.OriginalTotal)
		discount = append(discount, res.TotalDiscount)
		final = append(final, res.FinalTotal)
		if output.Totals.Currency == "" {
			output.Totals.Currency = res.Currency
		} else if output.Totals.Currency != res.Currency {
			uc.Logger.Warn("rooms priced in different currencies",
				"hotel_id", input.HotelID,
				"expected", output.Totals.Currency,
				"got", res.Currency,
			)
		}
	}
	output.Totals.OriginalTotal = sum2(original...)
	output.Totals.TotalDiscount = sum2(discount...)
	output.Totals.FinalTotal = sum2(final...)
	output.Totals.Rooms = len(output.Rooms)
	output.Success = len(output.Errors) == 0

	if input.DisplayCurrency != "" && output.Totals.Currency != "" && input.DisplayCurrency != output.Totals.Currency {
		display, err := uc.convertDisplay(output.Totals.Currency, input.DisplayCurrency, output.Totals.OriginalTotal, output.Totals.FinalTotal)
		if err != nil {
			return nil, err
		}
		output.Totals.Display = display
	}

	uc.Metrics.RecordMultiRoom(time.Since(start).Seconds(), len(output.Rooms), len(output.Errors))
	uc.publishQuote(ctx, input, output)
	return output, nil
}

func (uc *DefaultPricingUsecase) priceRoom(ctx context.Context, input *pricingdto.MultiRoomInput, index int, room pricingdto.RoomRequest, bookingDate time.Time) (*pricingdto.RoomOutput, error) {
	rateType := room.RateType
	if rateType == "" {
		rateType = domain.RateTypeRefundable
	}
	result, err := uc.CalculatePriceWithCampaigns(ctx, &pricingdto.PriceQuery{
		HotelID:       input.HotelID,
		RoomTypeID:    room.RoomTypeID,
		MealPlanID:    room.MealPlanID,
		MarketID:      input.MarketID,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Channel:       input.Channel,
		RateType:      rateType,
		RequiredRooms: uc.roomsOfType(input, room.RoomTypeID, room.MealPlanID),
		Occupancy:     room.Occupancy,
		BookingDate:   bookingDate,
	})
	if err != nil {
		return nil, err
	}
	if ok, reason := result.Sellable(); !ok {
		if result.Restrictions.Restrictions.InsufficientAllotment {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrRoomUnavailable, domain.ErrInsufficientAllotment, reason)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomUnavailable, reason)
	}

	uc.checkConsistency(input.HotelID, index, result)

	return &pricingdto.RoomOutput{
		Index:         index,
		RoomTypeID:    room.RoomTypeID,
		MealPlanID:    room.MealPlanID,
		RateType:      rateType,
		SelectedPrice: result.FinalTotal,
		Result:        result,
	}, nil
}

// roomsOfType counts how many rooms of the booking draw on the same rate
// series, so allotment is checked for all of them at once.
func (uc *DefaultPricingUsecase) roomsOfType(input *pricingdto.MultiRoomInput, roomTypeID, mealPlanID string) int {
	n := 0
	for _, r := range input.Rooms {
		if r.RoomTypeID == roomTypeID && r.MealPlanID == mealPlanID {
			n++
		}
	}
	return n
}

func (uc *DefaultPricingUsecase) checkConsistency(hotelID string, index int, r *domain.PriceResult) {
	expected := round2(r.OriginalTotal - r.TotalDiscount)
	if expected < 0 {
		expected = 0
	}
	if math.Abs(r.FinalTotal-expected) <= uc.Options.ConsistencyTolerance {
		return
	}
	uc.Metrics.RecordConsistencyWarning()
	uc.Logger.Warn("room total drifted from original minus discount",
		"hotel_id", hotelID,
		"room_index", index,
		"room_type_id", r.RoomTypeID,
		"original_total", r.OriginalTotal,
		"total_discount", r.TotalDiscount,
		"final_total", r.FinalTotal,
	)
}

func (uc *DefaultPricingUsecase) publishQuote(ctx context.Context, input *pricingdto.MultiRoomInput, output *pricingdto.MultiRoomOutput) {
	if uc.Publisher == nil {
		return
	}
	ids := make([]string, 0, len(output.Rooms))
	for _, r := range output.Rooms {
		ids = append(ids, r.Result.QuoteID)
	}
	channel := input.Channel
	if channel == "" {
		channel = domain.ChannelB2C
	}
	event := domain.QuoteEvent{
		QuoteIDs:      ids,
		HotelID:       input.HotelID,
		MarketID:      input.MarketID,
		Channel:       channel,
		Rooms:         len(input.Rooms),
		Success:       output.Success,
		Currency:      output.Totals.Currency,
		OriginalTotal: output.Totals.OriginalTotal,
		FinalTotal:    output.Totals.FinalTotal,
	}
	if err := uc.Publisher.PublishQuote(ctx, event); err != nil {
		uc.Logger.Error("failed to publish quote event", "hotel_id", input.HotelID, "error", err)
	}
}

// IsRoomUnavailable reports whether err is a per-room business failure.
func IsRoomUnavailable(err error) bool {
	return errors.Is(err, domain.ErrRoomUnavailable)
}
