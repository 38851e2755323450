package pricing

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	pricingdto "github.com/LavaJover/shvark-pricing-service/internal/usecase/dto/pricing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingInput(rooms ...pricingdto.RoomRequest) *pricingdto.MultiRoomInput {
	return &pricingdto.MultiRoomInput{
		HotelID:  "h1",
		MarketID: "m1",
		CheckIn:  day("2027-06-10"),
		CheckOut: day("2027-06-13"),
		Rooms:    rooms,
	}
}

func doubleRoom(adults int) pricingdto.RoomRequest {
	return pricingdto.RoomRequest{
		RoomTypeID: "rt-double",
		MealPlanID: "bb",
		Occupancy:  domain.Occupancy{Adults: adults},
	}
}

func TestCalculateMultiRoomBookingPrice_SingleRoomMatchesDirectPrice(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	ctx := context.Background()

	direct, err := f.uc.CalculatePriceWithCampaigns(ctx, stayQuery())
	require.NoError(t, err)

	out, err := f.uc.CalculateMultiRoomBookingPrice(ctx, bookingInput(doubleRoom(2)))
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Empty(t, out.Errors)
	require.Len(t, out.Rooms, 1)
	assert.Equal(t, direct.FinalTotal, out.Rooms[0].SelectedPrice)
	assert.Equal(t, direct.OriginalTotal, out.Totals.OriginalTotal)
	assert.Equal(t, direct.TotalDiscount, out.Totals.TotalDiscount)
	assert.Equal(t, direct.FinalTotal, out.Totals.FinalTotal)
	assert.Equal(t, "EUR", out.Totals.Currency)
	assert.Equal(t, 1, out.Totals.Rooms)
}

func TestCalculateMultiRoomBookingPrice_SumsRooms(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())

	out, err := f.uc.CalculateMultiRoomBookingPrice(context.Background(), bookingInput(doubleRoom(2), doubleRoom(3)))
	require.NoError(t, err)

	require.Len(t, out.Rooms, 2)
	assert.Equal(t, 0, out.Rooms[0].Index)
	assert.Equal(t, 1, out.Rooms[1].Index)
	// 3 nights at 110 and 3 nights at 154
	assert.Equal(t, 792.0, out.Totals.OriginalTotal)
	assert.Equal(t, 79.2, out.Totals.TotalDiscount)
	assert.Equal(t, 712.8, out.Totals.FinalTotal)

	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0]
	assert.Len(t, ev.QuoteIDs, 2)
	assert.True(t, ev.Success)
	assert.Equal(t, 712.8, ev.FinalTotal)
}

func TestCalculateMultiRoomBookingPrice_IsolatesRoomFailures(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	broken := doubleRoom(2)
	broken.MealPlanID = "ai"

	out, err := f.uc.CalculateMultiRoomBookingPrice(context.Background(), bookingInput(doubleRoom(2), broken))
	require.NoError(t, err)

	assert.False(t, out.Success)
	require.Len(t, out.Rooms, 1)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 1, out.Errors[0].Index)
	assert.Equal(t, "ai", out.Errors[0].MealPlanID)
	assert.Equal(t, "not_found", out.Errors[0].Code)
	assert.Equal(t, 297.0, out.Totals.FinalTotal)
	assert.Equal(t, 1, out.Totals.Rooms)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MultiRoomRoomsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MultiRoomRoomsTotal.WithLabelValues("error")))
}

func TestCalculateMultiRoomBookingPrice_ThrowOnError(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	broken := doubleRoom(2)
	broken.MealPlanID = "ai"
	input := bookingInput(doubleRoom(2), broken)
	input.ThrowOnError = true

	out, err := f.uc.CalculateMultiRoomBookingPrice(context.Background(), input)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "room 2")
	assert.ErrorIs(t, err, domain.ErrMealPlanNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestCalculateMultiRoomBookingPrice_AllotmentCoversAllRoomsOfType(t *testing.T) {
	catalog := seededCatalog()
	for _, r := range catalog.rates {
		r.Allotment = 1
	}
	f := newUsecaseFixture(t, catalog)

	out, err := f.uc.CalculateMultiRoomBookingPrice(context.Background(), bookingInput(doubleRoom(2), doubleRoom(2)))
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.Empty(t, out.Rooms)
	require.Len(t, out.Errors, 2)
	for _, e := range out.Errors {
		assert.Equal(t, "unavailable", e.Code)
		assert.Contains(t, e.Reason, domain.ErrInsufficientAllotment.Error())
	}
	assert.Zero(t, out.Totals.FinalTotal)
}

func TestCalculateMultiRoomBookingPrice_UnsellableRoomIsReported(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())

	out, err := f.uc.CalculateMultiRoomBookingPrice(context.Background(), bookingInput(doubleRoom(2), doubleRoom(4)))
	require.NoError(t, err)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "unavailable", out.Errors[0].Code)
	assert.Contains(t, out.Errors[0].Reason, "at most 3 adults")
}

func TestCalculateMultiRoomBookingPrice_Validation(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	ctx := context.Background()

	_, err := f.uc.CalculateMultiRoomBookingPrice(ctx, bookingInput())
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	rooms := make([]pricingdto.RoomRequest, 11)
	for i := range rooms {
		rooms[i] = doubleRoom(2)
	}
	_, err = f.uc.CalculateMultiRoomBookingPrice(ctx, bookingInput(rooms...))
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	_, err = f.uc.CalculateMultiRoomBookingPrice(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestCalculateMultiRoomBookingPrice_DisplayCurrency(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())
	input := bookingInput(doubleRoom(2))
	input.DisplayCurrency = "USD"

	out, err := f.uc.CalculateMultiRoomBookingPrice(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, out.Totals.Display)
	assert.Equal(t, 326.7, out.Totals.Display.FinalTotal)
}

func TestCheckConsistency(t *testing.T) {
	f := newUsecaseFixture(t, seededCatalog())

	f.uc.checkConsistency("h1", 0, &domain.PriceResult{OriginalTotal: 100, TotalDiscount: 10, FinalTotal: 90.005})
	assert.Zero(t, testutil.ToFloat64(f.metrics.ConsistencyWarningsTotal))

	f.uc.checkConsistency("h1", 0, &domain.PriceResult{OriginalTotal: 100, TotalDiscount: 10, FinalTotal: 91})
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ConsistencyWarningsTotal))
}
