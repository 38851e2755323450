package pricing

import (
	"strconv"
	"strings"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

const (
	pricePrefix    = "price:"
	campaignPrefix = "campaign:"
)

type PriceKeyParts struct {
	HotelID         string
	RoomTypeID      string
	MealPlanID      string
	MarketID        string
	Date            time.Time
	Adults          int
	Children        []domain.Child
	Nights          int
	Channel         domain.SalesChannel
	RateType        domain.RateType
	BookingDate     time.Time
	RequiredRooms   int
	DisplayCurrency string
}

// PriceCacheKey is deterministic for equal inputs. Hotel and room type lead
// the key so both can be invalidated by prefix.
func PriceCacheKey(p PriceKeyParts) string {
	var b strings.Builder
	b.WriteString(RoomTypePricePrefix(p.HotelID, p.RoomTypeID))
	for _, part := range []string{
		p.MealPlanID,
		p.MarketID,
		domain.DateOnly(p.Date).Format(time.DateOnly),
		strconv.Itoa(p.Adults),
		encodeChildren(p.Children),
		strconv.Itoa(p.Nights),
		string(p.Channel),
		string(p.RateType),
		domain.DateOnly(p.BookingDate).Format(time.DateOnly),
		strconv.Itoa(p.RequiredRooms),
		p.DisplayCurrency,
	} {
		b.WriteString(part)
		b.WriteByte(':')
	}
	return strings.TrimSuffix(b.String(), ":")
}

func encodeChildren(children []domain.Child) string {
	if len(children) == 0 {
		return "0"
	}
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = strconv.Itoa(c.Age)
		if c.AgeGroup != "" {
			parts[i] += "/" + c.AgeGroup
		}
	}
	return strings.Join(parts, ",")
}

func HotelPricePrefix(hotelID string) string {
	return pricePrefix + hotelID + ":"
}

func RoomTypePricePrefix(hotelID, roomTypeID string) string {
	return HotelPricePrefix(hotelID) + roomTypeID + ":"
}

func CampaignKey(hotelID string) string {
	return campaignPrefix + hotelID
}
