package domain

import "context"

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, msgs ...Message) error
}

type ConfigEntity string

const (
	ConfigHotel    ConfigEntity = "hotel"
	ConfigRoomType ConfigEntity = "room_type"
	ConfigMarket   ConfigEntity = "market"
	ConfigSeason   ConfigEntity = "season"
	ConfigRate     ConfigEntity = "rate"
	ConfigCampaign ConfigEntity = "campaign"
)

// ConfigChangedEvent is emitted by the configuration mutation paths so cached
// prices do not outlive the data they were computed from.
type ConfigChangedEvent struct {
	Entity     ConfigEntity `json:"entity"`
	HotelID    string       `json:"hotel_id"`
	RoomTypeID string       `json:"room_type_id,omitempty"`
	MarketID   string       `json:"market_id,omitempty"`
}

type QuoteEvent struct {
	QuoteIDs      []string     `json:"quote_ids"`
	HotelID       string       `json:"hotel_id"`
	MarketID      string       `json:"market_id"`
	Channel       SalesChannel `json:"channel"`
	Rooms         int          `json:"rooms"`
	Success       bool         `json:"success"`
	Currency      string       `json:"currency"`
	OriginalTotal float64      `json:"original_total"`
	FinalTotal    float64      `json:"final_total"`
}

type QuotePublisher interface {
	PublishQuote(ctx context.Context, event QuoteEvent) error
}
