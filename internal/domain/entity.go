package domain

const (
	EntityHotel    = "hotel"
	EntityRoomType = "room_type"
	EntityMealPlan = "meal_plan"
	EntityMarket   = "market"
	EntitySeason   = "season"
	EntityRate     = "rate"
	EntityCampaign = "campaign"
)

type Hotel struct {
	ID        string
	PartnerID string
	AgencyID  string
	Code      string
	Name      string
	Currency  string
	Active    bool
}

type MealPlan struct {
	ID      string
	HotelID string
	Code    string
	Name    string
}
