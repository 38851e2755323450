package domain

type RoomType struct {
	ID                 string
	HotelID            string
	Code               string
	Name               string
	PricingModel       PricingModel
	BaseOccupancy      int
	MaxOccupancy       int
	MaxAdults          int
	MaxChildren        int
	MinAdults          int
	MultiplierTemplate *MultiplierTemplate
	Active             bool
}

// EffectiveBaseOccupancy falls back to 2 when the room type does not define one.
func (rt *RoomType) EffectiveBaseOccupancy() int {
	if rt == nil || rt.BaseOccupancy <= 0 {
		return 2
	}
	return rt.BaseOccupancy
}
