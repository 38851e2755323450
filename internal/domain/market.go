package domain

import "time"

type Market struct {
	ID                string
	HotelID           string
	Code              string
	Name              string
	Commercial        CommercialSettings
	ChildAgeGroups    []ChildAgeGroup
	RoomTypeOverrides []RoomTypeOverride
	Active            bool
}

func (m *Market) OverrideFor(roomTypeID string) *RoomTypeOverride {
	if m == nil {
		return nil
	}
	return findOverride(m.RoomTypeOverrides, roomTypeID)
}

// Season narrows a market to a date window. Every settings group carries an
// inherit flag; a group overrides the market only when it does not inherit.
type Season struct {
	ID                    string
	HotelID               string
	MarketID              string
	Code                  string
	Name                  string
	StartDate             time.Time
	EndDate               time.Time
	InheritPricing        bool
	RoomTypeOverrides     []RoomTypeOverride
	InheritCommercial     bool
	Commercial            CommercialSettings
	InheritChildAgeGroups bool
	ChildAgeGroups        []ChildAgeGroup
	Priority              int
}

// CoversDate reports whether date falls inside [StartDate, EndDate], by calendar day.
func (s *Season) CoversDate(date time.Time) bool {
	if s == nil {
		return false
	}
	d := DateOnly(date)
	return !d.Before(DateOnly(s.StartDate)) && !d.After(DateOnly(s.EndDate))
}

func (s *Season) OverrideFor(roomTypeID string) *RoomTypeOverride {
	if s == nil {
		return nil
	}
	return findOverride(s.RoomTypeOverrides, roomTypeID)
}

// SeasonForDate picks the covering season with the highest priority.
func SeasonForDate(seasons []*Season, date time.Time) *Season {
	var picked *Season
	for _, s := range seasons {
		if !s.CoversDate(date) {
			continue
		}
		if picked == nil || s.Priority > picked.Priority {
			picked = s
		}
	}
	return picked
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts calendar nights between check-in and check-out.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}
