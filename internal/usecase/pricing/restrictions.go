package pricing

import (
	"fmt"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
)

type RestrictionParams struct {
	Adults        int
	CheckInDate   time.Time
	CheckOutDate  time.Time
	BookingDate   time.Time
	RequiredRooms int
	MinAdults     int
}

func (p RestrictionParams) nights() int {
	return domain.NightsBetween(p.CheckInDate, p.CheckOutDate)
}

func sameDay(a, b time.Time) bool {
	return domain.DateOnly(a).Equal(domain.DateOnly(b))
}

// CheckRestrictions evaluates whether one daily rate can be sold for the
// booking. Business-rule failures are reported in the result, never as errors.
func CheckRestrictions(rate *domain.DailyRate, p RestrictionParams) domain.RestrictionResult {
	var (
		flags    domain.RestrictionFlags
		messages []string
	)
	date := domain.DateOnly(rate.Date).Format(time.DateOnly)

	if rate.StopSale {
		flags.StopSale = true
		messages = append(messages, fmt.Sprintf("stop sale on %s", date))
	}
	if p.MinAdults > 0 && p.Adults < p.MinAdults {
		flags.BelowMinAdults = true
		messages = append(messages, fmt.Sprintf("at least %d adults required", p.MinAdults))
	}
	if rate.SingleStop && p.Adults == 1 {
		flags.SingleStop = true
		messages = append(messages, fmt.Sprintf("single occupancy closed on %s", date))
	}

	required := p.RequiredRooms
	if required < 1 {
		required = 1
	}
	if available := rate.Available(); available < required {
		flags.InsufficientAllotment = true
		if available == 0 {
			flags.NoAvailability = true
			messages = append(messages, fmt.Sprintf("no availability on %s", date))
		} else {
			messages = append(messages, fmt.Sprintf("only %d rooms left on %s, %d requested", available, date, required))
		}
	}

	if rate.ReleaseDays > 0 && !p.BookingDate.IsZero() {
		lead := domain.NightsBetween(p.BookingDate, p.CheckInDate)
		if lead < rate.ReleaseDays {
			flags.ReleaseDays = true
			messages = append(messages, fmt.Sprintf("booking must be made at least %d days before arrival", rate.ReleaseDays))
		}
	}

	nights := p.nights()
	if rate.MinStay > 0 && nights < rate.MinStay {
		flags.MinStay = true
		messages = append(messages, fmt.Sprintf("minimum stay is %d nights", rate.MinStay))
	}
	if rate.MaxStay > 0 && nights > rate.MaxStay {
		flags.MaxStay = true
		messages = append(messages, fmt.Sprintf("maximum stay is %d nights", rate.MaxStay))
	}

	if rate.ClosedToArrival && (rate.Date.IsZero() || sameDay(rate.Date, p.CheckInDate)) {
		flags.ClosedToArrival = true
		messages = append(messages, fmt.Sprintf("closed to arrival on %s", date))
	}
	if rate.ClosedToDeparture && sameDay(rate.Date, p.CheckOutDate) {
		flags.ClosedToDeparture = true
		messages = append(messages, fmt.Sprintf("closed to departure on %s", date))
	}

	return domain.RestrictionResult{
		IsBookable:   !flags.Any(),
		Restrictions: flags,
		Messages:     messages,
	}
}

// CheckStayRestrictions folds the per-night checks of a whole stay. The
// departure-day rate, when present, only contributes closed-to-departure.
func CheckStayRestrictions(nights []*domain.DailyRate, departure *domain.DailyRate, p RestrictionParams) domain.RestrictionResult {
	var (
		flags    domain.RestrictionFlags
		messages []string
		seen     = make(map[string]struct{})
	)
	add := func(r domain.RestrictionResult) {
		flags = flags.Merge(r.Restrictions)
		for _, m := range r.Messages {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			messages = append(messages, m)
		}
	}

	for _, rate := range nights {
		add(CheckRestrictions(rate, p))
	}
	if departure != nil && departure.ClosedToDeparture && sameDay(departure.Date, p.CheckOutDate) {
		add(domain.RestrictionResult{
			Restrictions: domain.RestrictionFlags{ClosedToDeparture: true},
			Messages:     []string{fmt.Sprintf("closed to departure on %s", domain.DateOnly(departure.Date).Format(time.DateOnly))},
		})
	}

	return domain.RestrictionResult{
		IsBookable:   !flags.Any(),
		Restrictions: flags,
		Messages:     messages,
	}
}
