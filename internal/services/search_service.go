package services

import (
	"sort"
	"strconv"

	"rideshare/internal/domain/models"
	"rideshare/internal/repositories"
	"rideshare/internal/utils"
)

// SearchQuery is a user's ride search: an exact (source, target) lane on one
// date. No partial or multi-hop matching.
type SearchQuery struct {
	SourceAreaID int64
	TargetAreaID int64
	Date         string
	UserID       int64
}

// DriverBundle pairs a driver with their full route coverage and booking
// history, the matcher's unit of work.
type DriverBundle struct {
	Driver   models.Driver
	Routes   []models.Route
	Bookings []models.Booking
}

// MatchDrivers filters bundles down to bookable drivers:
//   - the driver must cover the exact (source, target) lane;
//   - a driver the user already booked on that date is dropped entirely;
//   - a driver at confirmed capacity is dropped. The running confirmed count
//     zeroes whenever a non-Confirmed booking is scanned; search results
//     depend on this accumulation order, so it must not be "fixed" without a
//     coordinated behavior change (see regression test).
func MatchDrivers(q SearchQuery, bundles []DriverBundle) []models.DriverMatch {
	var out []models.DriverMatch
	for _, b := range bundles {
		matched, ok := matchRoute(q, b.Routes)
		if !ok {
			continue
		}

		bookedByUser := false
		for _, bk := range b.Bookings {
			if bk.BookingDate == q.Date && bk.UserID == q.UserID {
				bookedByUser = true
				break
			}
		}
		if bookedByUser {
			continue
		}

		confirmed := 0
		for _, bk := range b.Bookings {
			if bk.Status == models.BookingConfirmed {
				confirmed++
			} else {
				confirmed = 0
			}
		}
		if confirmed >= b.Driver.CarCapacity {
			continue
		}

		out = append(out, models.DriverMatch{
			Driver:             b.Driver,
			Route:              matched,
			ClosedBookingCount: countClosed(b.Bookings),
		})
	}
	return out
}

func matchRoute(q SearchQuery, routes []models.Route) (models.Route, bool) {
	for _, rt := range routes {
		if rt.SourceAreaID == q.SourceAreaID && rt.TargetAreaID == q.TargetAreaID {
			return rt, true
		}
	}
	return models.Route{}, false
}

func countClosed(bookings []models.Booking) int {
	n := 0
	for _, bk := range bookings {
		if bk.Status == models.BookingClosed {
			n++
		}
	}
	return n
}

// RankByClosedBookings orders drivers by closed-booking count, best first,
// truncated to limit. Used for the home page top-drivers strip.
func RankByClosedBookings(bundles []DriverBundle, limit int) []models.DriverMatch {
	ranked := make([]models.DriverMatch, 0, len(bundles))
	for _, b := range bundles {
		ranked = append(ranked, models.DriverMatch{
			Driver:             b.Driver,
			ClosedBookingCount: countClosed(b.Bookings),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ClosedBookingCount > ranked[j].ClosedBookingCount
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

type SearchService struct {
	Accounts  repositories.AccountRepository
	Routes    repositories.RouteRepository
	Bookings  repositories.BookingRepository
	RequestID string
}

// Search runs the matcher over a fresh read of every driver. The read and any
// later booking insert are not covered by one transaction; a driver can fill
// up between search and booking (accepted race).
func (s SearchService) Search(q SearchQuery) ([]models.DriverMatch, error) {
	bundles, err := s.loadBundles()
	if err != nil {
		return nil, err
	}
	matches := MatchDrivers(q, bundles)
	utils.LogEvent(s.RequestID, "search", "match_drivers",
		"candidates="+strconv.Itoa(len(bundles))+" matches="+strconv.Itoa(len(matches)))
	return matches, nil
}

// TopDrivers returns the home-page ranking (top 5 by closed bookings).
func (s SearchService) TopDrivers() ([]models.DriverMatch, error) {
	bundles, err := s.loadBundles()
	if err != nil {
		return nil, err
	}
	return RankByClosedBookings(bundles, 5), nil
}

func (s SearchService) loadBundles() ([]DriverBundle, error) {
	drivers, err := s.Accounts.ListDrivers()
	if err != nil {
		return nil, err
	}
	routes, err := s.Routes.ListAll()
	if err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListAll()
	if err != nil {
		return nil, err
	}

	routesByDriver := map[int64][]models.Route{}
	for _, rt := range routes {
		routesByDriver[rt.DriverID] = append(routesByDriver[rt.DriverID], rt)
	}
	bookingsByDriver := map[int64][]models.Booking{}
	for _, bk := range bookings {
		bookingsByDriver[bk.DriverID] = append(bookingsByDriver[bk.DriverID], bk)
	}

	bundles := make([]DriverBundle, 0, len(drivers))
	for _, d := range drivers {
		bundles = append(bundles, DriverBundle{
			Driver:   d,
			Routes:   routesByDriver[d.ID],
			Bookings: bookingsByDriver[d.ID],
		})
	}
	return bundles, nil
}
