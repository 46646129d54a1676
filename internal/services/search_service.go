package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hoponhub/internal/cache"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

// SearchService answers "which buses run from A to B". With StrictDate off the
// requested date is validated and echoed back but does not filter routes.
type SearchService struct {
	DB         *sql.DB
	Cache      *cache.SearchCache
	StrictDate bool
}

func (s SearchService) Search(ctx context.Context, from, to, date string) ([]models.Offering, error) {
	from = utils.NormalizeSpace(from)
	to = utils.NormalizeSpace(to)
	date = utils.NormalizeSpace(date)
	if from == "" || to == "" || date == "" {
		return nil, domain.ValidationError{Msg: "Missing required parameters"}
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Msg: "Invalid date format. Use YYYY-MM-DD", Err: err}
	}

	var filter *time.Time
	cacheDate := ""
	if s.StrictDate {
		filter = &day
		cacheDate = date
	}
	key := cache.SearchKey(from, to, cacheDate)

	offerings, hit := s.Cache.Get(ctx, key)
	if !hit {
		routes, err := repositories.RouteRepository{DB: s.DB}.FindByPair(ctx, from, to, filter)
		if err != nil {
			return nil, domain.InternalError{Msg: "Failed to search buses", Err: err}
		}
		offerings = dedupeOfferings(routes)
		s.Cache.Set(ctx, key, offerings)
	}

	out := make([]models.Offering, len(offerings))
	for i, o := range offerings {
		o.Date = date
		out[i] = o
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "search", "buses",
		fmt.Sprintf("from=%s to=%s date=%s results=%d cache_hit=%t", from, to, date, len(out), hit))
	return out, nil
}

type offeringKey struct {
	busID int64
	time  string
}

// dedupeOfferings keeps the first route seen for each (bus, departure time).
// routes must already be ordered by id.
func dedupeOfferings(routes []models.Route) []models.Offering {
	seen := make(map[offeringKey]bool, len(routes))
	out := make([]models.Offering, 0, len(routes))
	for _, r := range routes {
		k := offeringKey{busID: r.BusID, time: r.DepartureTime}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, models.Offering{
			RouteID: r.ID,
			BusID:   r.BusID,
			BusName: r.BusName,
			Price:   r.Price,
			Time:    r.DepartureTime,
			From:    r.FromLocation,
			To:      r.ToLocation,
		})
	}
	return out
}
