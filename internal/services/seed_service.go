package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hoponhub/internal/cache"
	intdb "hoponhub/internal/db"
	"hoponhub/internal/domain"
	"hoponhub/internal/domain/models"
	"hoponhub/internal/repositories"
	"hoponhub/internal/utils"
)

// SeedDays is how many consecutive days, starting today, get a copy of every route template.
const SeedDays = 7

// SeedBuses are inserted in order; routeTemplate.bus indexes this slice.
var SeedBuses = []models.Bus{
	{Name: "Orange Travels", Capacity: 40},
	{Name: "Red Bus Express", Capacity: 40},
	{Name: "Green Line", Capacity: 40},
}

type routeTemplate struct {
	from, to, time string
	price          int64
	bus            int
}

var seedRoutes = []routeTemplate{
	{"Delhi", "Mumbai", "08:00", 500, 0},
	{"Delhi", "Mumbai", "10:00", 650, 1},
	{"Delhi", "Mumbai", "14:00", 700, 2},
	{"Mumbai", "Bangalore", "09:00", 600, 0},
	{"Mumbai", "Bangalore", "11:00", 750, 1},
	{"Bangalore", "Chennai", "08:30", 450, 2},
	{"Bangalore", "Chennai", "12:30", 550, 0},
	{"Chennai", "Hyderabad", "07:00", 550, 1},
	{"Chennai", "Hyderabad", "15:00", 650, 2},
	{"Hyderabad", "Delhi", "19:00", 800, 0},
	{"Hyderabad", "Delhi", "21:00", 950, 1},
}

// SeedSummary counts the rows written by Seed.
type SeedSummary struct {
	Buses  int
	Routes int
	Seats  int
}

type SeedService struct {
	DB    *sql.DB
	Cache *cache.SearchCache
	Now   func() time.Time
}

// Seed wipes every table and loads the sample buses, routes and seats. The
// wipe and the load share one transaction, so a failure leaves the old data.
func (s SeedService) Seed(ctx context.Context) (SeedSummary, error) {
	now := utils.NowUTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	today := utils.DateOnly(now)
	reqID := utils.RequestIDFrom(ctx)

	var sum SeedSummary
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		buses := repositories.BusRepository{DB: tx}
		routes := repositories.RouteRepository{DB: tx}
		seats := repositories.SeatRepository{DB: tx}

		wipe := []func(context.Context) error{
			repositories.BookingRepository{DB: tx}.DeleteAll,
			repositories.PassengerRepository{DB: tx}.DeleteAll,
			seats.DeleteAll,
			routes.DeleteAll,
			buses.DeleteAll,
		}
		for _, del := range wipe {
			if err := del(ctx); err != nil {
				return fmt.Errorf("wipe: %w", err)
			}
		}

		busIDs := make([]int64, len(SeedBuses))
		for i, b := range SeedBuses {
			id, err := buses.Create(ctx, b.Name, b.Capacity)
			if err != nil {
				return err
			}
			busIDs[i] = id
			sum.Buses++
		}

		// AddDate normalizes month and year rollover.
		for day := 0; day < SeedDays; day++ {
			date := today.AddDate(0, 0, day)
			for _, t := range seedRoutes {
				_, err := routes.Create(ctx, models.Route{
					FromLocation:  t.from,
					ToLocation:    t.to,
					DepartureTime: t.time,
					Price:         decimal.NewFromInt(t.price),
					Date:          date,
					BusID:         busIDs[t.bus],
				})
				if err != nil {
					return err
				}
				sum.Routes++
			}
		}

		for i, b := range SeedBuses {
			if err := seats.CreateForBus(ctx, busIDs[i], b.Capacity); err != nil {
				return err
			}
			sum.Seats += b.Capacity
		}
		return nil
	})
	if err != nil {
		utils.LogEvent(reqID, "seed", "init_db_error", err.Error())
		return SeedSummary{}, domain.InternalError{Msg: "Failed to initialize database", Err: err}
	}

	if n, err := s.Cache.Invalidate(ctx); err != nil {
		utils.LogEvent(reqID, "seed", "cache_invalidate_error", err.Error())
	} else if n > 0 {
		utils.LogEvent(reqID, "seed", "cache_invalidate", fmt.Sprintf("keys=%d", n))
	}

	utils.LogEvent(reqID, "seed", "init_db",
		fmt.Sprintf("buses=%d routes=%d seats=%d from=%s", sum.Buses, sum.Routes, sum.Seats, utils.FormatDate(today)))
	return sum, nil
}
