package queries

import (
	"context"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/infra/repository"
	"carrental/internal/pkg/clock"
)

// TypeStats reports how heavily one car type was used inside a reporting
// window. Past utilization covers [from, now); future hours cover [now, to).
type TypeStats struct {
	TypeID                 string  `json:"typeId"`
	HoursBookedPast        float64 `json:"hoursBookedPast"`
	HoursBookedFuture      float64 `json:"hoursBookedFuture"`
	PastUtilizationPercent float64 `json:"pastUtilizationPercent"`
}

type BookingWindowReader interface {
	ListForWindow(ctx context.Context, status *booking.Status, from, to time.Time) ([]repository.BookingWithUser, error)
}

type StatsQueries interface {
	UtilizationByType(ctx context.Context, window booking.Window) ([]TypeStats, error)
}

type statsQueriesImpl struct {
	carTypes CarTypeReader
	bookings BookingWindowReader
	clock    clock.Clock
}

func NewStatsQueries(carTypes CarTypeReader, bookings BookingWindowReader, clk clock.Clock) StatsQueries {
	return &statsQueriesImpl{
		carTypes: carTypes,
		bookings: bookings,
		clock:    clk,
	}
}

// UtilizationByType fetches the window's bookings once and folds them
// in memory; no per-type queries.
func (q *statsQueriesImpl) UtilizationByType(ctx context.Context, window booking.Window) ([]TypeStats, error) {
	types, err := q.carTypes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	windowHours := int64(window.Duration().Hours())
	if windowHours < 1 {
		windowHours = 1
	}

	now := q.clock.Now()
	pastEnd := now
	if pastEnd.After(window.End()) {
		pastEnd = window.End()
	}

	order := make([]string, 0, len(types))
	byType := make(map[string]*TypeStats, len(types))
	capacity := make(map[string]int, len(types))
	for _, ct := range types {
		order = append(order, ct.ID())
		byType[ct.ID()] = &TypeStats{TypeID: ct.ID()}
		capacity[ct.ID()] = ct.TotalQuantity()
	}

	rows, err := q.bookings.ListForWindow(ctx, nil, window.Start(), window.End())
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		s, ok := byType[row.Booking.TypeID()]
		if !ok {
			continue
		}
		w := row.Booking.Window()
		s.HoursBookedPast += float64(w.OverlapHours(window.Start(), pastEnd))
		s.HoursBookedFuture += float64(w.OverlapHours(now, window.End()))
	}

	out := make([]TypeStats, 0, len(order))
	for _, typeID := range order {
		s := byType[typeID]
		denom := float64(windowHours) * float64(capacity[typeID])
		if denom > 0 {
			s.PastUtilizationPercent = s.HoursBookedPast / denom * 100.0
			if s.PastUtilizationPercent > 100 {
				s.PastUtilizationPercent = 100
			}
		}
		out = append(out, *s)
	}
	return out, nil
}
