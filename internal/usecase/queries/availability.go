package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"carrental/internal/domain/booking"
	"carrental/internal/domain/cartype"
)

// CacheTTL bounds availability staleness. Entries are never invalidated on
// write; admission always bypasses this layer, so a stale read can only
// cost a wasted booking attempt, never an oversell.
const CacheTTL = 5 * time.Minute

// AvailabilityStore is the key-value capability backing the cache. All
// calls are best-effort: errors are logged and the caller falls through to
// the ledger.
type AvailabilityStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// GetHash returns an empty map on miss.
	GetHash(ctx context.Context, key string) (map[string]string, error)
	SetHash(ctx context.Context, key string, fields map[string]string, ttl time.Duration) error
}

type OverlapCounter interface {
	CountOverlapping(ctx context.Context, typeID string, from, to time.Time) (int64, error)
}

type CarTypeReader interface {
	FindByID(ctx context.Context, id string) (*cartype.CarType, error)
	FindAll(ctx context.Context) ([]*cartype.CarType, error)
}

type AvailabilityQueries interface {
	// ForType returns free units of one type over the window, reading
	// through the cache unless bypassCache is set.
	ForType(ctx context.Context, ct *cartype.CarType, window booking.Window, bypassCache bool) (int, error)
	// AllTypes returns free units per type over the window via the bulk
	// cache entry.
	AllTypes(ctx context.Context, window booking.Window) (map[string]int, error)
}

type availabilityQueriesImpl struct {
	cache    AvailabilityStore
	ledger   OverlapCounter
	carTypes CarTypeReader
}

func NewAvailabilityQueries(cache AvailabilityStore, ledger OverlapCounter, carTypes CarTypeReader) AvailabilityQueries {
	return &availabilityQueriesImpl{
		cache:    cache,
		ledger:   ledger,
		carTypes: carTypes,
	}
}

func cacheKey(typeID string, w booking.Window) string {
	return fmt.Sprintf("avail:%s:%d:%d", typeID, w.Start().UnixMilli(), w.End().UnixMilli())
}

func bulkCacheKey(w booking.Window) string {
	return fmt.Sprintf("availAll:%d:%d", w.Start().UnixMilli(), w.End().UnixMilli())
}

func (q *availabilityQueriesImpl) ForType(ctx context.Context, ct *cartype.CarType, window booking.Window, bypassCache bool) (int, error) {
	key := cacheKey(ct.ID(), window)

	if !bypassCache {
		if v, ok, err := q.cache.Get(ctx, key); err != nil {
			slog.Warn("availability cache read failed", "key", key, "error", err)
		} else if ok {
			if n, parseErr := strconv.Atoi(v); parseErr == nil {
				return n, nil
			}
			slog.Warn("availability cache entry is not a number", "key", key, "value", v)
		}
	}

	overlapping, err := q.ledger.CountOverlapping(ctx, ct.ID(), window.Start(), window.End())
	if err != nil {
		return 0, err
	}
	available := ct.TotalQuantity() - int(overlapping)
	if available < 0 {
		available = 0
	}

	if err := q.cache.Set(ctx, key, strconv.Itoa(available), CacheTTL); err != nil {
		slog.Warn("availability cache write failed", "key", key, "error", err)
	}
	return available, nil
}

func (q *availabilityQueriesImpl) AllTypes(ctx context.Context, window booking.Window) (map[string]int, error) {
	key := bulkCacheKey(window)

	if cached, err := q.cache.GetHash(ctx, key); err != nil {
		slog.Warn("bulk availability cache read failed", "key", key, "error", err)
	} else if len(cached) > 0 {
		hit := make(map[string]int, len(cached))
		ok := true
		for typeID, v := range cached {
			n, parseErr := strconv.Atoi(v)
			if parseErr != nil {
				slog.Warn("bulk availability cache entry is not a number", "key", key, "field", typeID)
				ok = false
				break
			}
			hit[typeID] = n
		}
		if ok {
			return hit, nil
		}
	}

	types, err := q.carTypes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// Compute through the per-type path so per-type keys warm as a side
	// effect of the bulk miss.
	result := make(map[string]int, len(types))
	for _, ct := range types {
		n, err := q.ForType(ctx, ct, window, false)
		if err != nil {
			return nil, err
		}
		result[ct.ID()] = n
	}

	if len(result) > 0 {
		fields := make(map[string]string, len(result))
		for typeID, n := range result {
			fields[typeID] = strconv.Itoa(n)
		}
		if err := q.cache.SetHash(ctx, key, fields, CacheTTL); err != nil {
			slog.Warn("bulk availability cache write failed", "key", key, "error", err)
		}
	}
	return result, nil
}
