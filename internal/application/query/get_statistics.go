package query

import (
	"context"
	"math"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATISTICS QUERY
// Derives aggregate statistics from the current store. Results are cached;
// every mutation invalidates the cache through the handler's Invalidate.
// ══════════════════════════════════════════════════════════════════════════════

// statsCacheKey is the single cache key under which statistics are stored.
const statsCacheKey = "statistics"

// StatsCache is the cache dependency of the statistics handler.
// A nil cache disables caching.
type StatsCache interface {
	Get(ctx context.Context, key string) (any, bool)
	Set(ctx context.Context, key string, value any)
	Delete(ctx context.Context, key string)
}

// GetStatisticsQuery has no parameters.
type GetStatisticsQuery struct{}

// Statistics contains the derived aggregates.
type Statistics struct {
	// TotalStudents is the number of records.
	TotalStudents int

	// AverageAge is the arithmetic mean of all ages, rounded to two
	// decimals. It is 0 when the store is empty.
	AverageAge float64

	// GradeDistribution maps each grade category to its count. The fixed
	// categories A/B/C/D/F are always present, zero-filled; grades outside
	// the fixed set are included when observed.
	GradeDistribution map[record.Grade]int
}

// GetStatisticsHandler handles the GetStatisticsQuery.
type GetStatisticsHandler struct {
	store *record.Store
	cache StatsCache
}

// NewGetStatisticsHandler creates a new GetStatisticsHandler.
func NewGetStatisticsHandler(store *record.Store, cache StatsCache) *GetStatisticsHandler {
	return &GetStatisticsHandler{store: store, cache: cache}
}

// Handle executes the query, serving from cache when possible.
func (h *GetStatisticsHandler) Handle(ctx context.Context, _ GetStatisticsQuery) (*Statistics, error) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(ctx, statsCacheKey); ok {
			if stats, ok := cached.(*Statistics); ok {
				return stats, nil
			}
		}
	}

	stats := h.compute()

	if h.cache != nil {
		h.cache.Set(ctx, statsCacheKey, stats)
	}

	return stats, nil
}

// Invalidate drops the cached statistics. Command handlers call this after
// every successful mutation.
func (h *GetStatisticsHandler) Invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.Delete(ctx, statsCacheKey)
	}
}

// compute derives the statistics from the store.
func (h *GetStatisticsHandler) compute() *Statistics {
	students := h.store.All()

	distribution := make(map[record.Grade]int, len(record.CanonicalGrades))
	for _, g := range record.CanonicalGrades {
		distribution[g] = 0
	}

	if len(students) == 0 {
		return &Statistics{
			TotalStudents:     0,
			AverageAge:        0,
			GradeDistribution: distribution,
		}
	}

	ageSum := 0
	for _, s := range students {
		ageSum += s.Age
		distribution[s.Grade.Normalize()]++
	}

	average := float64(ageSum) / float64(len(students))

	return &Statistics{
		TotalStudents:     len(students),
		AverageAge:        math.Round(average*100) / 100,
		GradeDistribution: distribution,
	}
}
