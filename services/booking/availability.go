package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"courtbook/config"
	"courtbook/services/slot"
	"courtbook/utils"

	"go.uber.org/zap"
)

// FullyBookedThreshold is the number of stored range entries at which a
// date counts as fully booked. See FullyBookedDates for what "entry" means.
const FullyBookedThreshold = 16

// UnavailableRanges returns the expanded occupied intervals for a court and
// date as a flat list. Overlapping or adjacent intervals from different
// reservations are not merged and duplicates are preserved; callers get the
// raw union, reservation by reservation.
func (s *DefaultReservationService) UnavailableRanges(ctx context.Context, courtID, date string) ([]slot.HourRange, error) {
	if cached, ok := s.cachedAvailability(ctx, courtID, date); ok {
		return cached, nil
	}

	reservations, err := s.Repo.GetByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, &DependencyError{Op: "load reservations", Err: err}
	}

	unavailable := []slot.HourRange{}
	for _, res := range reservations {
		occupied, err := slot.Expand(res.Ranges)
		if err != nil {
			return nil, &DependencyError{Op: "expand stored ranges", Err: err}
		}
		unavailable = append(unavailable, occupied...)
	}

	s.storeAvailability(ctx, courtID, date, unavailable)
	return unavailable, nil
}

// FullyBookedDates reports every date whose stored range-entry count has
// reached FullyBookedThreshold. This is the legacy metric carried over from
// the original system: it counts entries in the persisted ranges arrays,
// not hours. A degenerate single-hour entry contributes 1; a [8,12] pair
// also contributes 1 despite covering four hours. Whether that was
// intentional business logic has never been settled, so the behavior is
// kept as-is here and BookedHourTotals exposes the corrected sum alongside.
func (s *DefaultReservationService) FullyBookedDates(ctx context.Context, courtID string) ([]string, error) {
	counts, err := s.Repo.CountRangeEntriesByDate(ctx, courtID)
	if err != nil {
		return nil, &DependencyError{Op: "count range entries", Err: err}
	}

	var dates []string
	for date, entries := range counts {
		if entries >= FullyBookedThreshold {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// BookedHourTotals sums the actual occupied hours per date for a court,
// expanding every stored range first. This is the corrected counterpart of
// the legacy fully-booked metric.
func (s *DefaultReservationService) BookedHourTotals(ctx context.Context, courtID string) (map[string]int, error) {
	reservations, err := s.Repo.GetByCourt(ctx, courtID)
	if err != nil {
		return nil, &DependencyError{Op: "load reservations", Err: err}
	}

	totals := make(map[string]int)
	for _, res := range reservations {
		occupied, err := slot.Expand(res.Ranges)
		if err != nil {
			return nil, &DependencyError{Op: "expand stored ranges", Err: err}
		}
		for _, r := range occupied {
			totals[res.Date] += r.Hours()
		}
	}
	return totals, nil
}

func availabilityCacheKey(courtID, date string) string {
	return fmt.Sprintf("availability:%s:%s", courtID, date)
}

// cachedAvailability returns a cached response if one exists. Cache errors
// are logged and treated as a miss; availability must keep working when
// Redis is down.
func (s *DefaultReservationService) cachedAvailability(ctx context.Context, courtID, date string) ([]slot.HourRange, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, availabilityCacheKey(courtID, date)).Result()
	if err != nil {
		return nil, false
	}
	var ranges []slot.HourRange
	if err := json.Unmarshal([]byte(data), &ranges); err != nil {
		utils.GetLogger().Warn("failed to decode cached availability",
			zap.String("courtID", courtID), zap.String("date", date), zap.Error(err))
		return nil, false
	}
	return ranges, true
}

func (s *DefaultReservationService) storeAvailability(ctx context.Context, courtID, date string, ranges []slot.HourRange) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(ranges)
	if err != nil {
		return
	}
	ttl := time.Duration(config.AppConfig.AvailabilityTTL) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := s.Cache.Set(ctx, availabilityCacheKey(courtID, date), data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability",
			zap.String("courtID", courtID), zap.String("date", date), zap.Error(err))
	}
}

// invalidateAvailability drops the cached response for a court/date after a
// successful write. Failure only means a stale read for at most the TTL.
func (s *DefaultReservationService) invalidateAvailability(ctx context.Context, courtID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityCacheKey(courtID, date)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("courtID", courtID), zap.String("date", date), zap.Error(err))
	}
}
