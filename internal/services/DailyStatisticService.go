package services

import (
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/storage"
	"sync"
	"time"
)

const DefaultRecentDays = 7

type DailyStatisticServiceInterface interface {
	DateKey(t time.Time) string
	Increment(date time.Time, statType string, value int) *models.DayStat
	RecordUserType(date time.Time, userType string, value int) *models.DayStat
	RecordCategory(date time.Time, category string, value int) *models.DayStat
	DayStats(date time.Time) *models.DayStat
	PeriodStats(start, end time.Time) *models.PeriodStats
	RecentStats(days int) *models.PeriodStats
	TotalStats() *models.TotalStats
	PruneOlderThan(daysToKeep int) int
}

type DailyStatisticService struct {
	mu     sync.Mutex
	slot   *storage.Slot[*models.DayTable]
	logger providers.Logger
	now    func() time.Time
}

func NewDailyStatisticService(backend storage.Backend, logger providers.Logger) DailyStatisticServiceInterface {
	return newDailyStatisticService(backend, logger)
}

func newDailyStatisticService(backend storage.Backend, logger providers.Logger) *DailyStatisticService {
	return &DailyStatisticService{
		slot:   storage.NewSlot(storage.StatisticsSlot, backend, logger, models.NewDayTable),
		logger: logger,
		now:    time.Now,
	}
}

// DateKey is the UTC calendar date of t.
func (ds *DailyStatisticService) DateKey(t time.Time) string {
	return t.UTC().Format(models.DateKeyLayout)
}

func (ds *DailyStatisticService) load() *models.DayTable {
	table := ds.slot.Load()
	for _, key := range table.Keys() {
		if day, _ := table.Get(key); day == nil {
			table.Delete(key)
		}
	}
	return table
}

// update runs fn on the record for date, creating it when absent, and
// persists the table.
func (ds *DailyStatisticService) update(date time.Time, fn func(day *models.DayStat)) *models.DayStat {
	key := ds.DateKey(date)

	ds.mu.Lock()
	defer ds.mu.Unlock()

	table := ds.load()
	day, ok := table.Get(key)
	if !ok {
		day = models.NewDayStat(key)
		table.Set(key, day)
	}
	fn(day)

	if !ds.slot.Save(table) {
		ds.logger.Warnf(providers.TypeStorage, "Statistics for %s kept in memory only", key)
	}
	return day
}

// Increment adds value to the day's total, to byActionType[statType] and,
// for known action types, to the matching named counter.
func (ds *DailyStatisticService) Increment(date time.Time, statType string, value int) *models.DayStat {
	return ds.update(date, func(day *models.DayStat) {
		day.TotalActions += value
		switch statType {
		case models.ActionPlaceView:
			day.PlaceViews += value
		case models.ActionRouteView:
			day.RouteViews += value
		case models.ActionCategoryView:
			day.CategoryViews += value
		case models.ActionPlaceShow:
			day.PlaceShows += value
		case models.ActionUserRegistration:
			day.UserRegistrations += value
		case models.ActionRouteCreation:
			day.RouteCreations += value
		}
		day.ByActionType.Add(statType, value)
	})
}

func (ds *DailyStatisticService) RecordUserType(date time.Time, userType string, value int) *models.DayStat {
	return ds.update(date, func(day *models.DayStat) {
		day.ByUserType.Add(userType, value)
	})
}

func (ds *DailyStatisticService) RecordCategory(date time.Time, category string, value int) *models.DayStat {
	return ds.update(date, func(day *models.DayStat) {
		day.ByCategory.Add(category, value)
	})
}

// DayStats returns the record for date's key, nil when nothing was recorded.
func (ds *DailyStatisticService) DayStats(date time.Time) *models.DayStat {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	day, _ := ds.load().Get(ds.DateKey(date))
	return day
}

// PeriodStats sums every stored day from start to end inclusive. The range
// is taken in UTC, the zone day keys are written in.
func (ds *DailyStatisticService) PeriodStats(start, end time.Time) *models.PeriodStats {
	ds.mu.Lock()
	table := ds.load()
	ds.mu.Unlock()

	result := models.NewPeriodStats()

	// Day keys are UTC dates, so walk UTC midnights.
	s := start.UTC()
	last := ds.DateKey(end)
	for d := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC); ; d = d.AddDate(0, 0, 1) {
		key := ds.DateKey(d)
		if key > last {
			break
		}
		if day, ok := table.Get(key); ok {
			result.Fold(day)
			result.Days = append(result.Days, day)
		}
	}
	return result
}

func (ds *DailyStatisticService) RecentStats(days int) *models.PeriodStats {
	if days <= 0 {
		days = DefaultRecentDays
	}
	now := ds.now()
	return ds.PeriodStats(now.AddDate(0, 0, -days), now)
}

// TotalStats folds every stored day regardless of its key.
func (ds *DailyStatisticService) TotalStats() *models.TotalStats {
	ds.mu.Lock()
	table := ds.load()
	ds.mu.Unlock()

	result := models.NewTotalStats()
	table.Each(func(_ string, day *models.DayStat) {
		result.Fold(day)
		result.TotalDays++
	})
	return result
}

// PruneOlderThan drops days whose key is before now minus daysToKeep. Keys
// that do not parse as dates are dropped too.
func (ds *DailyStatisticService) PruneOlderThan(daysToKeep int) int {
	if daysToKeep <= 0 {
		daysToKeep = DefaultRetentionDays
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	cutoff := ds.now().AddDate(0, 0, -daysToKeep)
	table := ds.load()
	for _, key := range table.Keys() {
		day, err := time.Parse(models.DateKeyLayout, key)
		if err != nil || day.Before(cutoff) {
			table.Delete(key)
		}
	}
	ds.slot.Save(table)
	return table.Len()
}
