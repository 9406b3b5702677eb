package services

import (
	"bytes"
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/storage"
	"slices"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const DefaultTopPlacesLimit = 10

type PlaceStatisticServiceInterface interface {
	RecordShow(placeID, placeName string, categories []string) *models.PlaceStat
	Get(placeID string) *models.PlaceStat
	All() *models.PlaceTable
	TopPlaces(limit int) []*models.PlaceStat
	CategoryRollup() []models.CategoryStat
	TotalShows() int
	Import(data []byte) bool
	Clear() bool
}

type PlaceStatisticService struct {
	mu     sync.Mutex
	slot   *storage.Slot[*models.PlaceTable]
	logger providers.Logger
	now    func() time.Time
}

func NewPlaceStatisticService(backend storage.Backend, logger providers.Logger) PlaceStatisticServiceInterface {
	return newPlaceStatisticService(backend, logger)
}

func newPlaceStatisticService(backend storage.Backend, logger providers.Logger) *PlaceStatisticService {
	return &PlaceStatisticService{
		slot:   storage.NewSlot(storage.PlaceStatisticsSlot, backend, logger, models.NewPlaceTable),
		logger: logger,
		now:    time.Now,
	}
}

// load reads the table and drops null records left by hand-edited or
// truncated documents.
func (ps *PlaceStatisticService) load() *models.PlaceTable {
	table := ps.slot.Load()
	for _, key := range table.Keys() {
		if stat, _ := table.Get(key); stat == nil {
			table.Delete(key)
		}
	}
	return table
}

// RecordShow counts one more show of placeID. A non-empty name and a non-nil
// category list replace what was stored before.
func (ps *PlaceStatisticService) RecordShow(placeID, placeName string, categories []string) *models.PlaceStat {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	now := models.NewISOTime(ps.now())
	table := ps.load()

	stat, ok := table.Get(placeID)
	if !ok {
		stat = &models.PlaceStat{
			PlaceID:    placeID,
			PlaceName:  placeName,
			Categories: []string{},
			FirstShown: now,
			LastShown:  now,
		}
		table.Set(placeID, stat)
	}

	stat.ShowCount++
	stat.LastShown = now
	if placeName != "" {
		stat.PlaceName = placeName
	}
	if categories != nil {
		stat.Categories = slices.Clone(categories)
	}
	if stat.Categories == nil {
		stat.Categories = []string{}
	}

	if !ps.slot.Save(table) {
		ps.logger.Warnf(providers.TypeStorage, "Show of place %s kept in memory only", placeID)
	}
	return stat
}

// Get returns the stored record or an unsaved placeholder with zero shows.
func (ps *PlaceStatisticService) Get(placeID string) *models.PlaceStat {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if stat, ok := ps.load().Get(placeID); ok {
		return stat
	}
	return &models.PlaceStat{PlaceID: placeID, Categories: []string{}}
}

func (ps *PlaceStatisticService) All() *models.PlaceTable {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.load()
}

// TopPlaces orders places by show count, keeping storage order on ties.
func (ps *PlaceStatisticService) TopPlaces(limit int) []*models.PlaceStat {
	if limit <= 0 {
		limit = DefaultTopPlacesLimit
	}

	places := ps.All().Values()
	slices.SortStableFunc(places, func(a, b *models.PlaceStat) int {
		return b.ShowCount - a.ShowCount
	})
	return places[:min(limit, len(places))]
}

// CategoryRollup credits the full show count of each place to every
// category it is tagged with.
func (ps *PlaceStatisticService) CategoryRollup() []models.CategoryStat {
	index := make(map[string]int)
	rollup := make([]models.CategoryStat, 0)

	ps.All().Each(func(_ string, stat *models.PlaceStat) {
		for _, category := range stat.Categories {
			i, ok := index[category]
			if !ok {
				i = len(rollup)
				index[category] = i
				rollup = append(rollup, models.CategoryStat{Category: category})
			}
			rollup[i].ShowCount += stat.ShowCount
			rollup[i].PlaceCount++
		}
	})

	slices.SortStableFunc(rollup, func(a, b models.CategoryStat) int {
		return b.ShowCount - a.ShowCount
	})
	return rollup
}

func (ps *PlaceStatisticService) TotalShows() int {
	total := 0
	ps.All().Each(func(_ string, stat *models.PlaceStat) {
		total += stat.ShowCount
	})
	return total
}

// Import replaces every record with data, which must be a JSON object of
// placeId -> record.
func (ps *PlaceStatisticService) Import(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		ps.logger.Warnf(providers.TypeStorage, "Place statistics import rejected: not an object")
		return false
	}

	table := models.NewPlaceTable()
	if err := json.Unmarshal(trimmed, table); err != nil {
		ps.logger.Warnf(providers.TypeStorage, "Place statistics import rejected: %s", err)
		return false
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.slot.Save(table)
}

func (ps *PlaceStatisticService) Clear() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.slot.Clear()
}
