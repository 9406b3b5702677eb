package services

import (
	"placestats/internal/identity"
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/storage"
	"slices"
	"strconv"
	"sync"
	"time"
)

const DefaultTopCategoriesLimit = 5

// HistoryRecorder is the part of the history log the user store notifies.
type HistoryRecorder interface {
	Append(action models.Action) *models.HistoryEntry
}

// DailyRecorder is the part of the daily statistics the user store notifies.
type DailyRecorder interface {
	Increment(date time.Time, statType string, value int) *models.DayStat
	RecordUserType(date time.Time, userType string, value int) *models.DayStat
}

type UserServiceInterface interface {
	Current() *models.UserProfile
	FromExternalIdentity() *models.Identity
	IsRegistered() bool
	Bootstrap() *models.UserProfile
	Register(name, userType string) *models.UserProfile
	Update(patch models.UserPatch) *models.UserProfile
	BackfillStatistics(profile *models.UserProfile) *models.UserProfile
	RecordPlaceView(profile *models.UserProfile, placeID, placeName string, categories []string) *models.UserProfile
	RecordRouteView(profile *models.UserProfile, routeID string) *models.UserProfile
	ViewPlace(placeID, placeName string, categories []string) *models.UserProfile
	ViewRoute(routeID string) *models.UserProfile
	TopCategories(profile *models.UserProfile, limit int) []models.CategoryCount
	StatsSummary(profile *models.UserProfile) *models.StatsSummary
	Logout() bool
}

type UserService struct {
	mu       sync.Mutex
	slot     *storage.Slot[*models.UserProfile]
	logger   providers.Logger
	identity identity.Provider
	history  HistoryRecorder
	daily    DailyRecorder
	now      func() time.Time
}

// NewUserService builds the user store. identity, history and daily may be
// nil; the store then works without an external identity or without
// notifying the other stores on registration.
func NewUserService(backend storage.Backend, logger providers.Logger, identity identity.Provider, history HistoryRecorder, daily DailyRecorder) UserServiceInterface {
	return newUserService(backend, logger, identity, history, daily)
}

func newUserService(backend storage.Backend, logger providers.Logger, identity identity.Provider, history HistoryRecorder, daily DailyRecorder) *UserService {
	return &UserService{
		slot: storage.NewSlot(storage.UserSlot, backend, logger, func() *models.UserProfile {
			return nil
		}),
		logger:   logger,
		identity: identity,
		history:  history,
		daily:    daily,
		now:      time.Now,
	}
}

func (us *UserService) Current() *models.UserProfile {
	us.mu.Lock()
	defer us.mu.Unlock()
	return us.slot.Load()
}

func (us *UserService) FromExternalIdentity() *models.Identity {
	if us.identity == nil {
		return nil
	}
	return us.identity.Current()
}

func (us *UserService) IsRegistered() bool {
	profile := us.Current()
	return profile != nil && profile.Name != "" && profile.UserType != ""
}

// Bootstrap returns the stored profile. A known external identity alone
// never creates one: registration is always explicit.
func (us *UserService) Bootstrap() *models.UserProfile {
	if profile := us.Current(); profile != nil {
		return profile
	}
	if user := us.FromExternalIdentity(); user != nil {
		us.logger.Debugf(providers.TypeApp, "Telegram user %d is not registered yet", user.ID)
	}
	return nil
}

// Register stores a fresh profile. Once it is persisted, the registration
// is also written to history and daily statistics when those are wired.
// Returns nil if the profile could not be persisted.
func (us *UserService) Register(name, userType string) *models.UserProfile {
	now := us.now()
	profile := &models.UserProfile{
		Name:         name,
		UserType:     userType,
		Registered:   true,
		RegisteredAt: models.NewISOTime(now),
		Statistics:   models.NewUserStats(),
	}
	if user := us.FromExternalIdentity(); user != nil {
		id := user.ID
		profile.TelegramID = &id
	}

	us.mu.Lock()
	saved := us.slot.Save(profile)
	us.mu.Unlock()

	if !saved {
		return nil
	}

	if us.history != nil {
		userID := ""
		if profile.TelegramID != nil {
			userID = strconv.FormatInt(*profile.TelegramID, 10)
		}
		us.history.Append(models.Action{
			UserID:     userID,
			UserType:   userType,
			ActionType: models.ActionUserRegistration,
			EntityName: name,
			EntityType: userType,
		})
	}
	if us.daily != nil {
		us.daily.Increment(now, models.ActionUserRegistration, 1)
		us.daily.RecordUserType(now, userType, 1)
	}
	us.logger.Infof(providers.TypeApp, "Registered %s %q", userType, name)
	return profile
}

// Update merges patch over the stored profile. Without a stored profile it
// does nothing and returns nil.
func (us *UserService) Update(patch models.UserPatch) *models.UserProfile {
	us.mu.Lock()
	defer us.mu.Unlock()

	profile := us.slot.Load()
	if profile == nil {
		return nil
	}
	patch.Apply(profile)
	us.BackfillStatistics(profile)
	if !us.slot.Save(profile) {
		return nil
	}
	return profile
}

// BackfillStatistics gives profile zeroed statistics if it has none. It does
// not persist anything.
func (us *UserService) BackfillStatistics(profile *models.UserProfile) *models.UserProfile {
	if profile == nil {
		return nil
	}
	if profile.Statistics == nil {
		profile.Statistics = models.NewUserStats()
	}
	if profile.Statistics.ViewedRoutes == nil {
		profile.Statistics.ViewedRoutes = []string{}
	}
	return profile
}

func (us *UserService) record(profile *models.UserProfile, fn func(stats *models.UserStats)) *models.UserProfile {
	if profile == nil {
		return nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	us.apply(profile, fn)
	us.slot.Save(profile)
	return profile
}

// updateStored applies fn to the stored profile, reading and writing it
// under one lock. Returns nil when nobody is registered.
func (us *UserService) updateStored(fn func(stats *models.UserStats)) *models.UserProfile {
	us.mu.Lock()
	defer us.mu.Unlock()

	profile := us.slot.Load()
	if profile == nil {
		return nil
	}
	us.apply(profile, fn)
	us.slot.Save(profile)
	return profile
}

func (us *UserService) apply(profile *models.UserProfile, fn func(stats *models.UserStats)) {
	us.BackfillStatistics(profile)
	fn(profile.Statistics)
	profile.Statistics.LastActivity = models.NewISOTime(us.now())
}

func placeView(placeID string, categories []string) func(stats *models.UserStats) {
	return func(stats *models.UserStats) {
		stats.TotalPlacesViewed++
		stats.ViewedPlaces.Add(placeID, 1)
		for _, category := range categories {
			stats.ViewedCategories.Add(category, 1)
			stats.TotalCategoriesViewed++
		}
	}
}

func routeView(routeID string) func(stats *models.UserStats) {
	return func(stats *models.UserStats) {
		stats.TotalRoutesViewed++
		if !slices.Contains(stats.ViewedRoutes, routeID) {
			stats.ViewedRoutes = append(stats.ViewedRoutes, routeID)
		}
	}
}

// RecordPlaceView counts a place view on profile and persists it. Every
// category of the place counts as one category view, so
// totalCategoriesViewed grows by len(categories).
func (us *UserService) RecordPlaceView(profile *models.UserProfile, placeID, placeName string, categories []string) *models.UserProfile {
	return us.record(profile, placeView(placeID, categories))
}

// RecordRouteView counts every view but lists each route once.
func (us *UserService) RecordRouteView(profile *models.UserProfile, routeID string) *models.UserProfile {
	return us.record(profile, routeView(routeID))
}

// ViewPlace is RecordPlaceView on the stored profile.
func (us *UserService) ViewPlace(placeID, placeName string, categories []string) *models.UserProfile {
	return us.updateStored(placeView(placeID, categories))
}

func (us *UserService) ViewRoute(routeID string) *models.UserProfile {
	return us.updateStored(routeView(routeID))
}

func (us *UserService) TopCategories(profile *models.UserProfile, limit int) []models.CategoryCount {
	if limit <= 0 {
		limit = DefaultTopCategoriesLimit
	}
	out := make([]models.CategoryCount, 0)
	if profile == nil || profile.Statistics == nil {
		return out
	}

	profile.Statistics.ViewedCategories.Each(func(category string, n int) {
		out = append(out, models.CategoryCount{Category: category, Count: n})
	})
	slices.SortStableFunc(out, func(a, b models.CategoryCount) int {
		return b.Count - a.Count
	})
	return out[:min(limit, len(out))]
}

func (us *UserService) StatsSummary(profile *models.UserProfile) *models.StatsSummary {
	if profile == nil {
		return nil
	}
	us.BackfillStatistics(profile)
	stats := profile.Statistics
	return &models.StatsSummary{
		TotalPlacesViewed:     stats.TotalPlacesViewed,
		TotalRoutesViewed:     stats.TotalRoutesViewed,
		TotalCategoriesViewed: stats.TotalCategoriesViewed,
		TopCategories:         us.TopCategories(profile, DefaultTopCategoriesLimit),
		LastActivity:          stats.LastActivity,
	}
}

// Logout forgets the stored profile.
func (us *UserService) Logout() bool {
	us.mu.Lock()
	defer us.mu.Unlock()
	return us.slot.Clear()
}
