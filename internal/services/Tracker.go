package services

import (
	"errors"
	"placestats/internal/models"
	"placestats/internal/providers"
	"strconv"
	"time"
)

var ErrUnknownEvent = errors.New("unknown event type")

// Event is one user action reported by the app.
type Event struct {
	Type       string         `json:"type"`
	EntityID   string         `json:"entityId"`
	EntityName string         `json:"entityName"`
	Categories []string       `json:"categories"`
	Metadata   map[string]any `json:"metadata"`
}

type TrackerInterface interface {
	Track(event Event) (*models.HistoryEntry, error)
	TrackPlaceView(placeID, placeName string, categories []string) *models.HistoryEntry
	TrackPlaceShow(placeID, placeName string, categories []string) *models.HistoryEntry
	TrackRouteView(routeID, routeName string) *models.HistoryEntry
	TrackCategoryView(category string) *models.HistoryEntry
	TrackRouteCreation(routeID, routeName string) *models.HistoryEntry
}

// Tracker fans a single user action out to every store that records it.
type Tracker struct {
	history HistoryServiceInterface
	places  PlaceStatisticServiceInterface
	daily   DailyStatisticServiceInterface
	users   UserServiceInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	now     func() time.Time
}

func NewTracker(history HistoryServiceInterface, places PlaceStatisticServiceInterface, daily DailyStatisticServiceInterface, users UserServiceInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) TrackerInterface {
	return &Tracker{
		history: history,
		places:  places,
		daily:   daily,
		users:   users,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func (t *Tracker) Track(event Event) (*models.HistoryEntry, error) {
	switch event.Type {
	case models.ActionPlaceView:
		return t.TrackPlaceView(event.EntityID, event.EntityName, event.Categories), nil
	case models.ActionPlaceShow:
		return t.TrackPlaceShow(event.EntityID, event.EntityName, event.Categories), nil
	case models.ActionRouteView:
		return t.TrackRouteView(event.EntityID, event.EntityName), nil
	case models.ActionCategoryView:
		category := event.EntityID
		if category == "" {
			category = event.EntityName
		}
		return t.TrackCategoryView(category), nil
	case models.ActionRouteCreation:
		return t.TrackRouteCreation(event.EntityID, event.EntityName), nil
	}
	return nil, ErrUnknownEvent
}

// record appends the action to history and counts it for today, attributing
// it to the current profile when there is one.
func (t *Tracker) record(profile *models.UserProfile, action models.Action) *models.HistoryEntry {
	now := t.now()
	if profile != nil {
		if profile.TelegramID != nil {
			action.UserID = strconv.FormatInt(*profile.TelegramID, 10)
		}
		action.UserType = profile.UserType
	}

	entry := t.history.Append(action)
	t.daily.Increment(now, action.ActionType, 1)
	if action.UserType != "" {
		t.daily.RecordUserType(now, action.UserType, 1)
	}
	t.metrics.IncTrackedEvents(action.ActionType)
	t.logger.Debugf(providers.TypeApp, "Tracked %s of %s %s", action.ActionType, action.EntityType, action.EntityID)
	return entry
}

func (t *Tracker) recordCategories(categories []string) {
	now := t.now()
	for _, category := range categories {
		t.daily.RecordCategory(now, category, 1)
	}
}

func categoryMetadata(categories []string) map[string]any {
	if len(categories) == 0 {
		return nil
	}
	return map[string]any{"categories": categories}
}

func (t *Tracker) TrackPlaceView(placeID, placeName string, categories []string) *models.HistoryEntry {
	entry := t.record(t.users.Current(), models.Action{
		ActionType: models.ActionPlaceView,
		EntityID:   placeID,
		EntityName: placeName,
		EntityType: models.EntityPlace,
		Metadata:   categoryMetadata(categories),
	})
	t.recordCategories(categories)
	if t.users.IsRegistered() {
		t.users.ViewPlace(placeID, placeName, categories)
	}
	return entry
}

// TrackPlaceShow counts a place card shown in a listing. Shows are not part
// of the personal statistics.
func (t *Tracker) TrackPlaceShow(placeID, placeName string, categories []string) *models.HistoryEntry {
	t.places.RecordShow(placeID, placeName, categories)
	return t.record(t.users.Current(), models.Action{
		ActionType: models.ActionPlaceShow,
		EntityID:   placeID,
		EntityName: placeName,
		EntityType: models.EntityPlace,
		Metadata:   categoryMetadata(categories),
	})
}

func (t *Tracker) TrackRouteView(routeID, routeName string) *models.HistoryEntry {
	entry := t.record(t.users.Current(), models.Action{
		ActionType: models.ActionRouteView,
		EntityID:   routeID,
		EntityName: routeName,
		EntityType: models.EntityRoute,
	})
	if t.users.IsRegistered() {
		t.users.ViewRoute(routeID)
	}
	return entry
}

func (t *Tracker) TrackCategoryView(category string) *models.HistoryEntry {
	entry := t.record(t.users.Current(), models.Action{
		ActionType: models.ActionCategoryView,
		EntityID:   category,
		EntityName: category,
		EntityType: models.EntityCategory,
	})
	t.recordCategories([]string{category})
	return entry
}

func (t *Tracker) TrackRouteCreation(routeID, routeName string) *models.HistoryEntry {
	return t.record(t.users.Current(), models.Action{
		ActionType: models.ActionRouteCreation,
		EntityID:   routeID,
		EntityName: routeName,
		EntityType: models.EntityRoute,
	})
}
