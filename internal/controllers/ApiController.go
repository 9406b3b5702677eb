package controllers

import (
	"errors"
	"io"
	"net/http"
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/services"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

const (
	maxRequestBodySize = 1 << 20  // 1 MB
	maxImportBodySize  = 32 << 20 // 32 MB
)

type ApiController struct {
	logger  providers.Logger
	tracker services.TrackerInterface
	history services.HistoryServiceInterface
	places  services.PlaceStatisticServiceInterface
	daily   services.DailyStatisticServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, tracker services.TrackerInterface, history services.HistoryServiceInterface, places services.PlaceStatisticServiceInterface, daily services.DailyStatisticServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		tracker: tracker,
		history: history,
		places:  places,
		daily:   daily,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// queryInt reads a non-negative integer parameter; absent means 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

func reportKey(r *http.Request) string {
	return "report:" + r.URL.Path + "?" + r.URL.Query().Encode()
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) TrackEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var event services.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	entry, err := ac.tracker.Track(event)
	if err != nil {
		ac.logger.Debugf(providers.TypePost, "Rejected event %q: %s", event.Type, err)
		http.Error(w, "Unknown event type", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (ac *ApiController) RecentHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, ac.history.Recent(limit))
}

func (ac *ApiController) ExportHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.history.Export())
}

func (ac *ApiController) ImportHistory(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBodySize))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !ac.history.Import(body) {
		http.Error(w, "History must be a JSON array of entries", http.StatusBadRequest)
		return
	}
	ac.logger.Infof(providers.TypePost, "History replaced by import (%d bytes)", len(body))
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) TopPlaces(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, reportKey(r), func() (any, error) {
		return ac.places.TopPlaces(limit), nil
	})
}

func (ac *ApiController) CategoryRollup(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, reportKey(r), func() (any, error) {
		return ac.places.CategoryRollup(), nil
	})
}

func (ac *ApiController) RecentStats(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, reportKey(r), func() (any, error) {
		return ac.daily.RecentStats(days), nil
	})
}

func (ac *ApiController) TotalStats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, reportKey(r), func() (any, error) {
		return ac.daily.TotalStats(), nil
	})
}

// DayStats serves one day; date defaults to today (UTC).
func (ac *ApiController) DayStats(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(models.DateKeyLayout, raw)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	stat := ac.daily.DayStats(day)
	if stat == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}
