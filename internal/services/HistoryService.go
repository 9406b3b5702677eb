package services

import (
	"bytes"
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/storage"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	MaxHistoryEntries    = 10000
	DefaultRetentionDays = 365
	DefaultRecentLimit   = 100
)

type HistoryServiceInterface interface {
	Append(action models.Action) *models.HistoryEntry
	ByUser(userID string) []models.HistoryEntry
	ByType(actionType string) []models.HistoryEntry
	ByEntity(entityType, entityID string) []models.HistoryEntry
	ByPeriod(start, end time.Time) []models.HistoryEntry
	PruneOlderThan(daysToKeep int) int
	Recent(limit int) []models.HistoryEntry
	Export() []models.HistoryEntry
	Import(data []byte) bool
	Len() int
	Clear() bool
}

type HistoryService struct {
	mu     sync.Mutex
	slot   *storage.Slot[[]models.HistoryEntry]
	logger providers.Logger
	now    func() time.Time
	newID  func() string
}

func NewHistoryService(backend storage.Backend, logger providers.Logger) HistoryServiceInterface {
	return newHistoryService(backend, logger)
}

func newHistoryService(backend storage.Backend, logger providers.Logger) *HistoryService {
	return &HistoryService{
		slot: storage.NewSlot(storage.HistorySlot, backend, logger, func() []models.HistoryEntry {
			return []models.HistoryEntry{}
		}),
		logger: logger,
		now:    time.Now,
		newID:  newEntryID,
	}
}

// newEntryID returns a time-ordered UUIDv7, falling back to a random UUID.
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Append stores a new entry built from action. The entry is returned even
// when persisting it failed.
func (hs *HistoryService) Append(action models.Action) *models.HistoryEntry {
	entry := models.HistoryEntry{
		ID:         models.OpaqueID(hs.newID()),
		Timestamp:  models.NewISOTime(hs.now()),
		UserID:     models.OpaqueID(action.UserID),
		UserType:   action.UserType,
		ActionType: action.ActionType,
		EntityID:   models.OpaqueID(action.EntityID),
		EntityName: action.EntityName,
		EntityType: action.EntityType,
		Metadata:   action.Metadata,
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}
	for k, v := range action.Extra {
		if models.IsHistoryEntryField(k) {
			continue
		}
		if entry.Extra == nil {
			entry.Extra = make(map[string]any, len(action.Extra))
		}
		entry.Extra[k] = v
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()

	history := append(hs.slot.Load(), entry)
	if len(history) > MaxHistoryEntries {
		history = history[len(history)-MaxHistoryEntries:]
	}
	if !hs.slot.Save(history) {
		hs.logger.Warnf(providers.TypeStorage, "History entry %s (%s) kept in memory only", entry.ID, entry.ActionType)
	}
	return &entry
}

func (hs *HistoryService) filter(keep func(e *models.HistoryEntry) bool) []models.HistoryEntry {
	hs.mu.Lock()
	history := hs.slot.Load()
	hs.mu.Unlock()

	out := make([]models.HistoryEntry, 0)
	for i := range history {
		if keep(&history[i]) {
			out = append(out, history[i])
		}
	}
	return out
}

func (hs *HistoryService) ByUser(userID string) []models.HistoryEntry {
	return hs.filter(func(e *models.HistoryEntry) bool {
		return string(e.UserID) == userID
	})
}

func (hs *HistoryService) ByType(actionType string) []models.HistoryEntry {
	return hs.filter(func(e *models.HistoryEntry) bool {
		return e.ActionType == actionType
	})
}

func (hs *HistoryService) ByEntity(entityType, entityID string) []models.HistoryEntry {
	return hs.filter(func(e *models.HistoryEntry) bool {
		return e.EntityType == entityType && string(e.EntityID) == entityID
	})
}

// ByPeriod returns entries whose timestamp lies in [start, end] at
// millisecond precision. Entries without a valid timestamp never match.
func (hs *HistoryService) ByPeriod(start, end time.Time) []models.HistoryEntry {
	from := start.Truncate(time.Millisecond)
	to := end.Truncate(time.Millisecond)
	return hs.filter(func(e *models.HistoryEntry) bool {
		if e.Timestamp.IsZero() {
			return false
		}
		return !e.Timestamp.Before(from) && !e.Timestamp.After(to)
	})
}

// PruneOlderThan drops entries older than daysToKeep calendar days and
// returns how many survived.
func (hs *HistoryService) PruneOlderThan(daysToKeep int) int {
	if daysToKeep <= 0 {
		daysToKeep = DefaultRetentionDays
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()

	cutoff := hs.now().AddDate(0, 0, -daysToKeep)
	history := hs.slot.Load()
	kept := make([]models.HistoryEntry, 0, len(history))
	for _, e := range history {
		if !e.Timestamp.IsZero() && !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	hs.slot.Save(kept)
	return len(kept)
}

// Recent returns the last limit entries, newest first.
func (hs *HistoryService) Recent(limit int) []models.HistoryEntry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	hs.mu.Lock()
	history := hs.slot.Load()
	hs.mu.Unlock()

	n := min(limit, len(history))
	out := make([]models.HistoryEntry, 0, n)
	for i := len(history) - 1; i >= len(history)-n; i-- {
		out = append(out, history[i])
	}
	return out
}

func (hs *HistoryService) Export() []models.HistoryEntry {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.slot.Load()
}

// Import replaces the whole log with data, which must be a JSON array of
// entries. Anything else is rejected and the stored log is left untouched.
func (hs *HistoryService) Import(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		hs.logger.Warnf(providers.TypeStorage, "History import rejected: not an array")
		return false
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		hs.logger.Warnf(providers.TypeStorage, "History import rejected: %s", err)
		return false
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.slot.Save(entries)
}

func (hs *HistoryService) Len() int {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return len(hs.slot.Load())
}

func (hs *HistoryService) Clear() bool {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.slot.Clear()
}
