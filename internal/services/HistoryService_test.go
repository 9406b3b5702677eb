package services

import (
	"fmt"
	"placestats/internal/models"
	"placestats/internal/storage"
	"placestats/internal/testutil"
	"strconv"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeViewAction(id string) models.Action {
	return models.Action{
		UserID:     "100",
		UserType:   models.UserTypeUser,
		ActionType: models.ActionPlaceView,
		EntityID:   id,
		EntityName: "Place " + id,
		EntityType: models.EntityPlace,
	}
}

func TestAppend_BuildsEntry(t *testing.T) {
	hs := newFixture().history()

	entry := hs.Append(placeViewAction("p1"))
	require.NotNil(t, entry)

	id, err := uuid.Parse(string(entry.ID))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.True(t, entry.Timestamp.Equal(testNow))
	assert.Equal(t, models.OpaqueID("100"), entry.UserID)
	assert.Equal(t, models.ActionPlaceView, entry.ActionType)
	assert.Equal(t, models.OpaqueID("p1"), entry.EntityID)
	assert.Equal(t, "Place p1", entry.EntityName)
	assert.NotNil(t, entry.Metadata)

	stored := hs.Export()
	require.Len(t, stored, 1)
	assert.Equal(t, entry.ID, stored[0].ID)
}

func TestAppend_UniqueIDs(t *testing.T) {
	hs := newFixture().history()

	seen := make(map[models.OpaqueID]bool)
	for i := 0; i < 200; i++ {
		entry := hs.Append(placeViewAction("p"))
		assert.False(t, seen[entry.ID], "duplicate id %s", entry.ID)
		seen[entry.ID] = true
	}
}

func TestAppend_ExtraCannotOverrideNamedFields(t *testing.T) {
	hs := newFixture().history()

	action := placeViewAction("p1")
	action.Extra = map[string]any{"id": "forged", "timestamp": "1999-01-01T00:00:00.000Z", "source": "map"}
	entry := hs.Append(action)

	assert.NotEqual(t, models.OpaqueID("forged"), entry.ID)
	assert.True(t, entry.Timestamp.Equal(testNow))
	assert.Equal(t, map[string]any{"source": "map"}, entry.Extra)

	stored := hs.Export()
	require.Len(t, stored, 1)
	assert.Equal(t, "map", stored[0].Extra["source"])
	assert.Equal(t, entry.ID, stored[0].ID)
}

func TestAppend_WriteFailureStillReturnsEntry(t *testing.T) {
	f := newFixture()
	hs := f.history()
	f.backend.SetWriteError(testutil.ErrQuotaExceeded)

	entry := hs.Append(placeViewAction("p1"))

	require.NotNil(t, entry)
	assert.Equal(t, 0, hs.Len())
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestAppend_EvictsOldestAtCapacity(t *testing.T) {
	hs := newFixture().history()

	seed := make([]models.HistoryEntry, MaxHistoryEntries)
	for i := range seed {
		seed[i] = models.HistoryEntry{
			ID:         models.OpaqueID(strconv.Itoa(i)),
			Timestamp:  models.NewISOTime(testNow.Add(-time.Hour)),
			ActionType: models.ActionPlaceShow,
			Metadata:   map[string]any{},
		}
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)
	require.True(t, hs.Import(data))

	entry := hs.Append(placeViewAction("new"))

	all := hs.Export()
	require.Len(t, all, MaxHistoryEntries)
	assert.Equal(t, models.OpaqueID("1"), all[0].ID)
	assert.Equal(t, entry.ID, all[len(all)-1].ID)
}

func TestQueries_FilterInInsertionOrder(t *testing.T) {
	hs := newFixture().history()

	hs.Append(placeViewAction("p1"))
	hs.Append(models.Action{UserID: "200", ActionType: models.ActionRouteView, EntityID: "r1", EntityType: models.EntityRoute})
	hs.Append(placeViewAction("p2"))
	hs.Append(placeViewAction("p1"))

	byUser := hs.ByUser("100")
	require.Len(t, byUser, 3)
	assert.Equal(t, models.OpaqueID("p1"), byUser[0].EntityID)
	assert.Equal(t, models.OpaqueID("p2"), byUser[1].EntityID)

	assert.Len(t, hs.ByType(models.ActionRouteView), 1)
	assert.Len(t, hs.ByEntity(models.EntityPlace, "p1"), 2)
	assert.Len(t, hs.ByEntity(models.EntityRoute, "p1"), 0)

	none := hs.ByUser("missing")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestByPeriod_InclusiveBounds(t *testing.T) {
	f := newFixture()
	hs := f.history()

	first := hs.Append(placeViewAction("p1"))
	f.clock.Advance(time.Hour)
	hs.Append(placeViewAction("p2"))
	f.clock.Advance(time.Hour)
	last := hs.Append(placeViewAction("p3"))

	all := hs.ByPeriod(first.Timestamp.Time, last.Timestamp.Time)
	assert.Len(t, all, 3)

	middle := hs.ByPeriod(first.Timestamp.Add(time.Millisecond), last.Timestamp.Add(-time.Millisecond))
	require.Len(t, middle, 1)
	assert.Equal(t, models.OpaqueID("p2"), middle[0].EntityID)
}

func TestByPeriod_SkipsMalformedTimestamps(t *testing.T) {
	f := newFixture()
	hs := f.history()
	require.NoError(t, f.backend.Write(storage.HistorySlot, []byte(`[
		{"id":1,"timestamp":"not a date","actionType":"place_view"},
		{"id":2,"timestamp":"2024-03-10T12:00:00.000Z","actionType":"place_view"}
	]`)))

	got := hs.ByPeriod(testNow.Add(-time.Hour*24*365*30), testNow.Add(time.Hour))
	require.Len(t, got, 1)
	assert.Equal(t, models.OpaqueID("2"), got[0].ID)
}

func TestPruneOlderThan(t *testing.T) {
	f := newFixture()
	hs := f.history()

	f.clock.Set(testNow.AddDate(0, 0, -40))
	hs.Append(placeViewAction("old"))
	f.clock.Set(testNow.AddDate(0, 0, -10))
	hs.Append(placeViewAction("recent"))
	f.clock.Set(testNow)

	assert.Equal(t, 1, hs.PruneOlderThan(30))
	remaining := hs.Export()
	require.Len(t, remaining, 1)
	assert.Equal(t, models.OpaqueID("recent"), remaining[0].EntityID)

	assert.Equal(t, 1, hs.PruneOlderThan(0), "non-positive falls back to a year")
}

func TestRecent_ReturnsNewestFirst(t *testing.T) {
	hs := newFixture().history()
	for i := 0; i < 5; i++ {
		hs.Append(placeViewAction(fmt.Sprintf("p%d", i)))
	}

	tests := []struct {
		limit int
		want  []models.OpaqueID
	}{
		{2, []models.OpaqueID{"p4", "p3"}},
		{5, []models.OpaqueID{"p4", "p3", "p2", "p1", "p0"}},
		{50, []models.OpaqueID{"p4", "p3", "p2", "p1", "p0"}},
		{0, []models.OpaqueID{"p4", "p3", "p2", "p1", "p0"}},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.limit), func(t *testing.T) {
			got := hs.Recent(tt.limit)
			ids := make([]models.OpaqueID, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.EntityID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRecent_EmptyStore(t *testing.T) {
	hs := newFixture().history()
	got := hs.Recent(10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestImport_RejectsNonArray(t *testing.T) {
	hs := newFixture().history()
	hs.Append(placeViewAction("p1"))

	for _, data := range []string{`"not an array"`, `{"a":1}`, `null`, ``, `[{"id":`} {
		assert.False(t, hs.Import([]byte(data)), data)
	}
	assert.Equal(t, 1, hs.Len())
}

func TestExportImport_RoundTrip(t *testing.T) {
	f := newFixture()
	hs := f.history()
	action := placeViewAction("p1")
	action.Metadata = map[string]any{"source": "search"}
	action.Extra = map[string]any{"screen": "map"}
	hs.Append(action)
	f.clock.Advance(time.Minute)
	hs.Append(placeViewAction("p2"))

	before := hs.Recent(10)
	exported, err := json.Marshal(hs.Export())
	require.NoError(t, err)
	require.True(t, hs.Import(exported))

	assert.Equal(t, before, hs.Recent(10))
	assert.Equal(t, hs.ByEntity(models.EntityPlace, "p1"), []models.HistoryEntry{before[1]})
}

func TestLoad_CorruptSlotIsEmpty(t *testing.T) {
	f := newFixture()
	hs := f.history()
	require.NoError(t, f.backend.Write(storage.HistorySlot, []byte(`{broken`)))

	assert.Equal(t, 0, hs.Len())
	assert.Empty(t, hs.Recent(5))
	assert.Equal(t, 2, f.logger.Count("warn"))
}

func TestClear(t *testing.T) {
	hs := newFixture().history()
	hs.Append(placeViewAction("p1"))

	assert.True(t, hs.Clear())
	assert.Equal(t, 0, hs.Len())
}

func TestAppend_Concurrent(t *testing.T) {
	hs := newFixture().history()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				hs.Append(placeViewAction("p"))
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Equal(t, 100, hs.Len())
}
