package services

import (
	"placestats/internal/storage"
	"placestats/internal/testutil"
	"time"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	backend *storage.MemoryBackend
	logger  *testutil.MockLogger
	clock   *testutil.Clock
}

func newFixture() *fixture {
	return &fixture{
		backend: storage.NewMemoryBackend(),
		logger:  &testutil.MockLogger{},
		clock:   testutil.NewClock(testNow),
	}
}

func (f *fixture) history() *HistoryService {
	hs := newHistoryService(f.backend, f.logger)
	hs.now = f.clock.Now
	return hs
}

func (f *fixture) places() *PlaceStatisticService {
	ps := newPlaceStatisticService(f.backend, f.logger)
	ps.now = f.clock.Now
	return ps
}

func (f *fixture) daily() *DailyStatisticService {
	ds := newDailyStatisticService(f.backend, f.logger)
	ds.now = f.clock.Now
	return ds
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
