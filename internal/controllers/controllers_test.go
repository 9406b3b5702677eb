package controllers

import (
	"placestats/internal/identity"
	"placestats/internal/models"
	"placestats/internal/services"
	"placestats/internal/storage"
	"placestats/internal/testutil"
)

type stack struct {
	backend *storage.MemoryBackend
	logger  *testutil.MockLogger
	cache   *testutil.MockCache
	history services.HistoryServiceInterface
	places  services.PlaceStatisticServiceInterface
	daily   services.DailyStatisticServiceInterface
	users   services.UserServiceInterface
	tracker services.TrackerInterface
}

func newStack() *stack {
	s := &stack{
		backend: storage.NewMemoryBackend(),
		logger:  &testutil.MockLogger{},
		cache:   testutil.NewMockCache(),
	}
	s.history = services.NewHistoryService(s.backend, s.logger)
	s.places = services.NewPlaceStatisticService(s.backend, s.logger)
	s.daily = services.NewDailyStatisticService(s.backend, s.logger)
	s.users = services.NewUserService(s.backend, s.logger, identity.StaticProvider{User: &models.Identity{ID: 42}}, s.history, s.daily)
	s.tracker = services.NewTracker(s.history, s.places, s.daily, s.users, testutil.NewMockMetrics(), s.logger)
	return s
}

func (s *stack) api() *ApiController {
	return NewApiController(s.logger, s.tracker, s.history, s.places, s.daily, s.cache)
}

func (s *stack) user() *UserController {
	return NewUserController(s.logger, s.users)
}
