//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"placestats/internal"
	"placestats/internal/controllers"
	"placestats/internal/identity"
	"placestats/internal/maintenance"
	"placestats/internal/providers"
	"placestats/internal/services"
	"placestats/internal/storage"
	"placestats/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewBackend,
		identity.NewProvider,
		services.NewHistoryService,
		services.NewPlaceStatisticService,
		services.NewDailyStatisticService,
		provideHistoryRecorder,
		provideDailyRecorder,
		services.NewUserService,
		services.NewTracker,
		maintenance.NewScheduler,
		controllers.NewApiController,
		controllers.NewUserController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}
