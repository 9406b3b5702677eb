package internal

import (
	"net/http"
	"placestats/internal/controllers"
	"placestats/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, userController *controllers.UserController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events", http.HandlerFunc(apiController.TrackEvent))

	routers.Post("/user/register", http.HandlerFunc(userController.Register))
	routers.Post("/user/logout", http.HandlerFunc(userController.Logout))
	routers.Get("/user", http.HandlerFunc(userController.Profile))

	routers.Get("/history/recent", http.HandlerFunc(apiController.RecentHistory))
	routers.Get("/history/export", http.HandlerFunc(apiController.ExportHistory))
	routers.Post("/history/import", http.HandlerFunc(apiController.ImportHistory))

	routers.Get("/places/top", http.HandlerFunc(apiController.TopPlaces))
	routers.Get("/places/categories", http.HandlerFunc(apiController.CategoryRollup))

	routers.Get("/stats/recent", http.HandlerFunc(apiController.RecentStats))
	routers.Get("/stats/total", http.HandlerFunc(apiController.TotalStats))
	routers.Get("/stats/day", http.HandlerFunc(apiController.DayStats))
	return routers
}
