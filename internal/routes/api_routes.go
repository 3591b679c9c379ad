package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/5outh/towerlog/internal/api"
	"github.com/5outh/towerlog/internal/jobs"
	"github.com/5outh/towerlog/internal/middleware"
)

// RegisterAPIRoutes registers the public vendor passthroughs and the
// authenticated admin console routes.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, jobSet *jobs.Jobs) {

	r.Post("/auth/token", api.LoginHandler(deps.Services.Tokens, deps.Repo.Keys))

	// Public: live vendor lookups, nothing persisted
	r.Route("/api", func(public chi.Router) {
		public.Get("/airports", api.AirportDirectoryHandler(deps.Services.FlightStats))
		public.Get("/airlines", api.AirlineDirectoryHandler(deps.Services.FlightStats))
		public.Get("/airports/{code}/status", api.AirportStatusHandler(deps.Services.FlightStats))
		public.Get("/flights/{id}/status", api.FlightStatusHandler(deps.Services.FlightStats))
		public.Get("/flights/{id}/track", api.FlightTrackHandler(deps.Services.FlightStats))
		public.Get("/geo/state", api.ReverseGeocodeHandler(deps.Services.Geocoder))
	})

	// Authenticated console
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.AuthMiddleware(deps.Services.Tokens, deps.Repo.Keys))

		protected.Get("/data/view/{type}", api.DataViewHandler(deps.Repo))
		protected.Get("/data/airports/{code}", api.AirportLookupHandler(deps.Repo.Airports))

		// Admin-only: ingestion triggers and destructive actions
		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin)

			admin.Post("/admin/update/{what}", api.AdminUpdateHandler(jobSet, deps.Services.Earnings))
			admin.Post("/admin/delete/{what}", api.AdminDeleteHandler(deps.Repo.Logs))
			admin.Get("/admin/logs", api.AdminLogsHandler(deps.Repo.Logs))
		})
	})
}
