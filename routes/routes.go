package routes

import (
	"github.com/Amirkhan01/campaign-system/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes wires all HTTP endpoints. Read endpoints are public; the
// write endpoints under the same prefixes form the organizer surface.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	campaignHandler *handlers.CampaignHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	boardHandler *handlers.BoardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.ListHandler)
		r.Post("/", campaignHandler.CreateHandler)
		r.Get("/slug/{slug}", campaignHandler.GetBySlugHandler)

		r.Route("/{campaignID}", func(r chi.Router) {
			r.Get("/", campaignHandler.GetByIDHandler)
			r.Put("/", campaignHandler.UpdateHandler)
			r.Patch("/status", campaignHandler.UpdateStatusHandler)

			r.Get("/groups", campaignHandler.ListGroupsHandler)
			r.Post("/groups", campaignHandler.CreateGroupHandler)

			r.Get("/teams", teamHandler.ListByCampaignHandler)
			r.Post("/teams", teamHandler.CreateHandler)

			r.Get("/matches", matchHandler.ListByCampaignHandler)
			r.Post("/matches", matchHandler.ScheduleHandler)

			r.Get("/bracket", boardHandler.BracketHandler)
			r.Post("/bracket/advance", boardHandler.AdvanceRoundHandler)
			r.Get("/scorers", boardHandler.ScorersHandler)
		})
	})

	router.Route("/groups/{groupID}", func(r chi.Router) {
		r.Delete("/", campaignHandler.DeleteGroupHandler)
		r.Get("/standings", boardHandler.StandingsHandler)
	})

	router.Route("/teams/{teamID}", func(r chi.Router) {
		r.Get("/", teamHandler.GetByIDHandler)
		r.Put("/", teamHandler.UpdateHandler)
		r.Get("/players", teamHandler.ListPlayersHandler)
		r.Post("/players", teamHandler.AddPlayerHandler)
	})

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Get("/", matchHandler.GetByIDHandler)
		r.Patch("/kickoff", matchHandler.RescheduleHandler)
		r.Put("/result", matchHandler.RecordResultHandler)
		r.Delete("/result", matchHandler.RetractResultHandler)
		r.Patch("/excluded", matchHandler.SetExcludedHandler)
		r.Get("/goals", matchHandler.ListGoalsHandler)
		r.Post("/goals", matchHandler.AddGoalHandler)
		r.Delete("/goals/{goalID}", matchHandler.RemoveGoalHandler)
	})

	router.Get("/ws/campaigns/{campaignID}", webSocketHandler.ServeWs)
}
