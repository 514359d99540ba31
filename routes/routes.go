package routes

import (
	"github.com/chessfed/chess-rating-system/handlers"
	"github.com/chessfed/chess-rating-system/middleware"
	"github.com/chessfed/chess-rating-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Tournament *handlers.TournamentHandler
	Admin      *handlers.AdminHandler
	WebSocket  *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Route("/players", func(r chi.Router) {
		// Публичные маршруты для просмотра рейтингов
		r.Get("/", h.Player.List)
		r.Get("/{id}", h.Player.Get)
		r.Get("/{id}/history", h.Player.RatingHistory)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{id}/photo", h.Player.UploadPhoto)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Get("/{id}", h.Tournament.Get)
		r.Get("/{id}/pairings", h.Tournament.Pairings)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{id}/register", h.Tournament.Register)
		})

		// Только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize("organizer", "admin"))

			r.Post("/", h.Tournament.Create)
			r.Post("/{id}/start", h.Tournament.ChangeStatus(models.StatusOngoing))
			r.Post("/{id}/complete", h.Tournament.ChangeStatus(models.StatusCompleted))
			r.Post("/{id}/results", h.Tournament.RecordResults)
		})

		// Только для администраторов федерации
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize("admin"))

			r.Post("/{id}/approve", h.Tournament.ChangeStatus(models.StatusApproved))
			r.Post("/{id}/reject", h.Tournament.ChangeStatus(models.StatusRejected))
			r.Post("/{id}/report", h.Tournament.GenerateReport)
		})
	})

	router.Route("/admin/players", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize("admin"))

		r.Post("/bulk-adjust", h.Admin.BulkAdjust)
		r.Post("/import", h.Admin.ImportRatings)
	})

	router.Get("/ws/tournaments/{id}", h.WebSocket.SubscribeTournament)

	return router
}
