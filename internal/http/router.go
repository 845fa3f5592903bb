package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nyk9/shuwa-word-wolf-api/internal/handlers"
)

// Handlers はルーターが束ねるハンドラー一式です
type Handlers struct {
	Game   *handlers.GameHandler
	Timer  *handlers.TimerHandler
	Vote   *handlers.VoteHandler
	Theme  *handlers.ThemeHandler
	User   *handlers.UserHandler
	Events *handlers.EventsHandler
}

func NewRouter(h Handlers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/user", h.User.List)
		r.Post("/user", h.User.Register)
		r.Get("/wordList", h.Theme.WordList)

		r.Route("/game", func(r chi.Router) {
			r.Post("/assign-words", h.Game.AssignWords)
			r.Get("/assign-words", h.Game.GetAssignment)

			r.Post("/select-theme", h.Theme.Select)

			r.Get("/used-themes", h.Theme.ListUsed)
			r.Post("/used-themes", h.Theme.MarkUsed)
			r.Delete("/used-themes", h.Theme.ClearUsed)

			r.Post("/timer", h.Timer.Start)
			r.Get("/timer", h.Timer.Status)
			r.Put("/timer", h.Timer.Action)

			r.Post("/vote", h.Vote.Record)
			r.Get("/vote", h.Vote.Tally)

			// イベント購読用WebSocketエンドポイント
			r.Get("/events", h.Events.Subscribe)
		})
	})

	return r
}
