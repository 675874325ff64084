package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/todos/internal/handler/api"
	"github.com/zhouzirui/todos/internal/handler/lists"
	"github.com/zhouzirui/todos/internal/session"
	"github.com/zhouzirui/todos/internal/view"
)

// NewRouter wires HTTP routes to the session store and view layer.
func NewRouter(sessions session.Store, views *view.Renderer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// HTML pages
	lists.New(sessions, views).RegisterRoutes(r)

	// Read-only JSON export of the current session
	r.Route("/api", func(r chi.Router) {
		api.New(sessions).RegisterRoutes(r)
	})

	return r
}
