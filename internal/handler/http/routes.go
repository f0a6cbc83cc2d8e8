package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/session", h.session)

		r.Route("/api/journal", func(r chi.Router) {
			r.Get("/", h.listEntries)
			r.Post("/", h.createEntry)
			r.Get("/{entryID}", h.getEntry)
			r.Patch("/{entryID}", h.updateEntry)
			r.Delete("/{entryID}", h.deleteEntry)
		})
	})

	// public portfolio projects API
	router.Route("/api/projects", func(r chi.Router) {
		r.Get("/", h.listProjects)
		r.Post("/", h.createProject)
		r.Get("/{projectID}", h.getProject)
		r.Put("/{projectID}", h.updateProject)
		r.Delete("/{projectID}", h.deleteProject)
	})

	return router
}
