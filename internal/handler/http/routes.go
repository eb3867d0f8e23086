package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Timeout(h.requestTimeout))
	router.Use(cors.Handler(h.corsOptions()))

	router.Get("/health", h.health)

	// auth
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
		})
	})

	// public API
	router.Post("/api/feedback", h.submitFeedback)
	router.Post("/api/track-download", h.trackDownload)

	// browser-navigated download flow
	router.Get("/verify-email", h.verifyEmail)
	router.Get("/download-now", h.downloadNow)
	router.Get("/download/{platform}", h.downloadPlatform)

	// admin reporting
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)
		r.Get("/api/admin/feedback", h.adminFeedback)
		r.Get("/api/admin/downloads", h.adminDownloads)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) corsOptions() cors.Options {
	origins := h.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		MaxAge:         300,
	}
}
