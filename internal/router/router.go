// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// listing editor API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"listingeditor/internal/handlers"
	"listingeditor/internal/middleware"
)

// New creates and returns the configured Chi router. limiter may be nil to
// disable rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		// Stateless transforms.
		r.Post("/parse", api.Parse)
		r.Post("/generate", api.Generate)
		r.Post("/export", api.Export)

		// Stored templates and their versions.
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.TemplatesList)
			r.Post("/", api.TemplateCreate)
			r.Get("/{id}", api.TemplateGet)
			r.Delete("/{id}", api.TemplateDelete)
			r.With(middleware.PreviewSandbox).Get("/{id}/preview", api.TemplatePreview)
			r.Post("/{id}/publish", api.TemplatePublish)
			r.Get("/{id}/versions", api.VersionsList)
			r.Post("/{id}/versions", api.VersionCreate)
		})

		// Editor sessions.
		r.Route("/editor/sessions", func(r chi.Router) {
			r.Post("/", api.SessionCreate)
			r.Get("/{sid}", api.SessionGet)
			r.Delete("/{sid}", api.SessionDelete)
			r.Post("/{sid}/ops", api.SessionOp)
			r.With(middleware.PreviewSandbox).Get("/{sid}/preview", api.SessionPreview)
			r.Get("/{sid}/export", api.SessionExport)
			r.Post("/{sid}/save", api.SessionSave)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
