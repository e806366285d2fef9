// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Global middleware is applied in the order given; auth guards only the API
// routes so that health probes stay unauthenticated.
func NewRouter(
	projectHandler *handlers.ProjectHandler,
	healthHandler *handlers.HealthHandler,
	auth func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth)

		// Project CRUD.
		r.Get("/projects", projectHandler.ListProjects)
		r.Post("/projects", projectHandler.CreateProject)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Patch("/projects/{id}", projectHandler.UpdateProject)
		r.Delete("/projects/{id}", projectHandler.DeleteProject)

		// XML interchange.
		r.Post("/projects/import", projectHandler.ImportXML)
		r.Get("/projects/{id}/export", projectHandler.ExportXML)

		// File attachments.
		r.Post("/projects/{id}/files", projectHandler.UploadFile)
		r.Get("/projects/{id}/files/{fileId}", projectHandler.DownloadFile)

		// Classroom-scoped listing.
		r.Get("/classrooms/{classroom}/projects", projectHandler.ListClassroomProjects)
	})

	return r
}
