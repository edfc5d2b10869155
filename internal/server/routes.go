package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health checks.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/liveness", s.handleHealth)
	mux.HandleFunc("GET /health/readiness", s.handleReadiness)

	// Task views.
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /tasks", s.handleListTasks)
	mux.HandleFunc("GET /tasks/new", s.handleNewTask)
	mux.HandleFunc("GET /tasks/{id}", s.handleEditTask)

	// Task mutations.
	mux.HandleFunc("POST /tasks", s.handleCreateTask)
	mux.HandleFunc("POST /tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("POST /tasks/{id}/delete", s.handleDeleteTask)

	// API documentation.
	mux.HandleFunc("GET /api-docs", s.handleAPIDocs)
	mux.HandleFunc("GET /api-docs/openapi.yaml", s.handleOpenAPIYAML)
	mux.HandleFunc("GET /api-docs/openapi.json", s.handleOpenAPIJSON)

	// Static assets.
	mux.Handle("GET /assets/", s.assetHandler())

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}
