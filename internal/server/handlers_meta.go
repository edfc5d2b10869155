package server

import (
	"net/http"

	"taskfront/internal/openapi"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "UP"})
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.ShuttingDown() {
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "DOWN"})
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "UP"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeErrorPage(w, r, http.StatusNotFound, "Page not found.", nil)
}

func (s *Server) handleAPIDocs(w http.ResponseWriter, r *http.Request) {
	doc, err := openapi.New(s.opts.UpstreamURL).YAML()
	if err != nil {
		s.writeErrorPage(w, r, http.StatusInternalServerError, "", err)
		return
	}
	s.render(w, r, http.StatusOK, viewAPIDocs, apiDocsPage{
		pageData:    pageData{Title: "API documentation"},
		UpstreamURL: s.opts.UpstreamURL,
		Document:    string(doc),
	})
}

func (s *Server) handleOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	doc, err := openapi.New(s.opts.UpstreamURL).YAML()
	if err != nil {
		s.writeErrorPage(w, r, http.StatusInternalServerError, "", err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, openapi.New(s.opts.UpstreamURL))
}
