package server

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed assets/*
var assetFS embed.FS

func (s *Server) assetHandler() http.Handler {
	dist, err := fs.Sub(assetFS, "assets")
	if err != nil {
		return http.NotFoundHandler()
	}

	fileServer := http.StripPrefix("/assets/", http.FileServerFS(dist))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") || strings.HasSuffix(r.URL.Path, "/") {
			s.handleNotFound(w, r)
			return
		}

		asset := strings.TrimPrefix(r.URL.Path, "/assets/")
		if _, err := fs.Stat(dist, asset); err != nil {
			s.handleNotFound(w, r)
			return
		}
		// Asset names are not content hashed, so browsers must revalidate.
		w.Header().Set("Cache-Control", "no-cache")

		fileServer.ServeHTTP(w, r)
	})
}
