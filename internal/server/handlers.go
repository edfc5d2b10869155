package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const defaultFormMaxBody = 1 << 20 // 1 MiB

var errInvalidTaskID = errors.New("invalid task id")

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// writeErrorPage logs err and renders the error view with a user-facing
// message. Internal details never reach the page.
func (s *Server) writeErrorPage(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	if message == "" {
		message = http.StatusText(status)
	}

	fields := []any{"status", status, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path)
	}

	logger := s.requestLogger(r)
	switch {
	case status >= 500:
		logger.Error("request error", fields...)
	case status >= 400:
		logger.Debug("request rejected", fields...)
	}

	s.render(w, r, status, viewError, errorPage{
		pageData: pageData{Title: http.StatusText(status)},
		Status:   status,
		Message:  message,
	})
}

func (s *Server) parseFormReq(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, defaultFormMaxBody)
	if err := r.ParseForm(); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeErrorPage(w, r, http.StatusRequestEntityTooLarge, "The form submission is too large.", err)
			return false
		}
		s.writeErrorPage(w, r, http.StatusBadRequest, "The form submission could not be read.", err)
		return false
	}
	return true
}

func requirePathTaskID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidTaskID, raw)
	}
	return id, nil
}

func (s *Server) pathTaskIDOrBadRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := requirePathTaskID(r)
	if err != nil {
		s.writeErrorPage(w, r, http.StatusBadRequest, "That is not a valid task id.", err)
		return 0, false
	}
	return id, true
}

func redirectToTasks(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}
