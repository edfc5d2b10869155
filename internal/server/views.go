package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"taskfront/internal/models"
	"taskfront/internal/taskform"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewTasks      = "tasks"
	viewNewTask    = "new-task"
	viewUpdateTask = "update-task"
	viewError      = "error"
	viewAPIDocs    = "api-docs"
)

var viewNames = []string{viewTasks, viewNewTask, viewUpdateTask, viewError, viewAPIDocs}

var templateFuncs = template.FuncMap{
	"canonicalStatus": models.NormalizeStatus,
	"taskPath":        taskform.TaskPath,
}

type pageData struct {
	Title string
}

type tasksPage struct {
	pageData
	TaskRows []taskform.DisplayRow
}

type newTaskPage struct {
	pageData
	Statuses []string
}

type updateTaskPage struct {
	pageData
	Task     taskform.EditView
	Statuses []string
}

type errorPage struct {
	pageData
	Status  int
	Message string
}

type apiDocsPage struct {
	pageData
	UpstreamURL string
	Document    string
}

// viewSet holds one template tree per page, each sharing the layout.
type viewSet struct {
	pages map[string]*template.Template
}

func loadViews() (*viewSet, error) {
	pages := make(map[string]*template.Template, len(viewNames))
	for _, name := range viewNames {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &viewSet{pages: pages}, nil
}

func (v *viewSet) execute(w io.Writer, name string, data any) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// render buffers the page so a template failure never sends a partial body.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.views.execute(&buf, name, data); err != nil {
		s.requestLogger(r).Error("render view", "view", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
