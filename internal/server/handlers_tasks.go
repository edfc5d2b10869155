package server

import (
	"net/http"

	"taskfront/internal/api"
	"taskfront/internal/models"
	"taskfront/internal/taskform"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	redirectToTasks(w, r)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListTasks(r.Context())
	if err != nil {
		// The list degrades to empty rather than failing the page.
		s.requestLogger(r).Error("error fetching tasks", "error", err)
		tasks = nil
	}

	s.render(w, r, http.StatusOK, viewTasks, tasksPage{
		pageData: pageData{Title: "Tasks"},
		TaskRows: taskform.ToDisplayRows(tasks),
	})
}

func (s *Server) handleNewTask(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, viewNewTask, newTaskPage{
		pageData: pageData{Title: "Create a task"},
		Statuses: models.TaskStatusStrings(),
	})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	if !s.parseFormReq(w, r) {
		return
	}

	req, dateErr := taskform.ParseForm(r.PostForm).Request()
	if dateErr != nil {
		s.requestLogger(r).Warn("due date dropped", "error", dateErr)
	}

	if _, err := s.tasks.CreateTask(r.Context(), req); err != nil {
		s.writeErrorPage(w, r, http.StatusInternalServerError, "Something went wrong creating the task.", err)
		return
	}

	redirectToTasks(w, r)
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathTaskIDOrBadRequest(w, r)
	if !ok {
		return
	}

	task, err := s.tasks.GetTask(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			s.writeErrorPage(w, r, http.StatusNotFound, "Task not found.", err)
			return
		}
		s.writeErrorPage(w, r, http.StatusInternalServerError, "Something went wrong loading the task.", err)
		return
	}

	s.render(w, r, http.StatusOK, viewUpdateTask, updateTaskPage{
		pageData: pageData{Title: "Update a task"},
		Task:     taskform.NewEditView(task),
		Statuses: taskform.StatusOptions(task.Status),
	})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathTaskIDOrBadRequest(w, r)
	if !ok {
		return
	}
	if !s.parseFormReq(w, r) {
		return
	}

	req, dateErr := taskform.ParseForm(r.PostForm).UpdateRequest(id)
	if dateErr != nil {
		s.requestLogger(r).Warn("due date dropped", "task_id", id, "error", dateErr)
	}
	s.requestLogger(r).Debug("sending updated task to api", "task_id", id, "status", req.Status)

	if _, err := s.tasks.UpdateTask(r.Context(), req); err != nil {
		s.writeErrorPage(w, r, http.StatusInternalServerError, "Something went wrong updating the task.", err)
		return
	}

	redirectToTasks(w, r)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathTaskIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), id); err != nil {
		s.writeErrorPage(w, r, http.StatusInternalServerError, "Something went wrong deleting the task.", err)
		return
	}

	redirectToTasks(w, r)
}
