package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"taskfront/internal/models"
)

func postForm(t *testing.T, h http.Handler, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func expectRedirectToTasks(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d (%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/tasks" {
		t.Fatalf("expected redirect to /tasks, got %q", got)
	}
}

func TestListTasksRendersRows(t *testing.T) {
	upstream := newFakeTaskAPI(
		models.Task{ID: 1, Title: "Prepare bundle", Status: "to do", DueDate: stringPtr("2025-04-20")},
		models.Task{ID: 2, Title: "File <evidence>", Status: "Complete"},
	)
	h := newTestServer(t, upstream).Handler()

	w := get(t, h, "/tasks")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("expected html content type, got %q", got)
	}

	body := w.Body.String()
	for _, want := range []string{
		`<a class="govuk-link" href="/tasks/1">Prepare bundle</a>`,
		`2025-04-20`,
		`<strong class="govuk-tag govuk-tag--grey">to do</strong>`,
		`<strong class="govuk-tag govuk-tag--green">Complete</strong>`,
		`File &lt;evidence&gt;`,
		`Not set`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got %s", want, body)
		}
	}
}

func TestListTasksUpstreamFailureRendersEmptyList(t *testing.T) {
	upstream := newFakeTaskAPI(models.Task{ID: 1, Title: "hidden"})
	upstream.err = errors.New("connection refused")
	h := newTestServer(t, upstream).Handler()

	w := get(t, h, "/tasks")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "There are no tasks.") {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}
}

func TestHomeRedirectsToTasks(t *testing.T) {
	h := newTestServer(t, newFakeTaskAPI()).Handler()
	expectRedirectToTasks(t, get(t, h, "/"))
}

func TestNewTaskForm(t *testing.T) {
	h := newTestServer(t, newFakeTaskAPI()).Handler()

	w := get(t, h, "/tasks/new")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, field := range []string{`name="taskName"`, `name="taskCaseNumber"`, `name="taskDueDate-day"`, `name="taskDueDate-month"`, `name="taskDueDate-year"`, `value="in progress"`} {
		if !strings.Contains(body, field) {
			t.Fatalf("expected form to contain %s", field)
		}
	}
}

func TestCreateTask(t *testing.T) {
	upstream := newFakeTaskAPI()
	h := newTestServer(t, upstream).Handler()

	w := postForm(t, h, "/tasks", url.Values{
		"taskName":          {"Prepare hearing"},
		"taskCaseNumber":    {"123ABC"},
		"taskDescription":   {"Bundle documents"},
		"taskStatus":        {"In Progress"},
		"taskDueDate-day":   {"20"},
		"taskDueDate-month": {"4"},
		"taskDueDate-year":  {"2025"},
	})
	expectRedirectToTasks(t, w)

	if len(upstream.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(upstream.created))
	}
	req := upstream.created[0]
	if req.Title != "Prepare hearing" || req.CaseNumber != "123ABC" || req.Description != "Bundle documents" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Status != "in progress" {
		t.Fatalf("expected canonical status, got %q", req.Status)
	}
	if req.DueDate == nil || *req.DueDate != "2025-04-20" {
		t.Fatalf("expected due date 2025-04-20, got %v", req.DueDate)
	}
}

func TestCreateTaskDefaultsAndDropsBadDates(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{name: "no date", values: url.Values{"taskName": {"x"}}},
		{name: "partial date", values: url.Values{"taskName": {"x"}, "taskDueDate-year": {"2025"}, "taskDueDate-month": {"4"}}},
		{name: "invalid date", values: url.Values{"taskName": {"x"}, "taskDueDate-year": {"2025"}, "taskDueDate-month": {"2"}, "taskDueDate-day": {"30"}}},
		{name: "non numeric date", values: url.Values{"taskName": {"x"}, "taskDueDate-year": {"2025"}, "taskDueDate-month": {"Feb"}, "taskDueDate-day": {"3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := newFakeTaskAPI()
			h := newTestServer(t, upstream).Handler()

			expectRedirectToTasks(t, postForm(t, h, "/tasks", tt.values))
			if len(upstream.created) != 1 {
				t.Fatalf("expected task to be created, got %d calls", len(upstream.created))
			}
			req := upstream.created[0]
			if req.DueDate != nil {
				t.Fatalf("expected no due date, got %q", *req.DueDate)
			}
			if req.Status != string(models.DefaultStatus) {
				t.Fatalf("expected default status, got %q", req.Status)
			}
		})
	}
}

func TestCreateTaskUpstreamFailure(t *testing.T) {
	upstream := newFakeTaskAPI()
	upstream.err = errors.New("upstream down")
	h := newTestServer(t, upstream).Handler()

	w := postForm(t, h, "/tasks", url.Values{"taskName": {"x"}})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Something went wrong creating the task.") {
		t.Fatalf("expected create failure message, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "upstream down") {
		t.Fatal("internal error detail leaked into page")
	}
}

func TestCreateTaskRejectsOversizedForm(t *testing.T) {
	upstream := newFakeTaskAPI()
	h := newTestServer(t, upstream).Handler()

	w := postForm(t, h, "/tasks", url.Values{"taskDescription": {strings.Repeat("a", defaultFormMaxBody+1)}})
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
	if len(upstream.created) != 0 {
		t.Fatal("expected no upstream call")
	}
}

func TestEditTaskSplitsDueDate(t *testing.T) {
	upstream := newFakeTaskAPI(models.Task{ID: 4, CaseNumber: "CASE-4", Title: "Edit me", Description: "desc", Status: "To Do", DueDate: stringPtr("2025-04-05")})
	h := newTestServer(t, upstream).Handler()

	w := get(t, h, "/tasks/4")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{
		`action="/tasks/4"`,
		`action="/tasks/4/delete"`,
		`name="taskTitle" type="text" value="Edit me"`,
		`value="CASE-4"`,
		`name="taskDueDate-day" type="text" inputmode="numeric" value="05"`,
		`name="taskDueDate-month" type="text" inputmode="numeric" value="04"`,
		`name="taskDueDate-year" type="text" inputmode="numeric" value="2025"`,
		`<option value="to do" selected>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got %s", want, body)
		}
	}
}

func TestEditTaskKeepsUnknownStatus(t *testing.T) {
	upstream := newFakeTaskAPI(models.Task{ID: 5, Title: "Waiting", Status: "blocked"})
	h := newTestServer(t, upstream).Handler()

	w := get(t, h, "/tasks/5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `<option value="blocked" selected>`) {
		t.Fatalf("expected current status to be selected, got %s", body)
	}
	if strings.Contains(body, `<option value="to do" selected>`) {
		t.Fatal("expected to do not to be selected")
	}

	expectRedirectToTasks(t, postForm(t, h, "/tasks/5", url.Values{"taskTitle": {"Waiting"}, "taskStatus": {"blocked"}}))
	if got := upstream.updated[0].Status; got != "blocked" {
		t.Fatalf("expected status to round trip, got %q", got)
	}
}

func TestEditTaskErrors(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h := newTestServer(t, newFakeTaskAPI()).Handler()
		if w := get(t, h, "/tasks/abc"); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestServer(t, newFakeTaskAPI()).Handler()
		w := get(t, h, "/tasks/99")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Task not found.") {
			t.Fatalf("expected not found message, got %s", w.Body.String())
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		upstream := newFakeTaskAPI()
		upstream.err = errors.New("timeout")
		h := newTestServer(t, upstream).Handler()
		if w := get(t, h, "/tasks/1"); w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestUpdateTask(t *testing.T) {
	upstream := newFakeTaskAPI(models.Task{ID: 8, Title: "Old", Status: "to do"})
	h := newTestServer(t, upstream).Handler()

	w := postForm(t, h, "/tasks/8", url.Values{
		"taskTitle":         {"New title"},
		"taskCaseNumber":    {"XYZ"},
		"taskStatus":        {"complete"},
		"taskDueDate-day":   {"1"},
		"taskDueDate-month": {"12"},
		"taskDueDate-year":  {"2025"},
	})
	expectRedirectToTasks(t, w)

	if len(upstream.updated) != 1 {
		t.Fatalf("expected one update call, got %d", len(upstream.updated))
	}
	req := upstream.updated[0]
	if req.ID == nil || *req.ID != 8 {
		t.Fatalf("expected embedded id 8, got %v", req.ID)
	}
	if req.Title != "New title" || req.Status != "complete" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.DueDate == nil || *req.DueDate != "2025-12-01" {
		t.Fatalf("expected due date 2025-12-01, got %v", req.DueDate)
	}
}

func TestUpdateTaskClearsDueDateAndDefaultsStatus(t *testing.T) {
	upstream := newFakeTaskAPI(models.Task{ID: 8, Title: "Old", Status: "complete", DueDate: stringPtr("2025-01-01")})
	h := newTestServer(t, upstream).Handler()

	expectRedirectToTasks(t, postForm(t, h, "/tasks/8", url.Values{"taskTitle": {"Old"}}))

	req := upstream.updated[0]
	if req.DueDate != nil {
		t.Fatalf("expected cleared due date, got %q", *req.DueDate)
	}
	if req.Status != "to do" {
		t.Fatalf("expected default status, got %q", req.Status)
	}
}

func TestUpdateTaskFailures(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		upstream := newFakeTaskAPI()
		h := newTestServer(t, upstream).Handler()
		if w := postForm(t, h, "/tasks/-1", url.Values{"taskTitle": {"x"}}); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if len(upstream.updated) != 0 {
			t.Fatal("expected no upstream call")
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		upstream := newFakeTaskAPI()
		upstream.err = errors.New("boom")
		h := newTestServer(t, upstream).Handler()
		w := postForm(t, h, "/tasks/3", url.Values{"taskTitle": {"x"}})
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Something went wrong updating the task.") {
			t.Fatalf("expected update failure message, got %s", w.Body.String())
		}
	})
}

func TestDeleteTask(t *testing.T) {
	upstream := newFakeTaskAPI(models.Task{ID: 5, Title: "Delete me"})
	h := newTestServer(t, upstream).Handler()

	expectRedirectToTasks(t, postForm(t, h, "/tasks/5/delete", nil))
	if len(upstream.deleted) != 1 || upstream.deleted[0] != 5 {
		t.Fatalf("expected delete of task 5, got %v", upstream.deleted)
	}
	if _, ok := upstream.tasks[5]; ok {
		t.Fatal("expected task to be removed")
	}
}

func TestDeleteTaskUpstreamFailure(t *testing.T) {
	upstream := newFakeTaskAPI()
	upstream.err = errors.New("boom")
	h := newTestServer(t, upstream).Handler()

	w := postForm(t, h, "/tasks/5/delete", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Something went wrong deleting the task.") {
		t.Fatalf("expected delete failure message, got %s", w.Body.String())
	}
}
