package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"testing"

	"taskfront/internal/api"
	"taskfront/internal/models"
)

// fakeTaskAPI is an in-memory upstream that records every write.
type fakeTaskAPI struct {
	mu      sync.Mutex
	tasks   map[int64]models.Task
	nextID  int64
	created []api.TaskRequest
	updated []api.TaskRequest
	deleted []int64
	err     error
}

func newFakeTaskAPI(tasks ...models.Task) *fakeTaskAPI {
	f := &fakeTaskAPI{tasks: map[int64]models.Task{}, nextID: 1}
	for _, task := range tasks {
		f.tasks[task.ID] = task
		if task.ID >= f.nextID {
			f.nextID = task.ID + 1
		}
	}
	return f
}

func (f *fakeTaskAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]int64, 0, len(f.tasks))
	for id := range f.tasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.tasks[id])
	}
	return out, nil
}

func (f *fakeTaskAPI) GetTask(ctx context.Context, id int64) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Task{}, f.err
	}
	task, ok := f.tasks[id]
	if !ok {
		return models.Task{}, &api.APIError{Status: http.StatusNotFound, Message: "task not found"}
	}
	return task, nil
}

func (f *fakeTaskAPI) CreateTask(ctx context.Context, req api.TaskRequest) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.err != nil {
		return models.Task{}, f.err
	}
	task := taskFromRequest(f.nextID, req)
	f.tasks[task.ID] = task
	f.nextID++
	return task, nil
}

func (f *fakeTaskAPI) UpdateTask(ctx context.Context, req api.TaskRequest) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, req)
	if f.err != nil {
		return models.Task{}, f.err
	}
	task := taskFromRequest(*req.ID, req)
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskAPI) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.err != nil {
		return f.err
	}
	delete(f.tasks, id)
	return nil
}

func taskFromRequest(id int64, req api.TaskRequest) models.Task {
	return models.Task{
		ID:          id,
		CaseNumber:  req.CaseNumber,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
}

func newTestServer(t *testing.T, upstream TaskAPI) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New("127.0.0.1:0", upstream, logger, Options{UpstreamURL: "http://localhost:4000"})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func stringPtr(value string) *string {
	return &value
}
