package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"taskfront/internal/models"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "TASKFRONT_HTTP_TIMEOUT"
	maxErrorBodyBytes  = 64 << 10
)

// Client is a simple HTTP client for the upstream task API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
	}
}

// WithLogger sets the logger used for upstream call logging. A nil logger
// disables it.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// BaseURL returns the upstream base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var resp []models.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &resp)
	return resp, err
}

func (c *Client) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var resp models.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, &resp)
	return resp, err
}

func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (models.Task, error) {
	var resp models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", req, &resp)
	return resp, err
}

// UpdateTask replaces a task. The upstream API identifies it by req.ID.
func (c *Client) UpdateTask(ctx context.Context, req TaskRequest) (models.Task, error) {
	var resp models.Task
	if req.ID == nil {
		return resp, errors.New("task id is required for update")
	}
	err := c.do(ctx, http.MethodPut, "/tasks", req, &resp)
	return resp, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logCall(ctx, method, path, 0, start, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp)
		c.logCall(ctx, method, path, resp.StatusCode, start, apiErr)
		return apiErr
	}
	c.logCall(ctx, method, path, resp.StatusCode, start, nil)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	// Some upstream writes answer with an empty body.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) logCall(ctx context.Context, method, path string, status int, start time.Time, err error) {
	if c.logger == nil {
		return
	}
	fields := []any{
		"method", method,
		"path", path,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if status > 0 {
		fields = append(fields, "status", status)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "upstream call failed", append(fields, "error", err)...)
		return
	}
	c.logger.DebugContext(ctx, "upstream call", fields...)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil {
		apiErr.Code = errResp.Error
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
			apiErr.Code = ""
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("api error: %s", resp.Status)
	}
	return apiErr
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
