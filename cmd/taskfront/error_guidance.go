package main

import (
	"context"
	"errors"
	"net"

	"taskfront/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == 404 && apiErr.Code == "" {
			lines = append(lines, "hint: verify TASKFRONT_API_URL points to the task API and the task id exists.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: the task API returned an internal error; check its logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check the task API health or increase TASKFRONT_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure the task API is running at TASKFRONT_API_URL.",
			"hint: you can increase TASKFRONT_HTTP_TIMEOUT for slower environments.",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
